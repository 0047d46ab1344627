package charts_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/firedash/internal/analysis"
	"github.com/KaramelBytes/firedash/internal/charts"
	"github.com/KaramelBytes/firedash/internal/dataset"
	"github.com/KaramelBytes/firedash/internal/filter"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func rec(region, district, sub string, freq int, causes ...int) dataset.Record {
	r := dataset.Record{Period: "2024", Region: region, District: district, Subdistrict: sub, Frequency: freq}
	copy(r.Causes[:], causes)
	return r
}

func view(records ...dataset.Record) *analysis.View {
	t := dataset.NewTable("fixture.csv", records)
	return analysis.Render(t, filter.Selection{}, analysis.DefaultRenderOptions())
}

func fullView() *analysis.View {
	return view(
		rec("Jakarta Selatan.", "Kebayoran Baru", "Gunung", 7, 1, 1, 0, 4, 1, 0),
		rec("Jakarta Selatan.", "Cilandak", "Lebak Bulus", 3, 0, 1, 0, 2, 0, 0),
		rec("Jakarta Pusat", "Tanah Abang", "Bendungan Hilir", 9, 2, 0, 1, 5, 0, 1),
		rec("Jakarta Timur", "Makasar", "Halim", 2, 0, 0, 0, 1, 1, 0),
	)
}

func TestRender_EveryChartProducesPNG(t *testing.T) {
	v := fullView()
	for _, name := range charts.Names() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, charts.Render(&buf, v, name, charts.DefaultSize(), "png"))
			require.Greater(t, buf.Len(), len(pngMagic))
			assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
		})
	}
}

func TestRender_EmptyViewStillDraws(t *testing.T) {
	v := view()
	for _, name := range charts.Names() {
		var buf bytes.Buffer
		require.NoError(t, charts.Render(&buf, v, name, charts.SizeInches(4, 3), "png"), name)
		assert.NotZero(t, buf.Len(), name)
	}
}

func TestRender_UnknownChart(t *testing.T) {
	var buf bytes.Buffer
	err := charts.Render(&buf, fullView(), "nope", charts.DefaultSize(), "png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, charts.ErrUnknownChart))
	assert.Zero(t, buf.Len())
}

func TestRender_SVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, charts.Render(&buf, fullView(), "regions", charts.DefaultSize(), "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestEmptyPlotTitle(t *testing.T) {
	p, err := charts.RegionBars(nil)
	require.NoError(t, err)
	assert.Contains(t, p.Title.Text, "(no data)")

	p, err = charts.CausePie([]analysis.CauseShare{{Cause: dataset.CauseGas, Count: 0}})
	require.NoError(t, err)
	assert.Contains(t, p.Title.Text, "(no data)")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"causes", "causes-by-region", "correlation", "district-causes",
		"districts", "highest-risk", "regions", "subdistricts", "treemap",
	}, charts.Names())
}

func TestSizeInches(t *testing.T) {
	assert.Equal(t, charts.DefaultSize(), charts.SizeInches(0, -1))
	s := charts.SizeInches(10, 6)
	assert.InDelta(t, 720, float64(s.Width), 1e-9)
	assert.InDelta(t, 432, float64(s.Height), 1e-9)
}
