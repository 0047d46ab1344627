package analysis_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/firedash/internal/analysis"
	"github.com/KaramelBytes/firedash/internal/dataset"
	"github.com/KaramelBytes/firedash/internal/filter"
)

func TestRender_FullTable(t *testing.T) {
	v := analysis.Render(fixture(), filter.Selection{}, analysis.DefaultRenderOptions())
	assert.Equal(t, 5, v.RowCount)
	assert.Equal(t, 30, v.Headline.TotalIncidents)
	assert.Equal(t, 5, v.Headline.Locations)
	assert.Equal(t, "Bendungan Hilir", v.Headline.HighestRiskArea)
	assert.InDelta(t, 6.0, v.Headline.AverageIncidents, 1e-9)
	require.NotNil(t, v.HighestRisk)
	assert.Equal(t, "Bendungan Hilir", v.HighestRisk.Name)
	assert.Len(t, v.TopSubdistricts, 5)
	assert.Equal(t, []string{"Selatan", "Pusat", "Timur"}, keys(v.CausesByRegion))

	require.NotNil(t, v.Insights.TopElectricalDistrict)
	assert.Equal(t, "Kebayoran Baru", v.Insights.TopElectricalDistrict.Key)
	assert.Equal(t, 8, v.Insights.TopElectricalDistrict.Value)
	require.NotNil(t, v.Insights.TopTrashDistrict)
	assert.Equal(t, "Kebayoran Baru", v.Insights.TopTrashDistrict.Key)
	assert.Equal(t, "Selatan", v.Insights.HighestRegion)
	assert.Equal(t, "Timur", v.Insights.LowestRegion)
}

func TestRender_HeadlineIgnoresSelection(t *testing.T) {
	sel := filter.Selection{Regions: []string{"Jakarta Pusat"}}
	v := analysis.Render(fixture(), sel, analysis.DefaultRenderOptions())
	assert.Equal(t, 1, v.RowCount)
	assert.Equal(t, 30, v.Headline.TotalIncidents)
	assert.Equal(t, []analysis.GroupTotal{{Key: "Jakarta Pusat", Value: 9}}, v.RegionTotals)
}

func TestRender_EmptySelectionResult(t *testing.T) {
	sel := filter.Selection{Subdistricts: []string{"Atlantis"}}
	v := analysis.Render(fixture(), sel, analysis.DefaultRenderOptions())
	assert.Zero(t, v.RowCount)
	assert.Empty(t, v.RegionTotals)
	assert.Empty(t, v.TopDistricts)
	assert.Empty(t, v.TopSubdistricts)
	assert.Nil(t, v.HighestRisk)
	assert.Len(t, v.Correlation.Degenerate, 7)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"row_count":0`)
	assert.NotEmpty(t, v.Markdown())
}

func TestRender_EmptyTable(t *testing.T) {
	v := analysis.Render(dataset.NewTable("empty.csv", nil), filter.Selection{}, analysis.DefaultRenderOptions())
	assert.False(t, v.Headline.ElectricalPercentOK)
	assert.Empty(t, v.Headline.HighestRiskArea)
	assert.Empty(t, v.Insights.HighestRegion)
	assert.Contains(t, v.Markdown(), "Electrical fires: n/a")
}

func TestView_Markdown(t *testing.T) {
	sel := filter.Selection{Districts: []string{"Kebayoran Baru"}}
	md := analysis.Render(fixture(), sel, analysis.DefaultRenderOptions()).Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: fixture.csv",
		"Rows in view: 3",
		"districts=Kebayoran Baru",
		"[HEADLINE]",
		"- Total fires: 30",
		"[TOP 1 DISTRICTS]",
		"1. Kebayoran Baru: 18",
		"| Senayan | Kebayoran Baru | Jakarta Selatan. | 9 |",
		"[CAUSE BREAKDOWN: Senayan]",
		"[INSIGHTS]",
		"Jakarta Selatan has the most fires, Jakarta Timur the fewest.",
	} {
		assert.Contains(t, md, want)
	}
}

func keys(g []analysis.GroupCauses) []string {
	out := make([]string, len(g))
	for i, x := range g {
		out[i] = x.Key
	}
	return out
}
