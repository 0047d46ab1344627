package dataset_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/firedash/internal/dataset"
)

const header = "periode_data;wilayah;kecamatan;kelurahan;frekuensi;gas;lainnya;lilin;listrik;membakar_sampah;rokok"

var fixtureRows = []string{
	"2024;Jakarta Selatan.;Kebayoran Baru;Gunung;7;1;1;0;4;1;0",
	"2024;Jakarta Selatan.;Cilandak;Lebak Bulus;3;0;1;0;2;0;0",
	"2024;Jakarta Pusat;Tanah Abang;Bendungan Hilir;9;2;0;1;5;0;1",
	"2024;Jakarta Timur;Kebayoran Baru;Duplikat;2;0;0;0;1;1;0",
}

func writeFixture(t *testing.T, lines ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "kebakaran.csv")
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return p
}

func TestLoadFile_DerivesColumns(t *testing.T) {
	p := writeFixture(t, append([]string{header}, fixtureRows...)...)
	tbl, err := dataset.LoadFile(p, dataset.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 4, tbl.Len())
	assert.Equal(t, "kebakaran.csv", tbl.Name())

	rows := tbl.Rows()
	first := rows[0]
	assert.Equal(t, "Jakarta Selatan.", first.Region)
	assert.Equal(t, "Selatan", first.RegionShort)
	assert.Equal(t, 7, first.Frequency)
	assert.Equal(t, 4, first.Causes.Get(dataset.CauseElectrical))
	assert.Equal(t, "Pusat", rows[2].RegionShort)
	for _, r := range rows {
		assert.Equal(t, r.Causes.Sum(), r.TotalByCause)
	}
}

func TestTable_RowsReturnsCopy(t *testing.T) {
	p := writeFixture(t, header, fixtureRows[0])
	tbl, err := dataset.LoadFile(p, dataset.DefaultOptions())
	require.NoError(t, err)
	rows := tbl.Rows()
	rows[0].Frequency = 999
	assert.Equal(t, 7, tbl.Rows()[0].Frequency)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := dataset.LoadFile(filepath.Join(t.TempDir(), "nope.csv"), dataset.DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadFile_ReorderedHeaderRejected(t *testing.T) {
	reordered := "periode_data;kecamatan;wilayah;kelurahan;frekuensi;gas;lainnya;lilin;listrik;membakar_sampah;rokok"
	p := writeFixture(t, reordered, fixtureRows[0])
	_, err := dataset.LoadFile(p, dataset.DefaultOptions())
	var se *dataset.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Column)

	opt := dataset.DefaultOptions()
	opt.HeaderCheck = dataset.HeaderCount
	_, err = dataset.LoadFile(p, opt)
	assert.NoError(t, err)
}

func TestLoadFile_WrongColumnCount(t *testing.T) {
	p := writeFixture(t, "a;b;c", "1;2;3")
	_, err := dataset.LoadFile(p, dataset.DefaultOptions())
	var se *dataset.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 0, se.Column)
}

func TestLoadFile_BadNumberPolicy(t *testing.T) {
	p := writeFixture(t, header, fixtureRows[0], "2024;Jakarta Utara;Koja;Tugu;x;0;0;0;0;0;0", fixtureRows[1])

	_, err := dataset.LoadFile(p, dataset.DefaultOptions())
	var pe *dataset.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, "frequency", pe.Column)

	opt := dataset.DefaultOptions()
	opt.SkipInvalidRows = true
	tbl, err := dataset.LoadFile(p, opt)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	require.Len(t, tbl.Warnings(), 1)
	assert.Contains(t, tbl.Warnings()[0], "line 3")
}

func TestLoadFile_NegativeCountRejected(t *testing.T) {
	p := writeFixture(t, header, "2024;Jakarta Utara;Koja;Tugu;3;-1;0;0;0;0;0")
	_, err := dataset.LoadFile(p, dataset.DefaultOptions())
	var pe *dataset.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "gas", pe.Column)
}

func TestLoadFile_LocaleCountsAndBOM(t *testing.T) {
	p := writeFixture(t, "\ufeff"+header, "2024;Jakarta Barat;Cengkareng;Kapuk;1.234;3,0;0;0;1 231;0;0")
	tbl, err := dataset.LoadFile(p, dataset.DefaultOptions())
	require.NoError(t, err)
	r := tbl.Rows()[0]
	assert.Equal(t, 1234, r.Frequency)
	assert.Equal(t, 3, r.Causes.Get(dataset.CauseGas))
	assert.Equal(t, 1231, r.Causes.Get(dataset.CauseElectrical))
}

func TestLoadFile_RoundTripIdentical(t *testing.T) {
	p := writeFixture(t, append([]string{header}, fixtureRows...)...)
	a, err := dataset.LoadFile(p, dataset.DefaultOptions())
	require.NoError(t, err)
	b, err := dataset.LoadFile(p, dataset.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a.Rows(), b.Rows())
}

func TestLoader_CachesFirstLoad(t *testing.T) {
	p := writeFixture(t, append([]string{header}, fixtureRows...)...)
	l := dataset.NewLoader(p, dataset.DefaultOptions())
	first, err := l.Load()
	require.NoError(t, err)

	// Changes on disk are not observed within the loader's lifetime.
	require.NoError(t, os.WriteFile(p, []byte(header+"\n"), 0o644))
	second, err := l.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 4, second.Len())
}

func TestLoadFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"periode_data", "wilayah", "kecamatan", "kelurahan", "frekuensi", "gas", "lainnya", "lilin", "listrik", "membakar_sampah", "rokok"},
		{"2024", "Jakarta Utara", "Koja", "Tugu", 5, 1, 0, 0, 3, 1, 0},
	}
	for i, row := range cells {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	p := filepath.Join(t.TempDir(), "kebakaran.xlsx")
	require.NoError(t, f.SaveAs(p))

	tbl, err := dataset.LoadFile(p, dataset.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	r := tbl.Rows()[0]
	assert.Equal(t, "Utara", r.RegionShort)
	assert.Equal(t, 5, r.TotalByCause)
}
