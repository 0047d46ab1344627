package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const fixtureCSV = `periode_data;wilayah;kecamatan;kelurahan;frekuensi;gas;lainnya;lilin;listrik;membakar_sampah;rokok
2024;Jakarta Selatan.;Kebayoran Baru;Gunung;7;1;1;0;4;1;0
2024;Jakarta Selatan.;Cilandak;Lebak Bulus;3;0;1;0;2;0;0
2024;Jakarta Pusat;Tanah Abang;Bendungan Hilir;9;2;0;1;5;0;1
2024;Jakarta Timur;Kebayoran Baru;Duplikat;2;0;0;0;1;1;0
`

// resetFlags clears values and Changed state left over from earlier runs.
func resetFlags() {
	cfgFile, dataPath, debug = "", "", false
	selRegions, selDistricts, selSubdistricts = nil, nil, nil
	sumOutputPath, sumJSON = "", false
	chOutDir, chFormat, chOnly = "charts", "png", nil
	expOutputPath = "jakarta-fires.xlsx"
	optJSON = false
	serveAddr = ""
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}
}

// runCmd is a helper to execute the root command with args and capture stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	require.NoError(t, err, "command %v", args)
	return out
}

// isolate points HOME at a temp dir and writes the fixture dataset there.
func isolate(t *testing.T) (home, data string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	data = filepath.Join(home, "kebakaran.csv")
	require.NoError(t, os.WriteFile(data, []byte(fixtureCSV), 0o644))
	return home, data
}

func TestCLI_SummaryMarkdown(t *testing.T) {
	_, data := isolate(t)
	out := mustRun(t, "summary", "--data", data, "--region", "Jakarta Selatan.")
	assert.Contains(t, out, "[DATASET SUMMARY]")
	assert.Contains(t, out, "Kebayoran Baru")
	assert.NotContains(t, out, "| Bendungan Hilir |")
}

func TestCLI_SummaryJSONToFile(t *testing.T) {
	home, data := isolate(t)
	path := filepath.Join(home, "out", "view.json")
	out := mustRun(t, "summary", "--data", data, "--json", "-o", path, "--district", "Kebayoran Baru")
	assert.Contains(t, out, "✓ Wrote summary")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var v struct {
		RowCount int `json:"row_count"`
	}
	require.NoError(t, json.Unmarshal(b, &v))
	assert.Equal(t, 2, v.RowCount)
}

func TestCLI_Charts(t *testing.T) {
	home, data := isolate(t)
	dir := filepath.Join(home, "charts")
	out := mustRun(t, "charts", "--data", data, "--out-dir", dir, "--only", "regions,causes")
	assert.Contains(t, out, "✓ Wrote 2 charts")
	for _, name := range []string{"regions.png", "causes.png"} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")), name)
	}
}

func TestCLI_ChartsUnknownName(t *testing.T) {
	home, data := isolate(t)
	_, err := runCmd(t, "charts", "--data", data, "--out-dir", filepath.Join(home, "c"), "--only", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chart")
	_, statErr := os.Stat(filepath.Join(home, "c", "bogus.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCLI_Export(t *testing.T) {
	home, data := isolate(t)
	path := filepath.Join(home, "fires.xlsx")
	out := mustRun(t, "export", "--data", data, "-o", path, "--subdistrict", "Gunung")
	assert.Contains(t, out, "(1 rows)")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Incidents")
}

func TestCLI_Options(t *testing.T) {
	_, data := isolate(t)
	out := mustRun(t, "options", "--data", data, "--region", "Jakarta Pusat")
	assert.Contains(t, out, "Regions (3):")
	assert.Contains(t, out, "Districts (1):\n  Tanah Abang")
	assert.Contains(t, out, "Matching rows: 1")
}

func TestCLI_MissingDataFile(t *testing.T) {
	home, _ := isolate(t)
	_, err := runCmd(t, "summary", "--data", filepath.Join(home, "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home, _ := isolate(t)
	mustRun(t, "config", "set", "top_districts", "5")
	b, err := os.ReadFile(filepath.Join(home, ".firedash", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "top_districts: 5")

	out := mustRun(t, "config", "show")
	assert.Contains(t, out, "top_districts: 5")

	_, err = runCmd(t, "config", "set", "colour", "red")
	require.Error(t, err)
	_, err = runCmd(t, "config", "set", "header_check", "loose")
	require.Error(t, err)
}
