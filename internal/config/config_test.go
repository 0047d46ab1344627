package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/firedash/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDataPath, c.DataPath)
	assert.Equal(t, 15, c.TopDistricts)
	assert.Equal(t, 10, c.TopCauseDistricts)
	assert.Equal(t, "strict", c.HeaderCheck)
	assert.False(t, c.DistrictFilterRespectsRegion)
	r, err := c.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, ';', r)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte("data_path: from-file.csv\ntop_districts: 5\n"), 0o644))
	t.Setenv("FIREDASH_TOP_DISTRICTS", "7")

	c, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-file.csv", c.DataPath)
	assert.Equal(t, 7, c.TopDistricts)
}

func TestSave_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	t.Setenv("HOME", t.TempDir())
	c, err := config.Load("")
	require.NoError(t, err)
	c.MapURL = "https://example.org/map"
	c.SkipInvalidRows = true
	require.NoError(t, config.Save(c, p))

	back, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/map", back.MapURL)
	assert.True(t, back.SkipInvalidRows)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("FIREDASH_MAP_URL=https://example.org/env\n"), 0o644))
	t.Setenv("FIREDASH_MAP_URL", "")
	os.Unsetenv("FIREDASH_MAP_URL")
	require.NoError(t, config.LoadDotEnv(p))
	assert.Equal(t, "https://example.org/env", os.Getenv("FIREDASH_MAP_URL"))

	assert.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestDelimiterRune_Invalid(t *testing.T) {
	c := &config.Global{Delimiter: "::"}
	_, err := c.DelimiterRune()
	assert.Error(t, err)
}
