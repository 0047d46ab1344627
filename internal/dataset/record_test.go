package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionShort(t *testing.T) {
	cases := map[string]string{
		"Jakarta Selatan.": "Selatan",
		"Jakarta Pusat":    "Pusat",
		"  Jakarta  Utara": "Utara",
		"Kepulauan Seribu": "Seribu",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, RegionShort(in), "input %q", in)
	}
}

func TestParseCause(t *testing.T) {
	c, ok := ParseCause("Trash Burning")
	require.True(t, ok)
	assert.Equal(t, CauseTrashBurning, c)
	_, ok = ParseCause("lightning")
	assert.False(t, ok)
}

func TestCauseCounts_JSON(t *testing.T) {
	cc := CauseCounts{1, 2, 3, 4, 5, 6}
	b, err := json.Marshal(cc)
	require.NoError(t, err)
	var m map[string]int
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, 4, m["electrical"])
	assert.Equal(t, 21, cc.Sum())
}

func TestParseCount(t *testing.T) {
	ok := map[string]int{"0": 0, "12": 12, " 7 ": 7, "1.234": 1234, "1,234": 1234, "3,0": 3, "2.0": 2}
	for in, want := range ok {
		got, err := parseCount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "abc", "-2", "2.5", "1,5"} {
		_, err := parseCount(in)
		assert.Error(t, err, in)
	}
}
