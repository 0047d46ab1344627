package dataset

import (
	"encoding/json"
	"strings"
)

// Cause is one of the six tracked ignition categories.
type Cause int

const (
	CauseGas Cause = iota
	CauseOther
	CauseCandle
	CauseElectrical
	CauseTrashBurning
	CauseCigarette

	numCauses
)

// Causes lists every cause in source column order.
var Causes = []Cause{CauseGas, CauseOther, CauseCandle, CauseElectrical, CauseTrashBurning, CauseCigarette}

var causeKeys = [numCauses]string{"gas", "other", "candle", "electrical", "trash_burning", "cigarette"}

var causeLabels = [numCauses]string{"Gas", "Other", "Candle", "Electrical", "Trash Burning", "Cigarette"}

// Key returns the canonical snake_case identifier of the cause.
func (c Cause) Key() string {
	if c < 0 || c >= numCauses {
		return "unknown"
	}
	return causeKeys[c]
}

// Label returns a human readable name.
func (c Cause) Label() string {
	if c < 0 || c >= numCauses {
		return "Unknown"
	}
	return causeLabels[c]
}

func (c Cause) String() string { return c.Key() }

// ParseCause resolves a cause key or label, case-insensitively.
func ParseCause(s string) (Cause, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	for i, k := range causeKeys {
		if s == k {
			return Cause(i), true
		}
	}
	return 0, false
}

// CauseCounts holds one count per cause, indexed by Cause.
type CauseCounts [numCauses]int

// Get returns the count for c.
func (cc CauseCounts) Get(c Cause) int {
	if c < 0 || c >= numCauses {
		return 0
	}
	return cc[c]
}

// Sum adds the six counts.
func (cc CauseCounts) Sum() int {
	var t int
	for _, v := range cc {
		t += v
	}
	return t
}

// Add returns the element-wise sum of cc and o.
func (cc CauseCounts) Add(o CauseCounts) CauseCounts {
	for i := range cc {
		cc[i] += o[i]
	}
	return cc
}

// MarshalJSON encodes the counts as an object keyed by cause key.
func (cc CauseCounts) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, numCauses)
	for i, v := range cc {
		m[causeKeys[i]] = v
	}
	return json.Marshal(m)
}

// Record is one row of the incident table.
type Record struct {
	Period      string      `json:"period"`
	Region      string      `json:"region"`
	District    string      `json:"district"`
	Subdistrict string      `json:"subdistrict"`
	Frequency   int         `json:"frequency"`
	Causes      CauseCounts `json:"causes"`

	// Derived at load time.
	TotalByCause int    `json:"total_by_cause"`
	RegionShort  string `json:"region_short"`
}

// RegionShort returns the last whitespace-separated token of region with
// every '.' removed: "Jakarta Selatan." -> "Selatan".
func RegionShort(region string) string {
	fields := strings.Fields(region)
	if len(fields) == 0 {
		return ""
	}
	return strings.ReplaceAll(fields[len(fields)-1], ".", "")
}

// derive fills the computed columns. It is only called while loading.
func (r *Record) derive() {
	r.TotalByCause = r.Causes.Sum()
	r.RegionShort = RegionShort(r.Region)
}

// Table is the immutable, loaded incident dataset.
type Table struct {
	name     string
	rows     []Record
	warnings []string
}

// NewTable builds a table from already parsed records, computing derived
// columns. The input slice is copied.
func NewTable(name string, records []Record) *Table {
	rows := make([]Record, len(records))
	copy(rows, records)
	for i := range rows {
		rows[i].derive()
	}
	return &Table{name: name, rows: rows}
}

// Name is the base name of the source file.
func (t *Table) Name() string { return t.name }

// Len reports the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of every row in load order.
func (t *Table) Rows() []Record {
	out := make([]Record, len(t.rows))
	copy(out, t.rows)
	return out
}

// Warnings lists rows skipped during load.
func (t *Table) Warnings() []string {
	out := make([]string, len(t.warnings))
	copy(out, t.warnings)
	return out
}
