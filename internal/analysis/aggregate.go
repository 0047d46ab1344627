package analysis

import (
	"sort"

	"github.com/KaramelBytes/firedash/internal/dataset"
)

// KeyFunc picks the grouping key of a row.
type KeyFunc func(dataset.Record) string

// ValueFunc picks the summed quantity of a row.
type ValueFunc func(dataset.Record) int

// Grouping keys.
var (
	ByRegion      KeyFunc = func(r dataset.Record) string { return r.Region }
	ByRegionShort KeyFunc = func(r dataset.Record) string { return r.RegionShort }
	ByDistrict    KeyFunc = func(r dataset.Record) string { return r.District }
	BySubdistrict KeyFunc = func(r dataset.Record) string { return r.Subdistrict }
)

// Frequency sums incident counts.
func Frequency(r dataset.Record) int { return r.Frequency }

// CauseValue sums a single cause column.
func CauseValue(c dataset.Cause) ValueFunc {
	return func(r dataset.Record) int { return r.Causes.Get(c) }
}

// GroupTotal is one group of a grouped sum.
type GroupTotal struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// GroupSum sums value per key. Groups appear in order of first occurrence.
func GroupSum(rows []dataset.Record, key KeyFunc, value ValueFunc) []GroupTotal {
	idx := map[string]int{}
	var out []GroupTotal
	for _, r := range rows {
		k := key(r)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, GroupTotal{Key: k})
		}
		out[i].Value += value(r)
	}
	return out
}

// TopGroups returns the n largest groups, ties kept in input order.
func TopGroups(groups []GroupTotal, n int) []GroupTotal {
	if n <= 0 || len(groups) == 0 {
		return []GroupTotal{}
	}
	cp := make([]GroupTotal, len(groups))
	copy(cp, groups)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Value > cp[j].Value })
	if len(cp) > n {
		cp = cp[:n]
	}
	return cp
}

// TopNByFrequency returns up to n rows sorted by descending frequency.
// Rows with equal frequency keep their table order.
func TopNByFrequency(rows []dataset.Record, n int) []dataset.Record {
	if n <= 0 || len(rows) == 0 {
		return []dataset.Record{}
	}
	cp := make([]dataset.Record, len(rows))
	copy(cp, rows)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Frequency > cp[j].Frequency })
	if len(cp) > n {
		cp = cp[:n]
	}
	return cp
}

// PercentOfTotal is the share of cause among all attributed causes, in
// percent. It reports false, with a value of 0, when no causes are recorded.
func PercentOfTotal(rows []dataset.Record, cause dataset.Cause) (float64, bool) {
	var part, total int
	for _, r := range rows {
		part += r.Causes.Get(cause)
		total += r.TotalByCause
	}
	if total == 0 {
		return 0, false
	}
	return float64(part) / float64(total) * 100, true
}

// TotalFrequency sums frequency over rows.
func TotalFrequency(rows []dataset.Record) int {
	var t int
	for _, r := range rows {
		t += r.Frequency
	}
	return t
}

// Mean is the average frequency per row; false on an empty set.
func Mean(rows []dataset.Record) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	return float64(TotalFrequency(rows)) / float64(len(rows)), true
}

// HighestRisk returns the row with the largest frequency; the first such row
// wins on ties.
func HighestRisk(rows []dataset.Record) (dataset.Record, bool) {
	if len(rows) == 0 {
		return dataset.Record{}, false
	}
	best := 0
	for i := 1; i < len(rows); i++ {
		if rows[i].Frequency > rows[best].Frequency {
			best = i
		}
	}
	return rows[best], true
}

// Breakdown is the cause vector of a single location.
type Breakdown struct {
	Name   string              `json:"name"`
	Causes dataset.CauseCounts `json:"causes"`
}

// CauseBreakdown returns the causes of the first row named subdistrict.
func CauseBreakdown(rows []dataset.Record, subdistrict string) (Breakdown, bool) {
	for _, r := range rows {
		if r.Subdistrict == subdistrict {
			return Breakdown{Name: subdistrict, Causes: r.Causes}, true
		}
	}
	return Breakdown{Name: subdistrict}, false
}

// CauseShare is one slice of the cause distribution.
type CauseShare struct {
	Cause   dataset.Cause `json:"-"`
	Key     string        `json:"cause"`
	Label   string        `json:"label"`
	Count   int           `json:"count"`
	Percent float64       `json:"percent"`
}

// CauseTotals sums every cause column. Percent is 0 when nothing is recorded.
func CauseTotals(rows []dataset.Record) []CauseShare {
	var sum dataset.CauseCounts
	for _, r := range rows {
		sum = sum.Add(r.Causes)
	}
	total := sum.Sum()
	out := make([]CauseShare, 0, len(dataset.Causes))
	for _, c := range dataset.Causes {
		s := CauseShare{Cause: c, Key: c.Key(), Label: c.Label(), Count: sum.Get(c)}
		if total > 0 {
			s.Percent = float64(s.Count) / float64(total) * 100
		}
		out = append(out, s)
	}
	return out
}

// GroupCauses is the cause vector summed over one group.
type GroupCauses struct {
	Key    string              `json:"key"`
	Causes dataset.CauseCounts `json:"causes"`
}

// CausesByGroup sums every cause per key, in order of first occurrence.
func CausesByGroup(rows []dataset.Record, key KeyFunc) []GroupCauses {
	idx := map[string]int{}
	var out []GroupCauses
	for _, r := range rows {
		k := key(r)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, GroupCauses{Key: k})
		}
		out[i].Causes = out[i].Causes.Add(r.Causes)
	}
	return out
}

// TopGroupCauses ranks groups by summed frequency and returns the cause
// vectors of the n largest, in rank order.
func TopGroupCauses(rows []dataset.Record, key KeyFunc, n int) []GroupCauses {
	top := TopGroups(GroupSum(rows, key, Frequency), n)
	byKey := map[string]dataset.CauseCounts{}
	for _, g := range CausesByGroup(rows, key) {
		byKey[g.Key] = g.Causes
	}
	out := make([]GroupCauses, 0, len(top))
	for _, g := range top {
		out = append(out, GroupCauses{Key: g.Key, Causes: byKey[g.Key]})
	}
	return out
}
