// Package filter narrows the incident table with the dashboard's cascading
// region, district and sub-district selection.
package filter

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/firedash/internal/dataset"
)

// Selection holds the three user choices. An empty level means no
// constraint at that level.
type Selection struct {
	Regions      []string `json:"regions"`
	Districts    []string `json:"districts"`
	Subdistricts []string `json:"subdistricts"`
}

// Options adjusts the cascade.
type Options struct {
	// DistrictsWithinRegions keeps the region filter when districts are
	// selected without sub-districts. By default a district selection is
	// applied to the full table and the region choice is ignored.
	DistrictsWithinRegions bool
}

// Result is the filtered view plus the choices each selector may offer.
type Result struct {
	Rows               []dataset.Record `json:"-"`
	RegionOptions      []string         `json:"region_options"`
	DistrictOptions    []string         `json:"district_options"`
	SubdistrictOptions []string         `json:"subdistrict_options"`
}

// Apply runs the cascade against t. The table is not modified.
func Apply(t *dataset.Table, sel Selection, opt Options) Result {
	all := t.Rows()
	regions := toSet(sel.Regions)
	districts := toSet(sel.Districts)
	subs := toSet(sel.Subdistricts)

	regionRows := keep(all, regions, region)
	res := Result{
		RegionOptions:   unique(all, region),
		DistrictOptions: unique(regionRows, district),
	}

	districtRows := regionRows
	if len(districts) > 0 {
		districtRows = keep(regionRows, districts, district)
	}
	res.SubdistrictOptions = unique(districtRows, subdistrict)

	switch {
	case len(subs) > 0:
		res.Rows = keep(districtRows, subs, subdistrict)
	case len(districts) > 0:
		base := all
		if opt.DistrictsWithinRegions {
			base = regionRows
		}
		res.Rows = keep(base, districts, district)
	default:
		res.Rows = regionRows
	}
	return res
}

func region(r dataset.Record) string      { return r.Region }
func district(r dataset.Record) string    { return r.District }
func subdistrict(r dataset.Record) string { return r.Subdistrict }

// keep returns the rows whose field is in set; an empty set keeps all rows.
func keep(rows []dataset.Record, set map[string]struct{}, field func(dataset.Record) string) []dataset.Record {
	if len(set) == 0 {
		return rows
	}
	out := make([]dataset.Record, 0, len(rows))
	for _, r := range rows {
		if _, ok := set[field(r)]; ok {
			out = append(out, r)
		}
	}
	return out
}

func unique(rows []dataset.Record, field func(dataset.Record) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range rows {
		v := field(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func toSet(vals []string) map[string]struct{} {
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
