package analysis

import (
	"github.com/KaramelBytes/firedash/internal/dataset"
	"github.com/KaramelBytes/firedash/internal/filter"
)

// RenderOptions sizes the rankings of a View.
type RenderOptions struct {
	Filter            filter.Options
	TopDistricts      int
	TopSubdistricts   int
	TopCauseDistricts int
	MapURL            string
}

// DefaultRenderOptions mirrors the reference dashboard.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		TopDistricts:      15,
		TopSubdistricts:   15,
		TopCauseDistricts: 10,
		MapURL:            "https://datawrapper.dwcdn.net/oSBOq/1/",
	}
}

// Headline holds the scalar metrics shown above the charts.
type Headline struct {
	TotalIncidents      int     `json:"total_incidents"`
	Locations           int     `json:"locations"`
	ElectricalPercent   float64 `json:"electrical_percent"`
	ElectricalPercentOK bool    `json:"electrical_percent_ok"`
	HighestRiskArea     string  `json:"highest_risk_area"`
	AverageIncidents    float64 `json:"average_incidents"`
}

// HeadlineFor computes the headline metrics of rows.
func HeadlineFor(rows []dataset.Record) Headline {
	h := Headline{TotalIncidents: TotalFrequency(rows), Locations: len(rows)}
	h.ElectricalPercent, h.ElectricalPercentOK = PercentOfTotal(rows, dataset.CauseElectrical)
	if r, ok := HighestRisk(rows); ok {
		h.HighestRiskArea = r.Subdistrict
	}
	h.AverageIncidents, _ = Mean(rows)
	return h
}

// Insights are the narrative facts of the insights tab.
type Insights struct {
	ElectricalPercent     float64     `json:"electrical_percent"`
	ElectricalPercentOK   bool        `json:"electrical_percent_ok"`
	TopElectricalDistrict *GroupTotal `json:"top_electrical_district,omitempty"`
	TopTrashDistrict      *GroupTotal `json:"top_trash_district,omitempty"`
	HighestRegion         string      `json:"highest_region,omitempty"`
	LowestRegion          string      `json:"lowest_region,omitempty"`
}

// InsightsFor derives the insight facts of rows.
func InsightsFor(rows []dataset.Record) Insights {
	var in Insights
	in.ElectricalPercent, in.ElectricalPercentOK = PercentOfTotal(rows, dataset.CauseElectrical)
	if top := TopGroups(GroupSum(rows, ByDistrict, CauseValue(dataset.CauseElectrical)), 1); len(top) == 1 {
		in.TopElectricalDistrict = &top[0]
	}
	if top := TopGroups(GroupSum(rows, ByDistrict, CauseValue(dataset.CauseTrashBurning)), 1); len(top) == 1 {
		in.TopTrashDistrict = &top[0]
	}
	ranked := TopGroups(GroupSum(rows, ByRegionShort, Frequency), len(rows))
	if len(ranked) > 0 {
		in.HighestRegion = ranked[0].Key
		in.LowestRegion = ranked[len(ranked)-1].Key
	}
	return in
}

// View is everything the presentation layer draws for one selection.
type View struct {
	Source             string           `json:"source"`
	Selection          filter.Selection `json:"selection"`
	RegionOptions      []string         `json:"region_options"`
	DistrictOptions    []string         `json:"district_options"`
	SubdistrictOptions []string         `json:"subdistrict_options"`
	Rows               []dataset.Record `json:"-"`
	RowCount           int              `json:"row_count"`

	// Headline and Insights describe the whole table.
	Headline Headline `json:"headline"`
	Insights Insights `json:"insights"`

	RegionTotals      []GroupTotal     `json:"region_totals"`
	TopDistricts      []GroupTotal     `json:"top_districts"`
	Hierarchy         Node             `json:"hierarchy"`
	CauseTotals       []CauseShare     `json:"cause_totals"`
	CausesByRegion    []GroupCauses    `json:"causes_by_region"`
	TopDistrictCauses []GroupCauses    `json:"top_district_causes"`
	TopSubdistricts   []dataset.Record `json:"top_subdistricts"`
	HighestRisk       *Breakdown       `json:"highest_risk,omitempty"`
	Correlation       CorrMatrix       `json:"correlation"`

	MapURL   string   `json:"map_url,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Render filters t by sel and computes every aggregate of the dashboard.
// It has no side effects.
func Render(t *dataset.Table, sel filter.Selection, opt RenderOptions) *View {
	all := t.Rows()
	res := filter.Apply(t, sel, opt.Filter)
	rows := res.Rows

	v := &View{
		Source:             t.Name(),
		Selection:          sel,
		RegionOptions:      res.RegionOptions,
		DistrictOptions:    res.DistrictOptions,
		SubdistrictOptions: res.SubdistrictOptions,
		Rows:               rows,
		RowCount:           len(rows),
		Headline:           HeadlineFor(all),
		Insights:           InsightsFor(all),
		RegionTotals:       nonNilGroups(GroupSum(rows, ByRegion, Frequency)),
		TopDistricts:       TopGroups(GroupSum(rows, ByDistrict, Frequency), opt.TopDistricts),
		Hierarchy:          Hierarchy("Jakarta", rows),
		CauseTotals:        CauseTotals(rows),
		CausesByRegion:     nonNilCauses(CausesByGroup(rows, ByRegionShort)),
		TopDistrictCauses:  TopGroupCauses(rows, ByDistrict, opt.TopCauseDistricts),
		TopSubdistricts:    TopNByFrequency(rows, opt.TopSubdistricts),
		Correlation:        Correlation(rows),
		MapURL:             opt.MapURL,
		Warnings:           t.Warnings(),
	}
	if len(v.TopSubdistricts) > 0 {
		if b, ok := CauseBreakdown(rows, v.TopSubdistricts[0].Subdistrict); ok {
			v.HighestRisk = &b
		}
	}
	return v
}

func nonNilGroups(g []GroupTotal) []GroupTotal {
	if g == nil {
		return []GroupTotal{}
	}
	return g
}

func nonNilCauses(g []GroupCauses) []GroupCauses {
	if g == nil {
		return []GroupCauses{}
	}
	return g
}
