package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/firedash/internal/dataset"
)

// Markdown renders a compact report of the view for terminals and files.
func (v *View) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if v.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", v.Source))
	}
	b.WriteString(fmt.Sprintf("Rows in view: %d\n", v.RowCount))
	b.WriteString(fmt.Sprintf("Selection: regions=%s; districts=%s; sub-districts=%s\n\n",
		listOrAll(v.Selection.Regions), listOrAll(v.Selection.Districts), listOrAll(v.Selection.Subdistricts)))

	h := v.Headline
	b.WriteString("[HEADLINE]\n")
	b.WriteString(fmt.Sprintf("- Total fires: %d\n", h.TotalIncidents))
	b.WriteString(fmt.Sprintf("- Affected locations: %d\n", h.Locations))
	b.WriteString(fmt.Sprintf("- Electrical fires: %s\n", percent(h.ElectricalPercent, h.ElectricalPercentOK)))
	b.WriteString(fmt.Sprintf("- Highest risk area: %s\n", safeName(h.HighestRiskArea)))
	b.WriteString(fmt.Sprintf("- Average fires per area: %.1f\n", h.AverageIncidents))

	if len(v.RegionTotals) > 0 {
		b.WriteString("\n[FIRES BY REGION]\n")
		for _, g := range v.RegionTotals {
			b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(g.Key), g.Value))
		}
	}
	if len(v.TopDistricts) > 0 {
		b.WriteString(fmt.Sprintf("\n[TOP %d DISTRICTS]\n", len(v.TopDistricts)))
		for i, g := range v.TopDistricts {
			b.WriteString(fmt.Sprintf("%d. %s: %d\n", i+1, safeVal(g.Key), g.Value))
		}
	}
	if len(v.CauseTotals) > 0 && v.RowCount > 0 {
		b.WriteString("\n[CAUSES]\n")
		for _, c := range v.CauseTotals {
			b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", c.Label, c.Count, c.Percent))
		}
	}
	if len(v.TopSubdistricts) > 0 {
		b.WriteString(fmt.Sprintf("\n[TOP %d HIGH-RISK SUB-DISTRICTS]\n", len(v.TopSubdistricts)))
		b.WriteString("| Sub-district | District | Region | Fires |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, r := range v.TopSubdistricts {
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %d |\n", safeVal(r.Subdistrict), safeVal(r.District), safeVal(r.Region), r.Frequency))
		}
	}
	if v.HighestRisk != nil {
		b.WriteString(fmt.Sprintf("\n[CAUSE BREAKDOWN: %s]\n", safeVal(v.HighestRisk.Name)))
		for _, c := range dataset.Causes {
			b.WriteString(fmt.Sprintf("- %s: %d\n", c.Label(), v.HighestRisk.Causes.Get(c)))
		}
	}
	if pairs := TopPairs(v.Correlation, 10); v.RowCount > 1 && len(pairs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
		if len(v.Correlation.Degenerate) > 0 {
			b.WriteString(fmt.Sprintf("- undefined (constant): %s\n", strings.Join(v.Correlation.Degenerate, ", ")))
		}
	}

	in := v.Insights
	b.WriteString("\n[INSIGHTS]\n")
	b.WriteString(fmt.Sprintf("- Electrical faults account for %s of all attributed fires.\n", percent(in.ElectricalPercent, in.ElectricalPercentOK)))
	if in.TopElectricalDistrict != nil {
		b.WriteString(fmt.Sprintf("- %s has the most electrical fires (%d).\n", safeVal(in.TopElectricalDistrict.Key), in.TopElectricalDistrict.Value))
	}
	if in.TopTrashDistrict != nil {
		b.WriteString(fmt.Sprintf("- %s has the most trash-burning fires (%d).\n", safeVal(in.TopTrashDistrict.Key), in.TopTrashDistrict.Value))
	}
	if in.HighestRegion != "" {
		b.WriteString(fmt.Sprintf("- Jakarta %s has the most fires, Jakarta %s the fewest.\n", in.HighestRegion, in.LowestRegion))
	}

	if len(v.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range v.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func percent(p float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", p)
}

func listOrAll(vals []string) string {
	if len(vals) == 0 {
		return "(all)"
	}
	return strings.Join(vals, ", ")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(none)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
