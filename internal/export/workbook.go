// Package export writes a dashboard view as an XLSX workbook.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/firedash/internal/analysis"
	"github.com/KaramelBytes/firedash/internal/dataset"
)

// Sheet names in workbook order.
const (
	SheetSummary     = "Summary"
	SheetIncidents   = "Incidents"
	SheetRegions     = "Regions"
	SheetDistricts   = "Districts"
	SheetCauses      = "Causes"
	SheetCorrelation = "Correlation"
)

// Sheets lists every sheet Build creates.
var Sheets = []string{SheetSummary, SheetIncidents, SheetRegions, SheetDistricts, SheetCauses, SheetCorrelation}

// Options controls workbook metadata.
type Options struct {
	// Now stamps the Summary sheet; zero means time.Now.
	Now time.Time
	// ID identifies the document; empty means a fresh UUID.
	ID string
}

// book wraps an excelize file with a bold header style.
type book struct {
	f      *excelize.File
	header int
}

func (b *book) row(sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return b.f.SetSheetRow(sheet, cell, &values)
}

func (b *book) headerRow(sheet string, widths []float64, names ...string) error {
	vals := make([]any, len(names))
	for i, n := range names {
		vals[i] = n
	}
	if err := b.row(sheet, 1, vals...); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(names), 1)
	if err != nil {
		return err
	}
	if err := b.f.SetCellStyle(sheet, "A1", last, b.header); err != nil {
		return err
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := b.f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

// Build assembles the workbook for v. The caller must Close the result.
func Build(v *analysis.View, opt Options) (*excelize.File, error) {
	if opt.Now.IsZero() {
		opt.Now = time.Now()
	}
	if opt.ID == "" {
		opt.ID = uuid.NewString()
	}
	f := excelize.NewFile()
	ok := false
	defer func() {
		if !ok {
			_ = f.Close()
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	for _, s := range Sheets[1:] {
		if _, err := f.NewSheet(s); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", s, err)
		}
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"CB181D"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	b := &book{f: f, header: style}

	steps := []struct {
		name string
		fn   func(*book, *analysis.View, Options) error
	}{
		{SheetSummary, writeSummary},
		{SheetIncidents, writeIncidents},
		{SheetRegions, writeRegions},
		{SheetDistricts, writeDistricts},
		{SheetCauses, writeCauses},
		{SheetCorrelation, writeCorrelation},
	}
	for _, s := range steps {
		if err := s.fn(b, v, opt); err != nil {
			return nil, fmt.Errorf("write %s sheet: %w", s.name, err)
		}
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      "Jakarta fire incidents",
		Identifier: opt.ID,
		Creator:    "firedash",
		Created:    opt.Now.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("doc properties: %w", err)
	}
	f.SetActiveSheet(0)
	ok = true
	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, v *analysis.View, opt Options) error {
	f, err := Build(v, opt)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Bytes returns the encoded workbook.
func Bytes(v *analysis.View, opt Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, opt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(b *book, v *analysis.View, opt Options) error {
	s := SheetSummary
	if err := b.headerRow(s, []float64{28, 48}, "Metric", "Value"); err != nil {
		return err
	}
	electrical := "n/a"
	if v.Headline.ElectricalPercentOK {
		electrical = fmt.Sprintf("%.1f%%", v.Headline.ElectricalPercent)
	}
	rows := [][]any{
		{"Document ID", opt.ID},
		{"Generated", opt.Now.Format("2006-01-02 15:04:05")},
		{"Source", v.Source},
		{"Selected regions", joinOrAll(v.Selection.Regions)},
		{"Selected districts", joinOrAll(v.Selection.Districts)},
		{"Selected sub-districts", joinOrAll(v.Selection.Subdistricts)},
		{"Rows in selection", v.RowCount},
		{"Total incidents", v.Headline.TotalIncidents},
		{"Locations", v.Headline.Locations},
		{"Electrical share", electrical},
		{"Highest risk area", v.Headline.HighestRiskArea},
		{"Average incidents per area", v.Headline.AverageIncidents},
	}
	for i, r := range rows {
		if err := b.row(s, i+2, r...); err != nil {
			return err
		}
	}
	next := len(rows) + 2
	for _, w := range v.Warnings {
		if err := b.row(s, next, "Warning", w); err != nil {
			return err
		}
		next++
	}
	return nil
}

func writeIncidents(b *book, v *analysis.View, _ Options) error {
	s := SheetIncidents
	head := []string{"Period", "Region", "District", "Sub-district", "Frequency"}
	widths := []float64{10, 22, 22, 24, 11}
	for _, c := range dataset.Causes {
		head = append(head, c.Label())
		widths = append(widths, 14)
	}
	head = append(head, "Total by cause", "Region (short)")
	widths = append(widths, 15, 15)
	if err := b.headerRow(s, widths, head...); err != nil {
		return err
	}
	for i, r := range v.Rows {
		vals := []any{r.Period, r.Region, r.District, r.Subdistrict, r.Frequency}
		for _, c := range dataset.Causes {
			vals = append(vals, r.Causes.Get(c))
		}
		vals = append(vals, r.TotalByCause, r.RegionShort)
		if err := b.row(s, i+2, vals...); err != nil {
			return err
		}
	}
	if len(v.Rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(head), len(v.Rows)+1)
	if err != nil {
		return err
	}
	return b.f.AutoFilter(s, "A1:"+last, nil)
}

func writeGroups(b *book, sheet, label string, groups []analysis.GroupTotal) error {
	if err := b.headerRow(sheet, []float64{26, 12}, label, "Fires"); err != nil {
		return err
	}
	for i, g := range groups {
		if err := b.row(sheet, i+2, g.Key, g.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeRegions(b *book, v *analysis.View, _ Options) error {
	return writeGroups(b, SheetRegions, "Region", v.RegionTotals)
}

func writeDistricts(b *book, v *analysis.View, _ Options) error {
	return writeGroups(b, SheetDistricts, "District", v.TopDistricts)
}

func writeCauses(b *book, v *analysis.View, _ Options) error {
	s := SheetCauses
	if err := b.headerRow(s, []float64{18, 12, 12}, "Cause", "Fires", "Share (%)"); err != nil {
		return err
	}
	for i, c := range v.CauseTotals {
		if err := b.row(s, i+2, c.Label, c.Count, c.Percent); err != nil {
			return err
		}
	}
	return nil
}

func writeCorrelation(b *book, v *analysis.View, _ Options) error {
	s := SheetCorrelation
	m := v.Correlation
	head := append([]string{""}, m.Columns...)
	widths := make([]float64, len(head))
	for i := range widths {
		widths[i] = 14
	}
	if err := b.headerRow(s, widths, head...); err != nil {
		return err
	}
	for i, name := range m.Columns {
		vals := []any{name}
		for _, x := range m.Values[i] {
			vals = append(vals, x)
		}
		if err := b.row(s, i+2, vals...); err != nil {
			return err
		}
	}
	if len(m.Degenerate) > 0 {
		note := "Undefined (reported as 0): " + strings.Join(m.Degenerate, ", ")
		if err := b.row(s, len(m.Columns)+3, note); err != nil {
			return err
		}
	}
	return nil
}

func joinOrAll(vals []string) string {
	if len(vals) == 0 {
		return "All"
	}
	return strings.Join(vals, ", ")
}
