package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Source reads raw rows (header first) from a file format.
type Source interface {
	CanLoad(filename string) bool
	ReadRows(path string, opt Options) (RowReader, error)
}

// RowReader yields raw records. Next returns io.EOF when done.
type RowReader interface {
	Next() ([]string, error)
	Close() error
}

var registry []Source

// Register adds a source implementation. Later registrations are tried first.
func Register(s Source) {
	registry = append([]Source{s}, registry...)
}

func sourceFor(path string) Source {
	for _, s := range registry {
		if s.CanLoad(path) {
			return s
		}
	}
	return csvSource{}
}

func init() {
	Register(csvSource{})
	Register(xlsxSource{})
}

type csvSource struct{}

func (csvSource) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

type csvRows struct {
	f *os.File
	r *csv.Reader
}

func (c *csvRows) Next() ([]string, error) { return c.r.Read() }
func (c *csvRows) Close() error            { return c.f.Close() }

func (csvSource) ReadRows(path string, opt Options) (RowReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = ';'
		if strings.HasSuffix(strings.ToLower(path), ".tsv") {
			delim = '\t'
		}
	}
	r := csv.NewReader(f)
	r.Comma = delim
	r.TrimLeadingSpace = true
	// Column count is validated against the schema, not the first row.
	r.FieldsPerRecord = -1
	return &csvRows{f: f, r: r}, nil
}

type xlsxSource struct{}

func (xlsxSource) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

type sliceRows struct {
	rows [][]string
	next int
}

func (s *sliceRows) Next() ([]string, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}

func (s *sliceRows) Close() error { return nil }

func (xlsxSource) ReadRows(path string, opt Options) (RowReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	sheet := opt.SheetName
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("xlsx %s has no sheets", path)
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	// GetRows trims trailing empty cells; pad to the schema width.
	for i, row := range rows {
		if len(row) > 0 && len(row) < ColumnCount {
			padded := make([]string, ColumnCount)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return &sliceRows{rows: rows}, nil
}
