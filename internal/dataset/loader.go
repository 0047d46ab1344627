package dataset

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
)

// Options controls how a dataset file is read.
type Options struct {
	// Delimiter for delimited text. If 0, ';' (or '\t' for .tsv).
	Delimiter rune
	// SheetName selects an XLSX sheet; empty means the first sheet.
	SheetName string
	// HeaderCheck validates the header row before it is discarded.
	HeaderCheck HeaderCheck
	// SkipInvalidRows drops rows with unreadable counts instead of failing
	// the whole load. Each dropped row is recorded in Table.Warnings.
	SkipInvalidRows bool
}

// DefaultOptions matches the Jakarta fire department export.
func DefaultOptions() Options {
	return Options{Delimiter: ';', HeaderCheck: HeaderStrict}
}

var numericColumns = []string{"frequency", "gas", "other", "candle", "electrical", "trash_burning", "cigarette"}

// LoadFile reads and prepares a dataset without any caching.
func LoadFile(path string, opt Options) (*Table, error) {
	if opt.HeaderCheck == "" {
		opt.HeaderCheck = HeaderStrict
	}
	src := sourceFor(path)
	rr, err := src.ReadRows(path, opt)
	if err != nil {
		return nil, err
	}
	defer rr.Close()

	name := filepath.Base(path)
	header, err := rr.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Source: name, Got: "0", Want: fmt.Sprint(ColumnCount)}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := validateHeader(name, header, opt.HeaderCheck); err != nil {
		return nil, err
	}

	t := &Table{name: name}
	line := 1
	for {
		rec, err := rr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line %d: %w", line+1, err)
		}
		line++
		if blank(rec) {
			continue
		}
		if len(rec) != ColumnCount {
			if opt.SkipInvalidRows {
				t.warnings = append(t.warnings, fmt.Sprintf("line %d: %d columns, want %d", line, len(rec), ColumnCount))
				continue
			}
			return nil, &SchemaError{Source: name, Got: fmt.Sprintf("%d (line %d)", len(rec), line), Want: fmt.Sprint(ColumnCount)}
		}
		r, perr := parseRecord(name, line, rec)
		if perr != nil {
			if opt.SkipInvalidRows {
				t.warnings = append(t.warnings, perr.Error())
				continue
			}
			return nil, perr
		}
		r.derive()
		t.rows = append(t.rows, r)
	}
	return t, nil
}

func parseRecord(source string, line int, rec []string) (Record, error) {
	r := Record{
		Period:      strings.TrimSpace(rec[0]),
		Region:      strings.TrimSpace(rec[1]),
		District:    strings.TrimSpace(rec[2]),
		Subdistrict: strings.TrimSpace(rec[3]),
	}
	for i, col := range numericColumns {
		raw := rec[4+i]
		n, err := parseCount(raw)
		if err != nil {
			return Record{}, &ParseError{Source: source, Line: line, Column: col, Value: raw, Err: err}
		}
		if i == 0 {
			r.Frequency = n
		} else {
			r.Causes[i-1] = n
		}
	}
	return r, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Loader parses its file once and serves the same table afterwards.
// It is safe for concurrent use; the table is never invalidated.
type Loader struct {
	path string
	opt  Options

	once  sync.Once
	table *Table
	err   error
}

// NewLoader prepares a loader for path. Nothing is read until Load.
func NewLoader(path string, opt Options) *Loader {
	return &Loader{path: path, opt: opt}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string { return l.path }

// Load returns the cached table, reading the file on first call.
func (l *Loader) Load() (*Table, error) {
	l.once.Do(func() {
		l.table, l.err = LoadFile(l.path, l.opt)
	})
	return l.table, l.err
}
