package dataset

import (
	"fmt"
	"strings"
	"unicode"
)

// HeaderCheck selects how the header row is validated before being discarded.
type HeaderCheck string

const (
	// HeaderStrict matches every header cell against the aliases of its position.
	HeaderStrict HeaderCheck = "strict"
	// HeaderCount only checks the number of columns.
	HeaderCount HeaderCheck = "count"
)

// ParseHeaderCheck validates a configured header mode. Empty means strict.
func ParseHeaderCheck(s string) (HeaderCheck, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return HeaderStrict, nil
	case "count":
		return HeaderCount, nil
	default:
		return "", fmt.Errorf("invalid header_check: %s (use strict or count)", s)
	}
}

type column struct {
	name    string
	aliases []string
}

// columns is the positional source schema. Aliases are matched as substrings
// of the normalized header cell.
var columns = []column{
	{"period", []string{"periode", "period", "tahun", "bulan", "tanggal", "date"}},
	{"region", []string{"wilayah", "region", "kota", "kabupaten"}},
	{"district", []string{"kecamatan", "district"}},
	{"subdistrict", []string{"kelurahan", "subdistrict", "desa", "village"}},
	{"frequency", []string{"frekuensi", "frequency", "jumlah", "kejadian", "total", "count"}},
	{"gas", []string{"gas"}},
	{"other", []string{"lainnya", "lain", "other"}},
	{"candle", []string{"lilin", "candle"}},
	{"electrical", []string{"listrik", "electric", "korsleting"}},
	{"trash_burning", []string{"sampah", "trash", "garbage"}},
	{"cigarette", []string{"rokok", "puntung", "cigarette", "smok"}},
}

// ColumnCount is the number of columns every source row must have.
var ColumnCount = len(columns)

// ColumnNames returns the canonical column identifiers in source order.
func ColumnNames() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.name
	}
	return out
}

// SchemaError reports a source whose header does not match the schema.
type SchemaError struct {
	Source string
	Column int // 1-based; 0 when the column count is wrong
	Got    string
	Want   string
}

func (e *SchemaError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("schema mismatch in %s: %s columns, want %s", e.Source, e.Got, e.Want)
	}
	return fmt.Sprintf("schema mismatch in %s: column %d is %q, want %s", e.Source, e.Column, e.Got, e.Want)
}

// ParseError reports a numeric cell that could not be read as a count.
type ParseError struct {
	Source string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line %d: column %s: invalid count %q: %v", e.Source, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func validateHeader(source string, header []string, mode HeaderCheck) error {
	if len(header) != len(columns) {
		return &SchemaError{Source: source, Got: fmt.Sprint(len(header)), Want: fmt.Sprint(len(columns))}
	}
	if mode == HeaderCount {
		return nil
	}
	for i, c := range columns {
		cell := normalizeHeader(header[i])
		if !matchesAny(cell, c.aliases) {
			return &SchemaError{Source: source, Column: i + 1, Got: strings.TrimSpace(header[i]), Want: c.name}
		}
	}
	return nil
}

func matchesAny(cell string, aliases []string) bool {
	for _, a := range aliases {
		if strings.Contains(cell, a) {
			return true
		}
	}
	return false
}

// normalizeHeader lowercases and drops everything but letters and digits.
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
