package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	errEmpty     = errors.New("empty cell")
	errNegative  = errors.New("negative count")
	errFraction  = errors.New("not a whole number")
	errNotNumber = errors.New("not a number")
)

// parseCount reads a non-negative whole number. Thousands separators
// ('.', ',' or space) are accepted, as is a zero fraction such as "3,0".
func parseCount(s string) (int, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" {
		return 0, errEmpty
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0, errNegative
		}
		return n, nil
	}
	f, ok := parseLocaleFloat(raw)
	if !ok {
		return 0, errNotNumber
	}
	if f < 0 {
		return 0, errNegative
	}
	if f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", errFraction, f)
	}
	return int(f), nil
}

// parseLocaleFloat decides the decimal separator from the last of ',' and '.'
// and strips the other as a thousands separator.
func parseLocaleFloat(raw string) (float64, bool) {
	dec := '.'
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0:
		if cpos > dpos {
			dec = ','
		}
	case cpos >= 0:
		// "1,234" is a thousands group, "3,0" a decimal.
		if len(raw)-cpos-1 != 3 {
			dec = ','
		}
	case dpos >= 0:
		if len(raw)-dpos-1 == 3 && !strings.ContainsAny(raw, "eE") {
			dec = ','
		}
	}
	for _, sep := range []rune{',', '.', ' '} {
		if sep != dec {
			raw = strings.ReplaceAll(raw, string(sep), "")
		}
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
