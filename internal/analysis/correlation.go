package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/firedash/internal/dataset"
)

// CorrMatrix holds a symmetric Pearson correlation matrix.
type CorrMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"` // row-major, Values[i][j]
	// Degenerate lists columns with fewer than two rows or no variance.
	// Their correlations are undefined and reported as 0.
	Degenerate []string `json:"degenerate,omitempty"`
}

// PairCorr is a simple correlation pair summary.
type PairCorr struct {
	A string  `json:"a"`
	B string  `json:"b"`
	R float64 `json:"r"`
}

// CorrelationColumns are frequency followed by the six causes.
func CorrelationColumns() []string {
	cols := []string{"frequency"}
	for _, c := range dataset.Causes {
		cols = append(cols, c.Key())
	}
	return cols
}

// Correlation computes pairwise Pearson correlation across frequency and
// the six cause columns of rows.
func Correlation(rows []dataset.Record) CorrMatrix {
	names := CorrelationColumns()
	n := len(names)
	series := make([][]float64, n)
	for i := range series {
		series[i] = make([]float64, len(rows))
	}
	for j, r := range rows {
		series[0][j] = float64(r.Frequency)
		for k, c := range dataset.Causes {
			series[k+1][j] = float64(r.Causes.Get(c))
		}
	}

	m := CorrMatrix{Columns: names, Values: make([][]float64, n)}
	degenerate := make([]bool, n)
	for i := range series {
		m.Values[i] = make([]float64, n)
		if constant(series[i]) {
			degenerate[i] = true
			m.Degenerate = append(m.Degenerate, names[i])
		}
	}
	for a := 0; a < n; a++ {
		if degenerate[a] {
			continue
		}
		m.Values[a][a] = 1
		for b := a + 1; b < n; b++ {
			if degenerate[b] {
				continue
			}
			r := stat.Correlation(series[a], series[b], nil)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				r = 0
			}
			r = math.Max(-1, math.Min(1, r))
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}

// constant reports whether xs has fewer than two values or zero variance.
func constant(xs []float64) bool {
	if len(xs) < 2 {
		return true
	}
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// TopPairs lists the n off-diagonal pairs with the largest |r|.
func TopPairs(m CorrMatrix, n int) []PairCorr {
	var pairs []PairCorr
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			pairs = append(pairs, PairCorr{A: m.Columns[i], B: m.Columns[j], R: m.Values[i][j]})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	if n >= 0 && len(pairs) > n {
		pairs = pairs[:n]
	}
	return pairs
}
