// Package stats builds the correlation matrix and line fits behind the
// report's plots.
package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/depthchart/internal/domain/table"
)

// minPairs is the fewest complete pairs a coefficient is computed from.
const minPairs = 2

// Series is a named column of values. Present marks which values exist;
// a nil Present means all do.
type Series struct {
	Name    string
	Values  []float64
	Present []bool
}

func (s Series) has(i int) bool {
	return s.Present == nil || s.Present[i]
}

// CorrelationMatrix is a square, symmetric matrix of Pearson coefficients.
// Undefined entries are NaN.
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
	// Pairs holds the number of complete pairs behind each entry.
	Pairs [][]int
}

// Correlate computes pairwise-complete Pearson correlations between every
// pair of series. An entry is NaN when fewer than two rows have both
// values or when either side is constant over those rows. The diagonal is
// 1 for every series that is not constant.
func Correlate(series []Series) (CorrelationMatrix, error) {
	k := len(series)
	m := CorrelationMatrix{
		Labels: make([]string, k),
		Values: make([][]float64, k),
		Pairs:  make([][]int, k),
	}
	for i, s := range series {
		if s.Present != nil && len(s.Present) != len(s.Values) {
			return CorrelationMatrix{}, fmt.Errorf("%w: %s has %d values and %d flags", ErrShape, s.Name, len(s.Values), len(s.Present))
		}
		if i > 0 && len(s.Values) != len(series[0].Values) {
			return CorrelationMatrix{}, fmt.Errorf("%w: %s has %d rows, want %d", ErrShape, s.Name, len(s.Values), len(series[0].Values))
		}
		m.Labels[i] = s.Name
		m.Values[i] = make([]float64, k)
		m.Pairs[i] = make([]int, k)
	}

	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			r, n := pearson(series[i], series[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			m.Values[i][j], m.Values[j][i] = r, r
			m.Pairs[i][j], m.Pairs[j][i] = n, n
		}
	}
	return m, nil
}

// pearson returns the coefficient over rows where both series are present
// and the number of such rows.
func pearson(a, b Series) (float64, int) {
	xs, ys := complete(a, b)
	n := len(xs)
	if n < minPairs || constant(xs) || constant(ys) {
		return math.NaN(), n
	}
	r := stat.Correlation(xs, ys, nil)
	return math.Max(-1, math.Min(1, r)), n
}

// complete returns the rows where both series have a value.
func complete(a, b Series) (xs, ys []float64) {
	for i := range a.Values {
		if a.has(i) && b.has(i) {
			xs = append(xs, a.Values[i])
			ys = append(ys, b.Values[i])
		}
	}
	return xs, ys
}

func constant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}

// At returns the coefficient for labels a and b, and whether both exist.
func (m CorrelationMatrix) At(a, b string) (float64, bool) {
	i, j := m.index(a), m.index(b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

func (m CorrelationMatrix) index(label string) int {
	for i, l := range m.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Table renders the matrix with a leading label column; NaN is blank.
func (m CorrelationMatrix) Table() table.Table {
	cols := append([]string{""}, m.Labels...)
	rows := make([][]string, len(m.Labels))
	for i, l := range m.Labels {
		row := make([]string, 0, len(cols))
		row = append(row, l)
		for _, v := range m.Values[i] {
			if math.IsNaN(v) {
				row = append(row, "")
			} else {
				row = append(row, strconv.FormatFloat(v, 'f', 4, 64))
			}
		}
		rows[i] = row
	}
	return table.Table{Columns: cols, Rows: rows}
}

// MarshalJSON encodes NaN entries as null.
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	values := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		values[i] = make([]*float64, len(row))
		for j := range row {
			if !math.IsNaN(row[j]) {
				values[i][j] = &row[j]
			}
		}
	}
	return json.Marshal(struct {
		Labels []string     `json:"labels"`
		Values [][]*float64 `json:"values"`
		Pairs  [][]int      `json:"pairs"`
	}{Labels: m.Labels, Values: values, Pairs: m.Pairs})
}
