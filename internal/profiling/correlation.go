package profiling

import (
	"math"

	"solareda/domain/dataset"
	"solareda/internal/errors"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix holds pairwise Pearson correlations between numeric
// columns, computed over pairwise-complete observations. An undefined pair
// (fewer than two complete observations, or a zero-variance column) reports
// zero.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// At returns the correlation between two columns by name
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	ai, bi := -1, -1
	for i, name := range m.Columns {
		if name == a {
			ai = i
		}
		if name == b {
			bi = i
		}
	}
	if ai < 0 || bi < 0 {
		return 0, false
	}
	return m.Values[ai][bi], true
}

// Correlations computes the correlation matrix for the selected numeric
// columns; an empty selection means all numeric columns.
func Correlations(frame *dataset.Frame, columns []string) (*CorrelationMatrix, error) {
	if len(columns) == 0 {
		columns = frame.NumericColumns()
	}
	if len(columns) == 0 {
		return nil, errors.EmptyColumnSet("nothing to analyze: dataset has no numeric columns")
	}

	series := make([][]float64, len(columns))
	for i, name := range columns {
		col, ok := frame.Column(name)
		if !ok {
			return nil, errors.UnknownColumn(name)
		}
		if col.Type != dataset.TypeNumeric {
			return nil, errors.InvalidInput("column is not numeric: " + name)
		}
		series[i] = col.Values
	}

	matrix := &CorrelationMatrix{
		Columns: columns,
		Values:  make([][]float64, len(columns)),
	}
	for i := range columns {
		matrix.Values[i] = make([]float64, len(columns))
		matrix.Values[i][i] = 1
	}

	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			r := pairwiseCorrelation(series[i], series[j])
			matrix.Values[i][j] = r
			matrix.Values[j][i] = r
		}
	}
	return matrix, nil
}

// pairwiseCorrelation drops rows where either value is missing before
// correlating
func pairwiseCorrelation(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}
