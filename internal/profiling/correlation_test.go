package profiling

import (
	"math"
	"testing"

	"solareda/domain/dataset"
	"solareda/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestCorrelations_PerfectLinearPair(t *testing.T) {
	frame := dataset.NewFrame("linear")
	frame.AddColumn(dataset.Column{Name: "GHI", Type: dataset.TypeNumeric, Values: []float64{1, 2, 3, 4, 5}})
	frame.AddColumn(dataset.Column{Name: "DNI", Type: dataset.TypeNumeric, Values: []float64{2, 4, 6, 8, 10}})
	frame.AddColumn(dataset.Column{Name: "Tamb", Type: dataset.TypeNumeric, Values: []float64{5, 4, 3, 2, 1}})

	matrix, err := Correlations(frame, nil)
	if err != nil {
		t.Fatalf("Correlations failed: %v", err)
	}

	assert.Equal(t, []string{"GHI", "DNI", "Tamb"}, matrix.Columns)

	r, ok := matrix.At("GHI", "DNI")
	assert.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-9)

	r, _ = matrix.At("GHI", "Tamb")
	assert.InDelta(t, -1.0, r, 1e-9)

	// Diagonal is exactly 1 and the matrix is symmetric
	for i := range matrix.Columns {
		assert.Equal(t, 1.0, matrix.Values[i][i])
		for j := range matrix.Columns {
			assert.Equal(t, matrix.Values[i][j], matrix.Values[j][i])
		}
	}
}

func TestCorrelations_PairwiseCompleteObservations(t *testing.T) {
	nan := math.NaN()
	frame := dataset.NewFrame("gaps")
	frame.AddColumn(dataset.Column{Name: "GHI", Type: dataset.TypeNumeric, Values: []float64{1, nan, 3, 4, 5}})
	frame.AddColumn(dataset.Column{Name: "DNI", Type: dataset.TypeNumeric, Values: []float64{2, 4, nan, 8, 10}})

	matrix, err := Correlations(frame, nil)
	if err != nil {
		t.Fatalf("Correlations failed: %v", err)
	}

	// Rows 0, 3, 4 are complete in both columns and lie on y = 2x
	r, _ := matrix.At("GHI", "DNI")
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestCorrelations_UndefinedPairReportsZero(t *testing.T) {
	frame := dataset.NewFrame("flat")
	frame.AddColumn(dataset.Column{Name: "GHI", Type: dataset.TypeNumeric, Values: []float64{1, 2, 3}})
	frame.AddColumn(dataset.Column{Name: "Constant", Type: dataset.TypeNumeric, Values: []float64{7, 7, 7}})

	matrix, err := Correlations(frame, nil)
	if err != nil {
		t.Fatalf("Correlations failed: %v", err)
	}

	r, _ := matrix.At("GHI", "Constant")
	assert.Equal(t, 0.0, r)
}

func TestCorrelations_Validation(t *testing.T) {
	frame := dataset.NewFrame("labels-only")
	frame.AddColumn(dataset.Column{Name: "Comments", Type: dataset.TypeCategorical, Labels: []string{"a"}})

	_, err := Correlations(frame, nil)
	assert.Equal(t, errors.CodeEmptyColumnSet, errors.GetCode(err))

	_, err = Correlations(frame, []string{"GHI"})
	assert.Equal(t, errors.CodeUnknownColumn, errors.GetCode(err))

	_, err = Correlations(frame, []string{"Comments"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
