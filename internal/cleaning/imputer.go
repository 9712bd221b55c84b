package cleaning

import (
	"math"

	"solareda/domain/dataset"
	"solareda/internal/errors"

	"github.com/montanaflynn/stats"
)

// FillStrategy selects the statistic used to replace missing values
type FillStrategy string

const (
	FillMedian FillStrategy = "median"
	FillMean   FillStrategy = "mean"
)

// ParseFillStrategy validates a strategy name
func ParseFillStrategy(s string) (FillStrategy, error) {
	switch FillStrategy(s) {
	case FillMedian, FillMean:
		return FillStrategy(s), nil
	default:
		return "", errors.InvalidInput("fill strategy must be 'median' or 'mean'")
	}
}

// ColumnFill records what the imputer did to one column
type ColumnFill struct {
	Column      string  `json:"column"`
	FillValue   float64 `json:"fill_value"`
	FilledCount int     `json:"filled_count"`
}

// ImputeResult summarizes an imputation pass
type ImputeResult struct {
	Strategy    FillStrategy `json:"strategy"`
	Fills       []ColumnFill `json:"fills"`
	TotalFilled int          `json:"total_filled"`
}

// Impute replaces every missing value in each selected numeric column with
// that column's fill statistic computed over its non-missing values. Columns
// not selected are left untouched, missing values included. A column with
// zero non-missing values has no defined fill statistic and fails with
// UNDEFINED_STATISTIC rather than propagating NaN.
//
// The operation is idempotent: a second pass with the same strategy finds no
// missing values in the selected columns and changes nothing.
func Impute(frame *dataset.Frame, columns []string, strategy FillStrategy) (*ImputeResult, error) {
	if _, err := ParseFillStrategy(string(strategy)); err != nil {
		return nil, err
	}
	selected, err := resolveNumericColumns(frame, columns)
	if err != nil {
		return nil, err
	}

	result := &ImputeResult{Strategy: strategy}
	for _, name := range selected {
		values, _ := frame.NumericValues(name)

		valid := make([]float64, 0, len(values))
		for _, v := range values {
			if !math.IsNaN(v) {
				valid = append(valid, v)
			}
		}
		if len(valid) == 0 {
			return nil, errors.UndefinedStatistic(name)
		}

		var fill float64
		switch strategy {
		case FillMean:
			fill, err = stats.Mean(valid)
		default:
			fill, err = stats.Median(valid)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "computing %s fill for column %s", strategy, name)
		}

		filled := 0
		for i, v := range values {
			if math.IsNaN(v) {
				values[i] = fill
				filled++
			}
		}
		result.Fills = append(result.Fills, ColumnFill{
			Column:      name,
			FillValue:   fill,
			FilledCount: filled,
		})
		result.TotalFilled += filled
	}

	return result, nil
}

// resolveNumericColumns expands an empty selection to all numeric columns
// and validates an explicit one. Every requested name must exist and be
// numeric; a dataset with nothing numeric to analyze is an error.
func resolveNumericColumns(frame *dataset.Frame, columns []string) ([]string, error) {
	if len(columns) == 0 {
		numeric := frame.NumericColumns()
		if len(numeric) == 0 {
			return nil, errors.EmptyColumnSet("nothing to analyze: dataset has no numeric columns")
		}
		return numeric, nil
	}

	selected := make([]string, 0, len(columns))
	for _, name := range columns {
		col, ok := frame.Column(name)
		if !ok {
			return nil, errors.UnknownColumn(name)
		}
		if col.Type != dataset.TypeNumeric {
			return nil, errors.InvalidInput("column is not numeric: " + name)
		}
		selected = append(selected, name)
	}
	return selected, nil
}
