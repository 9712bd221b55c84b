package cleaning

import (
	"math"

	"solareda/domain/dataset"
	"solareda/internal/errors"

	"github.com/montanaflynn/stats"
)

// DefaultOutlierThreshold is the conventional 3-sigma Z-score cutoff
const DefaultOutlierThreshold = 3.0

// ColumnScores holds the per-row Z-scores of one analyzed column. A missing
// entry scores zero. Scores use the population standard deviation of the
// column's non-missing values.
type ColumnScores struct {
	Column string    `json:"column"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"std_dev"`
	Scores []float64 `json:"scores"`
}

// OutlierResult reports which rows exceed the Z-score threshold
type OutlierResult struct {
	Threshold       float64        `json:"threshold"`
	ColumnsAnalyzed []string       `json:"columns_analyzed"`
	Mask            []bool         `json:"outlier_mask"`
	Count           int            `json:"outlier_count"`
	FlaggedIndices  []int          `json:"flagged_indices"`
	Scores          []ColumnScores `json:"z_scores"`

	flagged *dataset.Frame
}

// FlaggedRows returns the subset of rows that were flagged
func (r *OutlierResult) FlaggedRows() *dataset.Frame {
	return r.flagged
}

// DetectOutliers computes the absolute Z-score of every row in every selected
// column and flags a row when any column's |z| strictly exceeds threshold.
//
// Two policies are deliberate:
//   - missing values are excluded from a column's mean and standard deviation
//     and never flag the row they sit in;
//   - a zero-variance column scores zero everywhere, so it never flags a row
//     regardless of threshold. This replaces the NaN-comparison accident such
//     filters often inherit with an explicit rule.
func DetectOutliers(frame *dataset.Frame, columns []string, threshold float64) (*OutlierResult, error) {
	if threshold <= 0 {
		return nil, errors.InvalidInput("outlier threshold must be positive")
	}
	selected, err := resolveNumericColumns(frame, columns)
	if err != nil {
		return nil, err
	}

	rows := frame.NumRows()
	result := &OutlierResult{
		Threshold:       threshold,
		ColumnsAnalyzed: selected,
		Mask:            make([]bool, rows),
	}

	for _, name := range selected {
		values, _ := frame.NumericValues(name)
		scores := columnZScores(values)
		for i, z := range scores.Scores {
			if math.Abs(z) > threshold {
				result.Mask[i] = true
			}
		}
		scores.Column = name
		result.Scores = append(result.Scores, scores)
	}

	for i, flagged := range result.Mask {
		if flagged {
			result.Count++
			result.FlaggedIndices = append(result.FlaggedIndices, i)
		}
	}
	result.flagged = frame.SelectRows(result.FlaggedIndices)

	return result, nil
}

// columnZScores computes per-row Z-scores with population standard deviation.
// Missing entries and zero-variance columns score zero.
func columnZScores(values []float64) ColumnScores {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	scores := ColumnScores{Scores: make([]float64, len(values))}
	if len(valid) == 0 {
		return scores
	}

	mean, _ := stats.Mean(valid)
	stdDev, _ := stats.StandardDeviationPopulation(valid)
	scores.Mean = mean
	scores.StdDev = stdDev
	if stdDev == 0 || math.IsNaN(stdDev) {
		return scores
	}

	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		scores.Scores[i] = (v - mean) / stdDev
	}
	return scores
}
