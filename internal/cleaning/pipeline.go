package cleaning

import (
	"time"

	"solareda/domain/core"
	"solareda/domain/dataset"
	"solareda/internal"
)

var logger = internal.NewDefaultLogger()

// Options configures a cleaning run. An empty Columns selection means all
// numeric columns. Zero-valued Strategy and Threshold take the defaults.
type Options struct {
	Columns   []string
	Strategy  FillStrategy
	Threshold float64
}

// Report summarizes a full cleaning run
type Report struct {
	ID              core.ReportID `json:"id"`
	Dataset         string        `json:"dataset"`
	GeneratedAt     time.Time     `json:"generated_at"`
	ColumnsAnalyzed []string      `json:"columns_analyzed"`
	InputRows       int           `json:"input_rows"`
	OutputRows      int           `json:"output_rows"`
	RowsRemoved     int           `json:"rows_removed"`
	Threshold       float64       `json:"threshold"`
	Imputation      *ImputeResult `json:"imputation"`
	OutlierCount    int           `json:"outlier_count"`
}

// Clean runs the three-step pipeline: impute missing values, score rows, drop
// every row flagged as an outlier. The returned frame has the same column set
// as the input and never more rows. The input frame's selected columns are
// imputed in place; row filtering produces a new frame.
func Clean(frame *dataset.Frame, opts Options) (*dataset.Frame, *Report, error) {
	if opts.Strategy == "" {
		opts.Strategy = FillMedian
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultOutlierThreshold
	}

	logger.Info("Cleaning dataset %s: strategy=%s threshold=%.2f", frame.Name(), opts.Strategy, opts.Threshold)

	imputation, err := Impute(frame, opts.Columns, opts.Strategy)
	if err != nil {
		return nil, nil, err
	}
	for _, fill := range imputation.Fills {
		if fill.FilledCount > 0 {
			logger.Debug("Filled %d missing values in %s with %.4f", fill.FilledCount, fill.Column, fill.FillValue)
		}
	}

	outliers, err := DetectOutliers(frame, opts.Columns, opts.Threshold)
	if err != nil {
		return nil, nil, err
	}

	keep := make([]bool, frame.NumRows())
	for i, flagged := range outliers.Mask {
		keep[i] = !flagged
	}
	cleaned := frame.DropRows(keep)
	logger.Info("Removed %d outlier rows: %d -> %d", outliers.Count, frame.NumRows(), cleaned.NumRows())

	report := &Report{
		ID:              core.ReportID(core.NewID()),
		Dataset:         frame.Name(),
		GeneratedAt:     time.Now().UTC(),
		ColumnsAnalyzed: outliers.ColumnsAnalyzed,
		InputRows:       frame.NumRows(),
		OutputRows:      cleaned.NumRows(),
		RowsRemoved:     outliers.Count,
		Threshold:       opts.Threshold,
		Imputation:      imputation,
		OutlierCount:    outliers.Count,
	}
	return cleaned, report, nil
}
