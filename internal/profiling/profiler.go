package profiling

import (
	"math"
	"sort"
	"time"

	"solareda/domain/core"
	"solareda/domain/dataset"

	"github.com/montanaflynn/stats"
)

// DefaultMissingThreshold flags columns with more than 5% missing values
const DefaultMissingThreshold = 0.05

// MissingColumnProfile summarizes missing values for one column
type MissingColumnProfile struct {
	Column       string  `json:"column"`
	MissingCount int     `json:"missing_count"`
	MissingPct   float64 `json:"missing_pct"`
	HighMissing  bool    `json:"high_missing"`
}

// SummaryStats holds descriptive statistics for one numeric column, computed
// over its non-missing values
type SummaryStats struct {
	Column       string            `json:"column"`
	Count        int               `json:"count"`
	Mean         float64           `json:"mean"`
	StdDev       float64           `json:"std_dev"`
	Min          float64           `json:"min"`
	Q25          float64           `json:"q25"`
	Median       float64           `json:"median"`
	Q75          float64           `json:"q75"`
	Max          float64           `json:"max"`
	Distribution DistributionStats `json:"distribution"`
}

// QualityReport aggregates the data-quality view of a dataset
type QualityReport struct {
	ID                 core.ReportID          `json:"id"`
	Dataset            string                 `json:"dataset"`
	GeneratedAt        time.Time              `json:"generated_at"`
	Rows               int                    `json:"rows"`
	Columns            int                    `json:"columns"`
	NumericColumns     []string               `json:"numeric_columns"`
	CategoricalColumns []string               `json:"categorical_columns"`
	DuplicateRows      int                    `json:"duplicate_rows"`
	Missing            []MissingColumnProfile `json:"missing_values"`
	Summary            []SummaryStats         `json:"summary_statistics"`
}

// ProfileMissingValues computes per-column missing counts and percentages,
// flagging columns whose missing fraction exceeds threshold. Results are
// sorted by missing percentage, highest first.
func ProfileMissingValues(frame *dataset.Frame, threshold float64) []MissingColumnProfile {
	rows := frame.NumRows()
	profiles := make([]MissingColumnProfile, 0, frame.NumColumns())
	for _, name := range frame.ColumnNames() {
		col, _ := frame.Column(name)
		missing := col.MissingCount()
		pct := 0.0
		if rows > 0 {
			pct = float64(missing) / float64(rows) * 100
		}
		profiles = append(profiles, MissingColumnProfile{
			Column:      name,
			MissingCount: missing,
			MissingPct:  pct,
			HighMissing: pct > threshold*100,
		})
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].MissingPct > profiles[j].MissingPct
	})
	return profiles
}

// SummaryStatistics computes descriptive statistics for every numeric column.
// Missing values are excluded; an all-missing column reports Count 0 and
// zeroed statistics.
func SummaryStatistics(frame *dataset.Frame) []SummaryStats {
	summaries := make([]SummaryStats, 0, len(frame.NumericColumns()))
	for _, name := range frame.NumericColumns() {
		values, _ := frame.NumericValues(name)
		summaries = append(summaries, summarizeColumn(name, values))
	}
	return summaries
}

func summarizeColumn(name string, values []float64) SummaryStats {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	summary := SummaryStats{Column: name, Count: len(valid)}
	if len(valid) == 0 {
		return summary
	}

	summary.Mean, _ = stats.Mean(valid)
	summary.StdDev, _ = stats.StandardDeviation(valid)
	summary.Min, _ = stats.Min(valid)
	summary.Max, _ = stats.Max(valid)
	summary.Median, _ = stats.Median(valid)
	summary.Q25, _ = stats.Percentile(valid, 25)
	summary.Q75, _ = stats.Percentile(valid, 75)
	summary.Distribution = analyzeDistribution(valid, summary.Mean, summary.StdDev)
	return summary
}

// BuildQualityReport assembles the full data-quality report for a dataset
func BuildQualityReport(frame *dataset.Frame, missingThreshold float64) *QualityReport {
	if missingThreshold <= 0 {
		missingThreshold = DefaultMissingThreshold
	}
	return &QualityReport{
		ID:                 core.ReportID(core.NewID()),
		Dataset:            frame.Name(),
		GeneratedAt:        time.Now().UTC(),
		Rows:               frame.NumRows(),
		Columns:            frame.NumColumns(),
		NumericColumns:     frame.NumericColumns(),
		CategoricalColumns: frame.CategoricalColumns(),
		DuplicateRows:      frame.DuplicateRowCount(),
		Missing:            ProfileMissingValues(frame, missingThreshold),
		Summary:            SummaryStatistics(frame),
	}
}

// HighMissingColumns filters the report down to flagged columns
func (r *QualityReport) HighMissingColumns() []MissingColumnProfile {
	var high []MissingColumnProfile
	for _, m := range r.Missing {
		if m.HighMissing {
			high = append(high, m)
		}
	}
	return high
}
