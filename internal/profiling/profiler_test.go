package profiling

import (
	"math"
	"testing"
	"time"

	"solareda/domain/dataset"

	"github.com/stretchr/testify/assert"
)

func buildSolarFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	nan := math.NaN()
	base := time.Date(2025, 8, 1, 6, 0, 0, 0, time.UTC)

	frame := dataset.NewFrame("benin-malanville")
	ok := frame.AddColumn(dataset.Column{
		Name: "Timestamp", Type: dataset.TypeTimestamp,
		Times: []time.Time{base, base.Add(time.Minute), base.Add(2 * time.Minute), base.Add(3 * time.Minute)},
	})
	ok = ok && frame.AddColumn(dataset.Column{
		Name: "GHI", Type: dataset.TypeNumeric,
		Values: []float64{100, 200, nan, 300},
	})
	ok = ok && frame.AddColumn(dataset.Column{
		Name: "DNI", Type: dataset.TypeNumeric,
		Values: []float64{50, nan, nan, 150},
	})
	ok = ok && frame.AddColumn(dataset.Column{
		Name: "Comments", Type: dataset.TypeCategorical,
		Labels: []string{"", "", "", ""},
	})
	if !ok {
		t.Fatal("failed to build test frame")
	}
	return frame
}

func TestProfileMissingValues(t *testing.T) {
	frame := buildSolarFrame(t)

	profiles := ProfileMissingValues(frame, 0.05)
	assert.Len(t, profiles, 4)

	// Sorted by missing percentage, highest first
	assert.Equal(t, "Comments", profiles[0].Column)
	assert.Equal(t, 4, profiles[0].MissingCount)
	assert.InDelta(t, 100.0, profiles[0].MissingPct, 1e-9)
	assert.True(t, profiles[0].HighMissing)

	assert.Equal(t, "DNI", profiles[1].Column)
	assert.Equal(t, 2, profiles[1].MissingCount)
	assert.InDelta(t, 50.0, profiles[1].MissingPct, 1e-9)

	assert.Equal(t, "GHI", profiles[2].Column)
	assert.Equal(t, 1, profiles[2].MissingCount)

	assert.Equal(t, "Timestamp", profiles[3].Column)
	assert.Equal(t, 0, profiles[3].MissingCount)
	assert.False(t, profiles[3].HighMissing)
}

func TestProfileMissingValues_ThresholdBoundary(t *testing.T) {
	nan := math.NaN()
	frame := dataset.NewFrame("boundary")
	// 1 of 20 missing = exactly 5%
	values := make([]float64, 20)
	values[0] = nan
	for i := 1; i < 20; i++ {
		values[i] = float64(i)
	}
	frame.AddColumn(dataset.Column{Name: "GHI", Type: dataset.TypeNumeric, Values: values})

	profiles := ProfileMissingValues(frame, 0.05)
	assert.False(t, profiles[0].HighMissing, "exactly at threshold should not flag")

	profiles = ProfileMissingValues(frame, 0.04)
	assert.True(t, profiles[0].HighMissing, "above threshold should flag")
}

func TestSummaryStatistics(t *testing.T) {
	frame := dataset.NewFrame("stats")
	frame.AddColumn(dataset.Column{
		Name: "GHI", Type: dataset.TypeNumeric,
		Values: []float64{10, 20, 30, 40, math.NaN()},
	})

	summaries := SummaryStatistics(frame)
	assert.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "GHI", s.Column)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 25.0, s.Mean, 1e-9)
	assert.InDelta(t, 10.0, s.Min, 1e-9)
	assert.InDelta(t, 40.0, s.Max, 1e-9)
	assert.InDelta(t, 25.0, s.Median, 1e-9)
	assert.False(t, math.IsNaN(s.StdDev))
	assert.False(t, math.IsNaN(s.Q25))
	assert.False(t, math.IsNaN(s.Q75))
}

func TestSummaryStatistics_AllMissingColumn(t *testing.T) {
	nan := math.NaN()
	frame := dataset.NewFrame("empty")
	frame.AddColumn(dataset.Column{Name: "GHI", Type: dataset.TypeNumeric, Values: []float64{nan, nan}})

	summaries := SummaryStatistics(frame)
	assert.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].Count)
	assert.Zero(t, summaries[0].Mean)
	assert.Zero(t, summaries[0].StdDev)
}

func TestBuildQualityReport(t *testing.T) {
	frame := buildSolarFrame(t)

	report := BuildQualityReport(frame, 0.05)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "benin-malanville", report.Dataset)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, 4, report.Columns)
	assert.Equal(t, []string{"GHI", "DNI"}, report.NumericColumns)
	assert.Equal(t, []string{"Comments"}, report.CategoricalColumns)
	assert.Equal(t, 0, report.DuplicateRows)
	assert.Len(t, report.Missing, 4)
	assert.Len(t, report.Summary, 2)

	high := report.HighMissingColumns()
	assert.NotEmpty(t, high)
	for _, m := range high {
		assert.True(t, m.HighMissing)
	}
}

func TestBuildQualityReport_DuplicateRows(t *testing.T) {
	frame := dataset.NewFrame("dupes")
	frame.AddColumn(dataset.Column{
		Name: "GHI", Type: dataset.TypeNumeric,
		Values: []float64{1, 2, 1, 1},
	})
	frame.AddColumn(dataset.Column{
		Name: "Region", Type: dataset.TypeCategorical,
		Labels: []string{"north", "south", "north", "north"},
	})

	report := BuildQualityReport(frame, 0)
	assert.Equal(t, 2, report.DuplicateRows)
}
