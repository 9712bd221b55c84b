package cleaning

import (
	"math"
	"testing"

	"solareda/domain/dataset"
	"solareda/internal/errors"
)

func TestImpute_MedianFill(t *testing.T) {
	nan := math.NaN()
	frame := irradianceFrame(t, "GHI", []float64{100, nan, 300, 200, nan})

	result, err := Impute(frame, []string{"GHI"}, FillMedian)
	if err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	if result.TotalFilled != 2 {
		t.Errorf("Expected 2 values filled, got %d", result.TotalFilled)
	}
	if len(result.Fills) != 1 || result.Fills[0].FillValue != 200 {
		t.Errorf("Expected median fill of 200, got %+v", result.Fills)
	}

	values, _ := frame.NumericValues("GHI")
	for i, v := range values {
		if math.IsNaN(v) {
			t.Errorf("Row %d still missing after impute", i)
		}
	}
	if values[1] != 200 || values[4] != 200 {
		t.Errorf("Missing rows not filled with median: %v", values)
	}
}

func TestImpute_MeanFill(t *testing.T) {
	nan := math.NaN()
	frame := irradianceFrame(t, "DNI", []float64{10, 20, nan, 30})

	result, err := Impute(frame, nil, FillMean)
	if err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	if result.Fills[0].FillValue != 20 {
		t.Errorf("Expected mean fill of 20, got %v", result.Fills[0].FillValue)
	}
	values, _ := frame.NumericValues("DNI")
	if values[2] != 20 {
		t.Errorf("Expected filled value 20, got %v", values[2])
	}
}

func TestImpute_Idempotent(t *testing.T) {
	nan := math.NaN()
	frame := irradianceFrame(t, "GHI", []float64{1, nan, 3})

	first, err := Impute(frame, nil, FillMedian)
	if err != nil {
		t.Fatalf("First impute failed: %v", err)
	}
	if first.TotalFilled != 1 {
		t.Fatalf("Expected 1 fill on first pass, got %d", first.TotalFilled)
	}

	before, _ := frame.NumericValues("GHI")
	snapshot := append([]float64(nil), before...)

	second, err := Impute(frame, nil, FillMedian)
	if err != nil {
		t.Fatalf("Second impute failed: %v", err)
	}
	if second.TotalFilled != 0 {
		t.Errorf("Second pass filled %d values, expected 0", second.TotalFilled)
	}
	after, _ := frame.NumericValues("GHI")
	for i := range snapshot {
		if after[i] != snapshot[i] {
			t.Errorf("Row %d changed on second pass: %v != %v", i, after[i], snapshot[i])
		}
	}
}

func TestImpute_UnselectedColumnsUntouched(t *testing.T) {
	nan := math.NaN()
	frame := dataset.NewFrame("two-columns")
	frame.AddColumn(dataset.Column{Name: "GHI", Type: dataset.TypeNumeric, Values: []float64{1, nan, 3}})
	frame.AddColumn(dataset.Column{Name: "DNI", Type: dataset.TypeNumeric, Values: []float64{5, nan, 7}})

	_, err := Impute(frame, []string{"GHI"}, FillMedian)
	if err != nil {
		t.Fatalf("Impute failed: %v", err)
	}

	ghi, _ := frame.NumericValues("GHI")
	if math.IsNaN(ghi[1]) {
		t.Error("Selected column was not filled")
	}
	dni, _ := frame.NumericValues("DNI")
	if !math.IsNaN(dni[1]) {
		t.Error("Unselected column was modified")
	}
}

func TestImpute_AllMissingColumn(t *testing.T) {
	nan := math.NaN()
	frame := irradianceFrame(t, "GHI", []float64{nan, nan, nan})

	_, err := Impute(frame, nil, FillMedian)
	if errors.GetCode(err) != errors.CodeUndefinedStatistic {
		t.Errorf("Expected UNDEFINED_STATISTIC, got %v", err)
	}
}

func TestImpute_UnknownColumn(t *testing.T) {
	frame := irradianceFrame(t, "GHI", []float64{1, 2})

	_, err := Impute(frame, []string{"WS"}, FillMedian)
	if errors.GetCode(err) != errors.CodeUnknownColumn {
		t.Errorf("Expected UNKNOWN_COLUMN, got %v", err)
	}
}

func TestImpute_NonNumericColumn(t *testing.T) {
	frame := dataset.NewFrame("mixed")
	frame.AddColumn(dataset.Column{Name: "GHI", Type: dataset.TypeNumeric, Values: []float64{1, 2}})
	frame.AddColumn(dataset.Column{Name: "Comments", Type: dataset.TypeCategorical, Labels: []string{"ok", ""}})

	_, err := Impute(frame, []string{"Comments"}, FillMedian)
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("Expected INVALID_INPUT, got %v", err)
	}
}

func TestParseFillStrategy(t *testing.T) {
	if _, err := ParseFillStrategy("median"); err != nil {
		t.Errorf("median should parse: %v", err)
	}
	if _, err := ParseFillStrategy("mean"); err != nil {
		t.Errorf("mean should parse: %v", err)
	}
	if _, err := ParseFillStrategy("mode"); errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("Expected INVALID_INPUT for unknown strategy, got %v", err)
	}
}
