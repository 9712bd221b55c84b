package report

import (
	"fmt"
	"log"

	"solareda/internal/cleaning"
	"solareda/internal/profiling"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter exports profiling and outlier reports as an XLSX workbook so
// results can be handed to callers as tabular artifacts.
type ExcelWriter struct{}

// NewExcelWriter creates a report writer
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// WriteQualityWorkbook writes a workbook with Overview, Missing Values and
// Summary Statistics sheets, plus an Outliers sheet when outliers is non-nil.
func (w *ExcelWriter) WriteQualityWorkbook(path string, quality *profiling.QualityReport, outliers *cleaning.OutlierResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeOverview(f, quality); err != nil {
		return err
	}
	if err := w.writeMissing(f, quality); err != nil {
		return err
	}
	if err := w.writeSummary(f, quality); err != nil {
		return err
	}
	if outliers != nil {
		if err := w.writeOutliers(f, outliers); err != nil {
			return err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report workbook: %w", err)
	}

	log.Printf("[ReportWriter] Saved quality report workbook to %s", path)
	return nil
}

func (w *ExcelWriter) writeOverview(f *excelize.File, quality *profiling.QualityReport) error {
	const sheet = "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Dataset", quality.Dataset},
		{"Report ID", quality.ID.String()},
		{"Generated At", quality.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Rows", quality.Rows},
		{"Columns", quality.Columns},
		{"Numeric Columns", len(quality.NumericColumns)},
		{"Categorical Columns", len(quality.CategoricalColumns)},
		{"Duplicate Rows", quality.DuplicateRows},
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeMissing(f *excelize.File, quality *profiling.QualityReport) error {
	const sheet = "Missing Values"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Column", "Missing Count", "Missing %", "High Missing"}}
	for _, m := range quality.Missing {
		rows = append(rows, []interface{}{m.Column, m.MissingCount, m.MissingPct, m.HighMissing})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeSummary(f *excelize.File, quality *profiling.QualityReport) error {
	const sheet = "Summary Statistics"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Column", "Count", "Mean", "Std Dev", "Min", "Q25", "Median", "Q75", "Max", "Skewness", "Kurtosis"}}
	for _, s := range quality.Summary {
		rows = append(rows, []interface{}{
			s.Column, s.Count, s.Mean, s.StdDev, s.Min, s.Q25, s.Median, s.Q75, s.Max,
			s.Distribution.Skewness, s.Distribution.Kurtosis,
		})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeOutliers(f *excelize.File, outliers *cleaning.OutlierResult) error {
	const sheet = "Outliers"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Threshold", outliers.Threshold},
		{"Rows Flagged", outliers.Count},
		{},
		{"Column", "Mean", "Std Dev"},
	}
	for _, s := range outliers.Scores {
		rows = append(rows, []interface{}{s.Column, s.Mean, s.StdDev})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
