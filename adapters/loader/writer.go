package loader

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"solareda/domain/dataset"
)

const cleanedSuffix = "_clean"

// SaveCleaned writes a frame to the base directory as CSV, adding the
// "_clean" suffix to the stem when not already present. Missing entries are
// written as empty cells. Returns the path written.
func (l *Loader) SaveCleaned(frame *dataset.Frame, filename string) (string, error) {
	if err := os.MkdirAll(l.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	stem := datasetStem(filename)
	if !strings.Contains(stem, cleanedSuffix) {
		stem += cleanedSuffix
	}
	path := filepath.Join(l.baseDir, stem+".csv")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(frame.ColumnNames()); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	names := frame.ColumnNames()
	record := make([]string, len(names))
	for row := 0; row < frame.NumRows(); row++ {
		for i, name := range names {
			col, _ := frame.Column(name)
			record[i] = renderCell(col, row)
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush output: %w", err)
	}

	log.Printf("[Loader] Saved cleaned dataset to %s (%d rows)", path, frame.NumRows())
	return path, nil
}

func renderCell(col *dataset.Column, row int) string {
	switch col.Type {
	case dataset.TypeNumeric:
		v := col.Values[row]
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case dataset.TypeTimestamp:
		t := col.Times[row]
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	default:
		return col.Labels[row]
	}
}
