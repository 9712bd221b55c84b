package loader

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"solareda/internal/errors"
	"solareda/ports"
)

// ListDatasets enumerates the raw dataset files in the base directory.
// Cleaned outputs (*_clean.*) are skipped so they are never re-cleaned.
func (l *Loader) ListDatasets() ([]ports.DatasetInfo, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(l.baseDir)
		}
		return nil, errors.Wrapf(err, "reading data directory %s", l.baseDir)
	}

	var datasets []ports.DatasetInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}
		stem := datasetStem(entry.Name())
		if strings.Contains(stem, "_clean") {
			continue
		}
		datasets = append(datasets, ports.DatasetInfo{Name: stem, Filename: entry.Name()})
	}

	sort.Slice(datasets, func(i, j int) bool { return datasets[i].Name < datasets[j].Name })
	return datasets, nil
}

// FindDataset resolves a dataset by case-insensitive name fragment, the way
// the analysis scripts accept e.g. "benin" for "benin-malanville.csv"
func (l *Loader) FindDataset(fragment string) (ports.DatasetInfo, error) {
	datasets, err := l.ListDatasets()
	if err != nil {
		return ports.DatasetInfo{}, err
	}

	needle := strings.ToLower(fragment)
	for _, info := range datasets {
		if strings.Contains(strings.ToLower(info.Name), needle) {
			return info, nil
		}
	}
	return ports.DatasetInfo{}, errors.FileNotFound(fragment)
}
