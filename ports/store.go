package ports

import (
	"solareda/domain/dataset"
)

// DatasetInfo describes a discoverable dataset file
type DatasetInfo struct {
	Name     string `json:"name"` // file stem, e.g. "benin-malanville"
	Filename string `json:"filename"`
}

// DatasetStore defines how the API and CLI surfaces access dataset files.
// The loader adapter is the file-backed implementation.
type DatasetStore interface {
	ListDatasets() ([]DatasetInfo, error)
	FindDataset(fragment string) (DatasetInfo, error)
	Load(filename string) (*dataset.Frame, error)
	SaveCleaned(frame *dataset.Frame, filename string) (string, error)
}
