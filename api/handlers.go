package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"solareda/domain/dataset"
	"solareda/internal/cleaning"
	"solareda/internal/errors"
	"solareda/internal/profiling"
)

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := a.store.ListDatasets()
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{"datasets": datasets})
}

func (a *App) handleProfile(w http.ResponseWriter, r *http.Request) {
	frame, err := a.loadFrame(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	threshold := a.data.MissingThreshold
	if v := r.URL.Query().Get("missing_threshold"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			threshold = parsed
		}
	}

	a.writeJSON(w, http.StatusOK, profiling.BuildQualityReport(frame, threshold))
}

func (a *App) handleOutliers(w http.ResponseWriter, r *http.Request) {
	frame, err := a.loadFrame(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	result, err := cleaning.DetectOutliers(frame, queryColumns(r), a.outlierThreshold(r))
	if err != nil {
		a.writeError(w, err)
		return
	}

	// The flagged-row subset can be large; the API reports the summary and
	// indices, not the rows themselves.
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset":          frame.Name(),
		"threshold":        result.Threshold,
		"columns_analyzed": result.ColumnsAnalyzed,
		"outlier_count":    result.Count,
		"flagged_indices":  result.FlaggedIndices,
		"total_rows":       frame.NumRows(),
	})
}

func (a *App) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	frame, err := a.loadFrame(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	matrix, err := profiling.Correlations(frame, queryColumns(r))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, matrix)
}

func (a *App) handleClean(w http.ResponseWriter, r *http.Request) {
	info, err := a.store.FindDataset(chi.URLParam(r, "name"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	frame, err := a.store.Load(info.Filename)
	if err != nil {
		a.writeError(w, err)
		return
	}

	strategy := cleaning.FillStrategy(a.data.FillStrategy)
	if v := r.URL.Query().Get("fill"); v != "" {
		strategy, err = cleaning.ParseFillStrategy(v)
		if err != nil {
			a.writeError(w, err)
			return
		}
	}

	cleaned, report, err := cleaning.Clean(frame, cleaning.Options{
		Columns:   queryColumns(r),
		Strategy:  strategy,
		Threshold: a.outlierThreshold(r),
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	path, err := a.store.SaveCleaned(cleaned, info.Filename)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"report": report,
		"saved":  path,
	})
}

// loadFrame resolves the {name} fragment to a dataset and loads it
func (a *App) loadFrame(r *http.Request) (*dataset.Frame, error) {
	info, err := a.store.FindDataset(chi.URLParam(r, "name"))
	if err != nil {
		return nil, err
	}
	return a.store.Load(info.Filename)
}

func (a *App) outlierThreshold(r *http.Request) float64 {
	threshold := a.data.OutlierThreshold
	if v := r.URL.Query().Get("threshold"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			threshold = parsed
		}
	}
	return threshold
}

// queryColumns parses the comma-separated "columns" query parameter
func queryColumns(r *http.Request) []string {
	raw := r.URL.Query().Get("columns")
	if raw == "" {
		return nil
	}
	var columns []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			columns = append(columns, trimmed)
		}
	}
	return columns
}

// errorResponse is the wire shape of a failed request
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeFileNotFound:
		status = http.StatusNotFound
	case errors.CodeUnknownColumn, errors.CodeEmptyColumnSet, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeUndefinedStatistic:
		status = http.StatusUnprocessableEntity
	}
	a.writeJSON(w, status, errorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}
