package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/config"
	"github.com/uyouii/automation-impact/dataset"
	"github.com/uyouii/automation-impact/describe"
	"github.com/uyouii/automation-impact/model"
	"github.com/uyouii/automation-impact/utils"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type recordsResponse struct {
	Snapshot model.SnapshotInfo `json:"snapshot"`
	Records  []model.Record     `json:"records"`
}

type summaryResponse struct {
	Snapshot model.SnapshotInfo `json:"snapshot"`
	Summary  *model.Summary     `json:"summary"`
	Sectors  []model.GroupMean  `json:"sectors"`
	Regions  []model.GroupMean  `json:"regions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, recordsResponse{Snapshot: snap.Info(), Records: snap.Records})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	summary, err := describe.Summarize(snap.Impacts())
	if err != nil {
		writeError(w, r, err)
		return
	}
	sectors, err := describe.GroupMeans(snap.Column(dataset.SectorOf))
	if err != nil {
		writeError(w, r, err)
		return
	}
	regions, err := describe.GroupMeans(snap.Column(dataset.RegionOf))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Snapshot: snap.Info(),
		Summary:  summary,
		Sectors:  sectors,
		Regions:  regions,
	})
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.Sectors())
}

func (s *Server) handleSectorInterval(w http.ResponseWriter, r *http.Request) {
	level, err := levelParam(r, "confidence")
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	ci, err := s.analyzer.SectorInterval(r.Context(), snap, chi.URLParam(r, "sector"), level)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ci)
}

func (s *Server) handleSectorTest(w http.ResponseWriter, r *http.Request) {
	alpha, err := levelParam(r, "alpha")
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	cmp, err := s.analyzer.SectorTest(r.Context(), snap, chi.URLParam(r, "sector"), alpha)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleRegression(w http.ResponseWriter, r *http.Request) {
	var encoding config.Encoding
	if v := r.URL.Query().Get("encoding"); v != "" {
		e, err := config.ParseEncoding(v)
		if err != nil {
			writeError(w, r, err)
			return
		}
		encoding = e
	}
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	res, err := s.analyzer.RegionRegression(r.Context(), snap, encoding)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.GeoPoints())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	report, err := s.analyzer.Report(r.Context(), snap)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.cache.Invalidate()
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.Info())
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*dataset.Snapshot, bool) {
	snap, err := s.cache.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return snap, true
}

// levelParam reads a confidence level or a significance level. An absent
// parameter returns 0, which the analyzer replaces with the configured value,
// so an explicit 0 is rejected here.
func levelParam(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", common.ErrorInvalidValue, name, v)
	}
	if f == 0 {
		return 0, fmt.Errorf("%w: %s=%q is outside (0, 1)", common.ErrorInvalidConfidenceLevel, name, v)
	}
	return f, nil
}

func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorUnknownSector):
		return http.StatusNotFound, "unknown_sector"
	case !common.IsStatisticsError(err):
		return http.StatusInternalServerError, "internal"
	case errors.Is(err, common.ErrorInvalidConfidenceLevel):
		return http.StatusBadRequest, "invalid_confidence_level"
	case errors.Is(err, common.ErrorInvalidValue):
		return http.StatusBadRequest, "invalid_value"
	case errors.Is(err, common.ErrorEmptySample):
		return http.StatusUnprocessableEntity, "empty_sample"
	case errors.Is(err, common.ErrorInsufficientSampleSize):
		return http.StatusUnprocessableEntity, "insufficient_sample_size"
	case errors.Is(err, common.ErrorDegenerateSample):
		return http.StatusUnprocessableEntity, "degenerate_sample"
	default:
		return http.StatusUnprocessableEntity, "statistics"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := errorCode(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger(r.Context()).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
