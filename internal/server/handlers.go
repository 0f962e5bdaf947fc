package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/huangsam/wellscore/core"
	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

const (
	defaultHistoryDays = 30
	maxQueryDays       = 365
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// EvaluationResponse is a scored day plus its wellness view.
type EvaluationResponse struct {
	*schema.ScoreResult
	Wellness *float64 `json:"wellness,omitempty"`
}

// ExplanationResponse is the latest recorded explanation for an employee.
type ExplanationResponse struct {
	EmployeeID  string              `json:"employee_id"`
	Day         schema.Date         `json:"day"`
	Zone        schema.Zone         `json:"zone"`
	Explanation *schema.Explanation `json:"explanation"`
}

// BurnoutPoint is one day of a burnout series.
type BurnoutPoint struct {
	Day          schema.Date `json:"day"`
	Zone         schema.Zone `json:"zone"`
	BurnoutScore float64     `json:"burnout_score"`
	Wellness     float64     `json:"wellness"`
}

// BurnoutResponse is the latest burnout score with its recent series, oldest first.
type BurnoutResponse struct {
	EmployeeID   string         `json:"employee_id"`
	Day          schema.Date    `json:"day"`
	Zone         schema.Zone    `json:"zone"`
	Label        string         `json:"label"`
	BurnoutScore float64        `json:"burnout_score"`
	Wellness     float64        `json:"wellness"`
	History      []BurnoutPoint `json:"history"`
}

// ReadinessPoint is one day of a readiness series.
type ReadinessPoint struct {
	Day            schema.Date `json:"day"`
	ReadinessScore float64     `json:"readiness_score"`
}

// ReadinessResponse is the latest readiness score with its recent series, oldest first.
type ReadinessResponse struct {
	EmployeeID     string           `json:"employee_id"`
	Day            schema.Date      `json:"day"`
	Zone           schema.Zone      `json:"zone"`
	ReadinessScore float64          `json:"readiness_score"`
	History        []ReadinessPoint `json:"history"`
}

// handleHealth reports liveness and whether history is available.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"history_backend": s.cfg.HistoryBackend,
		"history_enabled": s.store() != nil,
	})
}

func (s *Server) handleFactors(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, schema.FactorReport{
		Scaling: s.engine.Scaling(),
		Factors: s.engine.Table().Definitions(),
	})
}

// handleEvaluate scores the posted employee-day. Pass record=true to store it.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var in schema.EvaluationInput
	if err := s.decodeBody(w, r, &in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body", err)
		return
	}

	cfg := s.cfg.Clone()
	cfg.Record = r.URL.Query().Get("record") == "true"
	result, err := core.GetEvaluationResult(r.Context(), cfg, s.mgr, in)
	if err != nil {
		s.writeMappedError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, EvaluationResponse{ScoreResult: result, Wellness: result.Wellness()})
}

// handleBatch scores the posted dataset. Pass record=true to store it as a run.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var ds schema.Dataset
	if err := s.decodeBody(w, r, &ds); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if len(ds.Employees) == 0 {
		s.writeError(w, http.StatusBadRequest, "invalid_body", errors.New("dataset has no employees"))
		return
	}

	limit, err := intParam(r, "limit", s.cfg.ResultLimit, 1, contract.MaxResultLimit)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_query", err)
		return
	}
	cfg := s.cfg.Clone()
	cfg.Record = r.URL.Query().Get("record") == "true"
	cfg.ResultLimit = limit
	cfg.Output = schema.JSONOut

	report, err := core.GetBatchReport(core.WithSuppressHeader(r.Context()), cfg, s.mgr, ds)
	if err != nil {
		s.writeMappedError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHistoryStatus(w http.ResponseWriter, _ *http.Request) {
	store := s.store()
	if store == nil {
		s.writeMappedError(w, core.ErrHistoryDisabled)
		return
	}
	status, err := store.GetStatus()
	if err != nil {
		s.writeMappedError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

// handleExplanation returns the explanation behind the latest recorded score.
func (s *Server) handleExplanation(w http.ResponseWriter, r *http.Request) {
	result, err := core.GetLatestResult(r.Context(), s.mgr, chi.URLParam(r, "id"))
	if err != nil {
		s.writeMappedError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ExplanationResponse{
		EmployeeID:  result.EmployeeID,
		Day:         result.Day,
		Zone:        result.Zone,
		Explanation: result.Explanation,
	})
}

func (s *Server) handleBurnout(w http.ResponseWriter, r *http.Request) {
	records, ok := s.series(w, r)
	if !ok {
		return
	}
	latest := records[len(records)-1]
	resp := BurnoutResponse{
		EmployeeID:   latest.EmployeeID,
		Day:          latest.Day,
		Zone:         latest.Zone,
		Label:        schema.GetPlainLabel(latest.BurnoutScore),
		BurnoutScore: latest.BurnoutScore,
		Wellness:     schema.WellnessFromBurnout(latest.BurnoutScore),
		History:      make([]BurnoutPoint, 0, len(records)),
	}
	for _, rec := range records {
		resp.History = append(resp.History, BurnoutPoint{
			Day:          rec.Day,
			Zone:         rec.Zone,
			BurnoutScore: rec.BurnoutScore,
			Wellness:     schema.WellnessFromBurnout(rec.BurnoutScore),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	records, ok := s.series(w, r)
	if !ok {
		return
	}
	latest := records[len(records)-1]
	resp := ReadinessResponse{
		EmployeeID:     latest.EmployeeID,
		Day:            latest.Day,
		Zone:           latest.Zone,
		ReadinessScore: latest.ReadinessScore,
		History:        make([]ReadinessPoint, 0, len(records)),
	}
	for _, rec := range records {
		resp.History = append(resp.History, ReadinessPoint{Day: rec.Day, ReadinessScore: rec.ReadinessScore})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handlePrediction projects burnout horizon days past the latest record.
func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	defaultHorizon := s.cfg.Horizon
	if defaultHorizon <= 0 {
		defaultHorizon = schema.DefaultHorizon
	}
	horizon, err := intParam(r, "horizon", defaultHorizon, 1, maxQueryDays)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_query", err)
		return
	}
	days, err := intParam(r, "days", defaultHistoryDays, 1, maxQueryDays)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_query", err)
		return
	}

	cfg := s.cfg.Clone()
	cfg.Horizon = horizon
	cfg.ResultLimit = days
	_, prediction, err := core.GetHistoryTrend(r.Context(), cfg, s.mgr, chi.URLParam(r, "id"))
	if err != nil {
		s.writeMappedError(w, err)
		return
	}
	if prediction == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "insufficient_history", core.ErrInsufficientHistory)
		return
	}
	s.writeJSON(w, http.StatusOK, prediction)
}

// series loads up to ?days= records for the employee in the URL, oldest first.
// It writes the error response itself and reports whether to continue.
func (s *Server) series(w http.ResponseWriter, r *http.Request) ([]schema.ZoneHistoryRecord, bool) {
	days, err := intParam(r, "days", defaultHistoryDays, 1, maxQueryDays)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_query", err)
		return nil, false
	}
	store := s.store()
	if store == nil {
		s.writeMappedError(w, core.ErrHistoryDisabled)
		return nil, false
	}
	id := chi.URLParam(r, "id")
	records, err := store.GetHistory(id, days)
	if err != nil {
		s.writeMappedError(w, err)
		return nil, false
	}
	if len(records) == 0 {
		s.writeMappedError(w, fmt.Errorf("no history for employee %s: %w", id, contract.ErrNotFound))
		return nil, false
	}
	slices.Reverse(records)
	return records, true
}

func (s *Server) store() contract.HistoryStore {
	if s.mgr == nil {
		return nil
	}
	return s.mgr.GetHistoryStore()
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("cannot parse request body: %w", err)
	}
	return nil
}

// intParam reads an optional integer query parameter within [lo, hi].
func intParam(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s must be between %d and %d", name, lo, hi)
	}
	return v, nil
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code string, err error) {
	resp := ErrorResponse{Error: http.StatusText(status), Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	s.writeJSON(w, status, resp)
}

// writeMappedError picks the status for errors coming out of core and history.
func (s *Server) writeMappedError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, contract.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, core.ErrHistoryDisabled):
		s.writeError(w, http.StatusServiceUnavailable, "history_disabled", err)
	default:
		s.log.Error().Err(err).Msg("Request failed")
		s.writeError(w, http.StatusInternalServerError, "internal", err)
	}
}
