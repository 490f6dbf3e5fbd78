// Package handlers provides the HTTP request handlers: the interaction
// check, triage, and assistant endpoints backed by the triage pipeline, plus
// the cycle, side-effects, and health endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/pillsync/pillsync-api/interfaces"
	"github.com/pillsync/pillsync-api/logging"
	"github.com/pillsync/pillsync-api/pills"
	"github.com/pillsync/pillsync-api/triage"
	"github.com/pillsync/pillsync-api/validation"
)

// Handler holds the dependencies of all HTTP endpoints.
type Handler struct {
	checker *triage.Checker
	health  interfaces.HealthChecker
}

// NewHandler creates a handler over the triage checker and health checker.
func NewHandler(checker *triage.Checker, health interfaces.HealthChecker) *Handler {
	return &Handler{checker: checker, health: health}
}

// RespondWithJSON writes a JSON response.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Warn("Failed to write response", "error", err)
	}
}

// RespondWithError writes a structured JSON error response.
func RespondWithError(w http.ResponseWriter, code int, message string, details any) {
	body := map[string]any{"error": message}
	if details != nil {
		body["details"] = details
	}
	RespondWithJSON(w, code, body)
}

type checkRequest struct {
	PillType string   `json:"pillType"`
	Meds     []string `json:"meds"`
	Symptoms string   `json:"symptoms"`
}

// decodeAndValidate parses the request body and validates its fields.
// A nil return with a written response means validation failed.
func decodeAndValidate(w http.ResponseWriter, r *http.Request) *checkRequest {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondWithError(w, http.StatusBadRequest, "Invalid body", err.Error())
		return nil
	}

	pillType, err := validation.ValidatePillType(req.PillType)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid body", err)
		return nil
	}
	meds, err := validation.ValidateMeds(req.Meds)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid body", err)
		return nil
	}

	req.PillType = pillType
	req.Meds = meds
	req.Symptoms = validation.ValidateSymptoms(req.Symptoms)
	return &req
}

// CheckInteractions handles POST /api/interactions/check.
func (h *Handler) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	req := decodeAndValidate(w, r)
	if req == nil {
		return
	}

	result := h.checker.Check(r.Context(), req.PillType, req.Meds)
	RespondWithJSON(w, http.StatusOK, result)
}

// Triage handles POST /api/triage.
func (h *Handler) Triage(w http.ResponseWriter, r *http.Request) {
	req := decodeAndValidate(w, r)
	if req == nil {
		return
	}

	result := h.checker.Triage(r.Context(), req.PillType, req.Meds, req.Symptoms)
	RespondWithJSON(w, http.StatusOK, result)
}

// Assistant handles POST /api/interactions/assistant: the deterministic
// natural-language answer built from a check result, no LLM required.
func (h *Handler) Assistant(w http.ResponseWriter, r *http.Request) {
	req := decodeAndValidate(w, r)
	if req == nil {
		return
	}

	check := h.checker.Check(r.Context(), req.PillType, req.Meds)
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": triage.BuildAssistantMessage(check, req.Symptoms),
		"data":    check,
	})
}

// Cycle handles GET /api/cycle.
func (h *Handler) Cycle(w http.ResponseWriter, r *http.Request) {
	packType := r.URL.Query().Get("packType")
	if packType == "" {
		packType = pills.Pack24_4
	}
	if !pills.KnownPackType(packType) {
		RespondWithError(w, http.StatusBadRequest, "Invalid query",
			map[string]string{"packType": "unknown pack type"})
		return
	}

	startDate := r.URL.Query().Get("startDate")
	start, err := time.ParseInLocation("2006-01-02", startDate, time.Local)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid query",
			map[string]string{"startDate": "must be formatted YYYY-MM-DD"})
		return
	}

	info := pills.Info(packType, start, time.Now())
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"packType":     packType,
		"startDate":    startDate,
		"packDay":      info.PackDay,
		"isActivePill": info.IsActivePill,
		"suppression":  info.Suppression,
		"phaseLabel":   info.PhaseLabel,
		"activeDays":   info.ActiveDays,
	})
}

// SideEffects handles GET /api/side-effects.
func (h *Handler) SideEffects(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != pills.ProgestinOnly {
		kind = pills.Combined
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"kind":    kind,
		"effects": pills.SideEffectsFor(kind),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	_, data, httpStatus := h.health.HealthCheck()
	RespondWithJSON(w, httpStatus, data)
}
