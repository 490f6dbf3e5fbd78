package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pillsync/pillsync-api/interfaces"
	"github.com/pillsync/pillsync-api/pills"
	"github.com/pillsync/pillsync-api/triage"
)

type stubResolver struct{}

func (stubResolver) Resolve(context.Context, string) (string, error) { return "", nil }

type stubProvider struct{}

func (stubProvider) Interactions(context.Context, []string) ([]interfaces.RawInteraction, error) {
	return nil, nil
}
func (stubProvider) Name() string { return "RxNav" }

type stubHealth struct {
	status string
	code   int
}

func (s stubHealth) HealthCheck() (string, map[string]any, int) {
	return s.status, map[string]any{"status": s.status}, s.code
}

func newTestHandler() *Handler {
	checker := triage.NewChecker(stubResolver{}, stubProvider{}, pills.Lookup{})
	return NewHandler(checker, stubHealth{status: "healthy", code: http.StatusOK})
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCheckInteractions(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.CheckInteractions, `{"pillType":"combined","meds":["rifampin"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var result triage.CheckResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, triage.LevelHigh, result.Overall)
	assert.NotEmpty(t, result.Interactions)
	assert.Equal(t, "combined", result.PillType)
}

// An empty body is a valid request: combined pill, no meds.
func TestCheckInteractionsEmptyBody(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.CheckInteractions, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var result triage.CheckResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "combined", result.PillType)
	assert.Equal(t, triage.LevelLow, result.Overall)
	assert.Contains(t, rec.Body.String(), `"interactions":[]`)
}

func TestCheckInteractionsBadInput(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"pillType":`},
		{"unknown pill type", `{"pillType":"patch"}`},
		{"bad med name", `{"meds":["<script>"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.CheckInteractions, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid body")
		})
	}
}

func TestTriage(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Triage, `{"pillType":"combined","meds":["rifampin"],"symptoms":"spotting"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result triage.TriageResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, triage.LevelHigh, result.Overall)
	assert.Equal(t, "spotting", result.Symptoms)
	require.NotEmpty(t, result.Advice)
	assert.Equal(t, "Rifampin", result.Advice[0].Drug)
	assert.NotEmpty(t, result.Summary)
}

func TestAssistant(t *testing.T) {
	h := newTestHandler()
	rec := postJSON(t, h.Assistant, `{"meds":["rifampin"]}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Message string             `json:"message"`
		Data    triage.CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload.Message, "Overall interaction level: HIGH.")
	assert.Equal(t, triage.LevelHigh, payload.Data.Overall)
}

func TestCycle(t *testing.T) {
	h := newTestHandler()
	start := time.Now().AddDate(0, 0, -9).Format("2006-01-02")

	req := httptest.NewRequest(http.MethodGet, "/?packType=combined_21_7&startDate="+start, nil)
	rec := httptest.NewRecorder()
	h.Cycle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "combined_21_7", payload["packType"])

	startT, err := time.ParseInLocation("2006-01-02", start, time.Local)
	require.NoError(t, err)
	assert.Equal(t, float64(pills.PackDay(startT, time.Now())), payload["packDay"])
	assert.Equal(t, true, payload["isActivePill"])
}

func TestCycleBadQuery(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name  string
		query string
	}{
		{"unknown pack type", "?packType=patch&startDate=2025-01-01"},
		{"missing start date", "?packType=combined_21_7"},
		{"malformed start date", "?packType=combined_21_7&startDate=01/01/2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.Cycle(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSideEffects(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.SideEffects(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "combined", payload["kind"])

	req = httptest.NewRequest(http.MethodGet, "/?kind=progestin_only", nil)
	rec = httptest.NewRecorder()
	h.SideEffects(rec, req)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "progestin_only", payload["kind"])
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
