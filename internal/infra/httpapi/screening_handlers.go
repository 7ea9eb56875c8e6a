// internal/infra/httpapi/screening_handlers.go
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mental_screening_service/internal/app"
	"mental_screening_service/internal/domain/notification"
	"mental_screening_service/internal/domain/screening"
	"mental_screening_service/internal/domain/severity"
	"mental_screening_service/internal/infra/database"

	"github.com/go-chi/chi/v5"
)

type submitRequest struct {
	CitizenID    string `json:"citizen_id"`
	FullName     string `json:"fullname"`
	FacilityCode string `json:"facility_code"`
	StressScore  *int   `json:"stress_score"`
	Q1           int    `json:"q1"`
	Q2           int    `json:"q2"`
	Q3           int    `json:"q3"`
	EightQ       []int  `json:"eight_q"`
}

type submitResponse struct {
	ID             int64                `json:"id,omitempty"`
	CreatedAt      *time.Time           `json:"created_at,omitempty"`
	RiskLevel      screening.RiskLevel  `json:"risk_level"`
	Emergency      bool                 `json:"emergency"`
	Recommendation string               `json:"recommendation"`
	Q8Total        int                  `json:"q8_total"`
	Persisted      bool                 `json:"persisted"`
	PersistError   string               `json:"persist_error,omitempty"`
	Notified       bool                 `json:"notified"`
	Notification   *notification.Result `json:"notification,omitempty"`
}

// SubmitScreening accepts a completed questionnaire, classifies it, persists
// the record and dispatches alerts when warranted. Full success answers 200;
// a partial failure (persistence or any channel) answers 207 with per-step
// detail; invalid input answers 400 before any side effect.
func (h *Handler) SubmitScreening(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	result, err := h.submissions.Submit(r.Context(), app.Submission{
		Subject: screening.Subject{
			CitizenID:    req.CitizenID,
			FullName:     req.FullName,
			FacilityCode: req.FacilityCode,
		},
		StressScore: req.StressScore,
		TwoQ:        screening.TwoQAnswers{Q1: req.Q1, Q2: req.Q2, Q3: req.Q3},
		EightQ:      req.EightQ,
	})
	if err != nil {
		if errors.Is(err, screening.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Screening submission failed unexpectedly")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := submitResponse{
		RiskLevel:      result.Assessment.Level,
		Emergency:      result.Assessment.Emergency,
		Recommendation: result.Assessment.Recommendation,
		Q8Total:        result.Assessment.Inputs.EightQTotal,
		Persisted:      result.Persisted,
		Notified:       result.Notified,
		Notification:   result.Notification,
	}
	if result.Persisted {
		resp.ID = result.Record.ID
		createdAt := result.Record.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if result.PersistErr != nil {
		resp.PersistError = result.PersistErr.Error()
	}

	status := http.StatusOK
	if result.PartialFailure() {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, resp)
}

type recordResponse struct {
	ID             int64     `json:"id"`
	CitizenID      *string   `json:"citizen_id"`
	FullName       *string   `json:"fullname"`
	FacilityCode   *string   `json:"facility_code"`
	StressScore    *int64    `json:"stress_score"`
	Q1             int       `json:"q1"`
	Q2             int       `json:"q2"`
	Q3             int       `json:"q3"`
	Q8Total        int       `json:"q8_total"`
	Emergency      bool      `json:"emergency"`
	RiskLevel      string    `json:"risk_level"`
	Recommendation string    `json:"recommendation"`
	CreatedAt      time.Time `json:"created_at"`
}

func toRecordResponse(rec *screening.Record) recordResponse {
	resp := recordResponse{
		ID:             rec.ID,
		Q1:             rec.Q1,
		Q2:             rec.Q2,
		Q3:             rec.Q3,
		Q8Total:        rec.Q8Total,
		Emergency:      rec.Emergency,
		RiskLevel:      string(rec.RiskLevel),
		Recommendation: rec.Recommendation,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.CitizenID.Valid {
		resp.CitizenID = &rec.CitizenID.String
	}
	if rec.FullName.Valid {
		resp.FullName = &rec.FullName.String
	}
	if rec.FacilityCode.Valid {
		resp.FacilityCode = &rec.FacilityCode.String
	}
	if rec.StressScore.Valid {
		resp.StressScore = &rec.StressScore.Int64
	}
	return resp
}

// ListScreenings returns recent screenings, newest first.
func (h *Handler) ListScreenings(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.reports.History(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list screening history")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

type detailResponse struct {
	recordResponse
	Severity severity.Bucket `json:"severity"`
}

// GetScreening returns one screening record by ID, for the history detail view.
func (h *Handler) GetScreening(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	rec, bucket, err := h.reports.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "screening not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load screening record")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, detailResponse{recordResponse: toRecordResponse(rec), Severity: bucket})
}

// DashboardSummary returns aggregates over a 7d or 30d window.
func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	windowDays := 7
	switch r.URL.Query().Get("range") {
	case "", "7d":
	case "30d":
		windowDays = 30
	default:
		writeError(w, http.StatusBadRequest, "range must be 7d or 30d")
		return
	}

	summary, err := h.reports.Summary(r.Context(), windowDays)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build dashboard summary")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
