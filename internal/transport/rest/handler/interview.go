package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/P4ndro/Intervia/internal/model"
	"github.com/P4ndro/Intervia/internal/repository"
	"github.com/P4ndro/Intervia/internal/service"
	"github.com/P4ndro/Intervia/internal/transport/rest/middleware"
)

// InterviewHandler handles interview session endpoints
type InterviewHandler struct {
	interviewSvc *service.InterviewService
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(interviewSvc *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc}
}

// Start handles POST /v1/interviews
func (h *InterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req model.StartInterviewRequest
	if r.Body != nil {
		// Empty body means a practice interview.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	iv, err := h.interviewSvc.Start(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to start interview")
		return
	}

	writeJSON(w, http.StatusCreated, model.StartInterviewResponse{InterviewID: iv.ID})
}

// Get handles GET /v1/interviews/{id}
func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	view, err := h.interviewSvc.Get(r.Context(), id)
	if err != nil {
		writeInterviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SubmitAnswer handles POST /v1/interviews/{id}/answers
func (h *InterviewHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "questionId is required")
		return
	}

	resp, err := h.interviewSvc.SubmitAnswer(r.Context(), id, req)
	if err != nil {
		writeInterviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Complete handles POST /v1/interviews/{id}/complete
func (h *InterviewHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.interviewSvc.Complete(r.Context(), id); err != nil {
		writeInterviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Abandon handles POST /v1/interviews/{id}/abandon
func (h *InterviewHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.interviewSvc.Abandon(r.Context(), id); err != nil {
		writeInterviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// RecordViolation handles POST /v1/interviews/{id}/violations
func (h *InterviewHandler) RecordViolation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.RecordViolationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.interviewSvc.RecordViolation(r.Context(), id, req); err != nil {
		writeInterviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetReport handles GET /v1/interviews/{id}/report
func (h *InterviewHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	report, err := h.interviewSvc.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotReady) {
			writeError(w, http.StatusNotFound, "report not available")
			return
		}
		writeInterviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeInterviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "interview not found")
	case errors.Is(err, service.ErrInterviewState):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnknownQuestion):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
