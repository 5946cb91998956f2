package handler

import (
	"net/http"

	"github.com/P4ndro/Intervia/internal/service"
	"github.com/P4ndro/Intervia/internal/transport/rest/middleware"
)

// UserHandler handles candidate profile endpoints
type UserHandler struct {
	interviewSvc *service.InterviewService
}

// NewUserHandler creates a new user handler
func NewUserHandler(interviewSvc *service.InterviewService) *UserHandler {
	return &UserHandler{interviewSvc: interviewSvc}
}

// GetStats handles GET /v1/users/me/stats
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.interviewSvc.GetUserStats(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
