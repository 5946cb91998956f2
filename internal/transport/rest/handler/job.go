package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/P4ndro/Intervia/internal/model"
	"github.com/P4ndro/Intervia/internal/repository"
	"github.com/P4ndro/Intervia/internal/service"
)

// JobHandler handles job listing endpoints
type JobHandler struct {
	jobSvc *service.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobSvc *service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// List handles GET /v1/jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobType := model.JobType("")
	switch r.URL.Query().Get("type") {
	case "practice":
		jobType = model.JobTypePractice
	case "real":
		jobType = model.JobTypeReal
	}

	cards, err := h.jobSvc.List(r.Context(), jobType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.JobCard{"jobs": cards})
}

// Get handles GET /v1/jobs/{id}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := h.jobSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}
