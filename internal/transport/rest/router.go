package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/P4ndro/Intervia/internal/service"
	"github.com/P4ndro/Intervia/internal/transport/rest/handler"
	"github.com/P4ndro/Intervia/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	InterviewService *service.InterviewService
	JobService       *service.JobService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	interviewHandler := handler.NewInterviewHandler(c.InterviewService)
	jobHandler := handler.NewJobHandler(c.JobService)
	userHandler := handler.NewUserHandler(c.InterviewService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Candidate routes (require auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/jobs", jobHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/jobs/{id}", jobHandler.Get).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/interviews", interviewHandler.Start).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/interviews/{id}", interviewHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/interviews/{id}/answers", interviewHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/interviews/{id}/complete", interviewHandler.Complete).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/interviews/{id}/abandon", interviewHandler.Abandon).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/interviews/{id}/violations", interviewHandler.RecordViolation).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/interviews/{id}/report", interviewHandler.GetReport).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/users/me/stats", userHandler.GetStats).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
