package http

import (
	"net/http"

	"go-practice-management/internal/delivery/http/handler"
	"go-practice-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	authHandler      *handler.AuthHandler
	patientHandler   *handler.PatientHandler
	sessionHandler   *handler.SessionHandler
	financialHandler *handler.FinancialHandler
	dashboardHandler *handler.DashboardHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	sessionHandler *handler.SessionHandler,
	financialHandler *handler.FinancialHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		authHandler:      authHandler,
		patientHandler:   patientHandler,
		sessionHandler:   sessionHandler,
		financialHandler: financialHandler,
		dashboardHandler: dashboardHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Everything below requires authentication
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Patients
	protected.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	protected.HandleFunc("/patients", r.patientHandler.ListPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}", r.patientHandler.DeactivatePatient).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{id}/summary", r.patientHandler.GetPatientSummary).Methods(http.MethodGet)

	// Sessions
	protected.HandleFunc("/sessions", r.sessionHandler.ScheduleSession).Methods(http.MethodPost)
	protected.HandleFunc("/sessions", r.sessionHandler.ListSessions).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{id}", r.sessionHandler.GetSession).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{id}", r.sessionHandler.UpdateSession).Methods(http.MethodPut)
	protected.HandleFunc("/sessions/{id}/status", r.sessionHandler.TransitionStatus).Methods(http.MethodPatch)

	// Financial entries
	protected.HandleFunc("/financial", r.financialHandler.ListEntries).Methods(http.MethodGet)
	protected.HandleFunc("/financial/report", r.financialHandler.GetReport).Methods(http.MethodGet)
	protected.HandleFunc("/financial/{id}", r.financialHandler.GetEntry).Methods(http.MethodGet)
	protected.HandleFunc("/financial/{id}/pay", r.financialHandler.PayEntry).Methods(http.MethodPost)
	protected.HandleFunc("/financial/{id}/unpay", r.financialHandler.UnpayEntry).Methods(http.MethodPost)

	// Dashboard
	protected.HandleFunc("/dashboard/summary", r.dashboardHandler.GetSummary).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
