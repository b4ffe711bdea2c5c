package http

import (
	"net/http"

	"adrd-care-system/internal/delivery/http/handler"
	"adrd-care-system/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	chatHandler           *handler.ChatHandler
	healthHandler         *handler.HealthHandler
	negotiationLogHandler *handler.NegotiationLogHandler
	adminAuthMiddleware   *middleware.AdminAuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	recoveryMiddleware    *middleware.RecoveryMiddleware
}

func NewRouter(
	chatHandler *handler.ChatHandler,
	healthHandler *handler.HealthHandler,
	negotiationLogHandler *handler.NegotiationLogHandler,
	adminAuthMiddleware *middleware.AdminAuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	recoveryMiddleware *middleware.RecoveryMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		chatHandler:           chatHandler,
		healthHandler:         healthHandler,
		negotiationLogHandler: negotiationLogHandler,
		adminAuthMiddleware:   adminAuthMiddleware,
		corsMiddleware:        corsMiddleware,
		recoveryMiddleware:    recoveryMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Chat endpoint (public)
	api.HandleFunc("/chat", r.chatHandler.Chat).Methods(http.MethodPost)

	// Admin routes (protected - operational audit trail)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.adminAuthMiddleware.Authenticate)
	admin.HandleFunc("/negotiation-logs", r.negotiationLogHandler.GetAllNegotiationLogs).Methods(http.MethodGet)
	admin.HandleFunc("/negotiation-logs/{id}", r.negotiationLogHandler.GetNegotiationLog).Methods(http.MethodGet)

	// Global middleware
	r.router.Use(r.recoveryMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
