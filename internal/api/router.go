package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/radiusdc/portal-core/internal/auth"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Open endpoints
		r.Get("/health", s.handleHealth)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/mfa/verify", s.handleMFAVerify)
		r.Post("/auth/refresh", s.handleRefresh)
		r.Post("/auth/logout", s.handleLogout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)

			r.With(s.requirePermission(auth.PermAccessLogsRead)).
				Get("/access-logs", s.handleListAccessLogs)

			r.With(s.requirePermission(auth.PermCamerasView)).
				Get("/cameras", s.handleListCameras)

			r.With(s.requirePermission(auth.PermEnvironmentalRead)).
				Get("/environmental", s.handleListEnvironmental)

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", s.handleListAnnouncements)
				r.With(s.requirePermission(auth.PermAnnouncementsWrite)).
					Post("/", s.handleCreateAnnouncement)
			})

			r.Get("/power", s.handleListPower)
			r.Get("/dashboard/summary", s.handleDashboardSummary)

			// WebSocket feed (cookie-authenticated via authMiddleware)
			r.Get("/ws", s.handleWebSocket)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
