package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check.
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication.
	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("DELETE /api/v1/auth/logout", s.handleLogout)

	// Reports. Both routes require an authenticated session.
	mux.HandleFunc("POST /api/v1/report/upload", s.requireSession(s.handleReportUpload))
	mux.HandleFunc("GET /api/v1/report/read/{id}", s.requireSession(s.handleReportRead))

	return s.withRequestLogging(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
