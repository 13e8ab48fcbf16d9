package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"reportvault/internal/api"
)

const defaultJSONMaxBody = 1 << 20 // 1 MiB

// Client-facing response messages. These are part of the API contract:
// distinct failure causes deliberately share one message where
// distinguishing them would leak account or report existence.
const (
	msgRegisterOK = "Register successful."
	msgLoginOK    = "Login successful."
	msgLogoutOK   = "Logout successful."
	msgUploadOK   = "Upload successful."

	msgInvalidInput       = "Invalid input."
	msgInvalidLoginInput  = "Invalid input"
	msgInvalidEmail       = "Invalid Email."
	msgVulnerablePassword = "A vulnerable password."
	msgAlreadyExists      = "Already exists."
	msgInvalidCredentials = "Invalid credentials."
	msgNotAuthenticated   = "You are not authenticated."
	msgReportNotFound     = "Report not found or invalid."
	msgInvalidFile        = "Invalid file"
)

// Service-level sentinels mapped to HTTP responses at the boundary.
var (
	errInvalidInput       = errors.New("invalid input")
	errInvalidEmail       = errors.New("invalid email")
	errInvalidCredentials = errors.New("invalid credentials")
	errNotAuthenticated   = errors.New("not authenticated")
	errReportNotFound     = errors.New("report not found")
	errInvalidFile        = errors.New("invalid file")
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

// writeMessage writes a message-keyed body, the shape of all auth
// endpoint responses.
func (s *Server) writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.logRejection(r, status, message)
	s.writeJSON(w, status, api.MessageResponse{Message: message})
}

// writeErrorBody writes an error-keyed body, the shape of report
// endpoint failures and authentication middleware rejections.
func (s *Server) writeErrorBody(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.logRejection(r, status, message)
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func (s *Server) logRejection(r *http.Request, status int, message string) {
	if status < 400 {
		return
	}
	fields := []any{"status", status, "message", message}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	}
	switch {
	case status >= 500:
		s.log().Error("request error", fields...)
	case shouldWarnClientError(status):
		s.log().Warn("request rejected", fields...)
	default:
		s.log().Debug("request rejected", fields...)
	}
}

func shouldWarnClientError(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	default:
		return false
	}
}

// decodeJSON decodes a JSON body. Unknown fields are tolerated;
// handlers check the fields they require.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, defaultJSONMaxBody)
	return json.NewDecoder(r.Body).Decode(dst)
}

// bearerToken extracts the session token from the Authorization header,
// accepting the bare Auth-Token header as a fallback.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return header
	}
	return strings.TrimSpace(r.Header.Get("Auth-Token"))
}

// requireSession authenticates the request's bearer token and places
// the owning account in the request context. Every failure cause maps
// to the same 401 body.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.writeErrorBody(w, r, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}
		account, err := s.authService.Authenticate(r.Context(), token, time.Now().UTC())
		if err != nil {
			if errors.Is(err, errNotAuthenticated) {
				s.writeErrorBody(w, r, http.StatusUnauthorized, msgNotAuthenticated)
				return
			}
			s.writeErrorBody(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		next(w, r.WithContext(contextWithAccount(r.Context(), account)))
	}
}
