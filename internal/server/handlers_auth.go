package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"reportvault/internal/api"
	internalauth "reportvault/internal/auth"
	"reportvault/internal/store"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	// Unknown extra fields are tolerated here; only email and
	// password participate.
	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeMessage(w, r, http.StatusUnprocessableEntity, msgInvalidInput)
		return
	}
	if req.Email == nil || req.Password == nil ||
		strings.TrimSpace(*req.Email) == "" || *req.Password == "" {
		s.writeMessage(w, r, http.StatusUnprocessableEntity, msgInvalidInput)
		return
	}

	_, err := s.authService.Register(r.Context(), *req.Email, *req.Password, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, errInvalidEmail):
			s.writeMessage(w, r, http.StatusUnprocessableEntity, msgInvalidEmail)
		case errors.Is(err, internalauth.ErrVulnerablePassword):
			s.writeMessage(w, r, http.StatusForbidden, msgVulnerablePassword)
		case errors.Is(err, store.ErrEmailTaken):
			s.writeMessage(w, r, http.StatusConflict, msgAlreadyExists)
		default:
			s.log().Error("register", "error", err)
			s.writeMessage(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.writeJSON(w, http.StatusOK, api.MessageResponse{Message: msgRegisterOK})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	// Extra fields are tolerated; a payload missing either credential
	// field is malformed.
	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeMessage(w, r, http.StatusUnprocessableEntity, msgInvalidLoginInput)
		return
	}
	if req.Email == nil || req.Password == nil {
		s.writeMessage(w, r, http.StatusUnprocessableEntity, msgInvalidLoginInput)
		return
	}

	result, err := s.authService.Login(r.Context(), *req.Email, *req.Password, time.Now().UTC())
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			s.writeMessage(w, r, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		s.log().Error("login", "error", err)
		s.writeMessage(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, api.LoginResponse{
		Message:   msgLoginOK,
		AuthToken: result.Token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	err := s.authService.Logout(r.Context(), bearerToken(r), time.Now().UTC())
	if err != nil {
		if errors.Is(err, errNotAuthenticated) {
			s.writeErrorBody(w, r, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}
		s.log().Error("logout", "error", err)
		s.writeErrorBody(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, api.MessageResponse{Message: msgLogoutOK})
}
