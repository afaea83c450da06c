package http

import (
	"errors"
	"log/slog"
	"net/http"

	"finpro/internal/auth"
)

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.identity.Register(r.Context(), sanitizeInput(req.Username), sanitizeInput(req.Name), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "username already taken")
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmptyUsername):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Registration failed",
				"component", "auth",
				"operation", "register",
				"error", err)
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token issue failed",
			"component", "auth",
			"user", user.Key(),
			"error", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	slog.InfoContext(r.Context(), "User registered",
		"component", "auth",
		"operation", "register",
		"user", user.Key())
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, Username: user.Username, Name: user.Name})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.identity.Authenticate(r.Context(), sanitizeInput(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		slog.ErrorContext(r.Context(), "Login failed",
			"component", "auth",
			"operation", "login",
			"error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token issue failed",
			"component", "auth",
			"user", user.Key(),
			"error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, Username: user.Username, Name: user.Name})
}
