package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/folio/folio-go/internal/model"
	"github.com/folio/folio-go/internal/service"
)

// AuthHandler handles HTTP requests for the two login endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleUserAuth handles POST /api/user-auth requests.
func (h *AuthHandler) HandleUserAuth(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		status, msg := decodeStatus(err)
		writeJSON(w, status, model.UserAuthResponse{Error: msg})
		return
	}

	id, err := h.service.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired), errors.Is(err, service.ErrInvalidEmail):
			writeJSON(w, http.StatusBadRequest, model.UserAuthResponse{Error: err.Error()})
		case errors.Is(err, service.ErrUseAdminLogin):
			writeJSON(w, http.StatusUnauthorized, model.UserAuthResponse{Error: err.Error()})
		default:
			slog.Error("recording user login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, model.UserAuthResponse{Error: "unable to store user login right now"})
		}
		return
	}

	writeJSON(w, http.StatusOK, model.UserAuthResponse{OK: true, User: &id})
}

// HandleAdminAuth handles POST /api/admin-auth requests.
func (h *AuthHandler) HandleAdminAuth(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		status, msg := decodeStatus(err)
		writeJSON(w, status, model.AdminAuthResponse{Error: msg})
		return
	}

	id, err := h.service.AuthenticateAdmin(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			writeJSON(w, http.StatusBadRequest, model.AdminAuthResponse{Error: err.Error()})
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, model.AdminAuthResponse{Error: err.Error()})
		default:
			slog.Error("admin login unavailable", "error", err)
			writeJSON(w, http.StatusInternalServerError, model.AdminAuthResponse{Error: "admin login is unavailable"})
		}
		return
	}

	writeJSON(w, http.StatusOK, model.AdminAuthResponse{OK: true, Admin: &id})
}
