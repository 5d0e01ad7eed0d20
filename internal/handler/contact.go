package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/folio/folio-go/internal/config"
	"github.com/folio/folio-go/internal/model"
	"github.com/folio/folio-go/internal/service"
)

// ContactHandler handles contact-form submissions and the public profile.
type ContactHandler struct {
	service *service.ContactService
	profile model.SiteProfile
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc *service.ContactService, channels config.ContactConfig) *ContactHandler {
	return &ContactHandler{service: svc, profile: siteProfile(channels)}
}

type contactResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// HandleSubmit handles POST /api/contact requests.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		status, msg := decodeStatus(err)
		writeJSON(w, status, contactResponse{Error: msg})
		return
	}

	if _, err := h.service.Submit(r.Context(), req); err != nil {
		if errors.Is(err, service.ErrContactFieldsRequired) || errors.Is(err, service.ErrInvalidEmail) {
			writeJSON(w, http.StatusBadRequest, contactResponse{Error: err.Error()})
			return
		}
		slog.Error("storing contact submission failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Error: "unable to submit, please try again"})
		return
	}

	writeJSON(w, http.StatusCreated, contactResponse{OK: true})
}

// HandleSite handles GET /api/site requests.
func (h *ContactHandler) HandleSite(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.profile)
}

func siteProfile(c config.ContactConfig) model.SiteProfile {
	p := model.SiteProfile{
		Email:    c.Email,
		Phone:    c.Phone,
		LinkedIn: c.LinkedIn,
		GitHub:   c.GitHub,
	}
	if digits := digitsOnly(c.WhatsApp); digits != "" {
		p.WhatsApp = digits
		p.WhatsAppLink = "https://wa.me/" + digits
	}
	return p
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
