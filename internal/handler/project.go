package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folio/folio-go/internal/model"
	"github.com/folio/folio-go/internal/service"
)

// ProjectHandler handles HTTP requests for the project catalog. The API
// enforces no authorization; only the UI hides the write affordances.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// HandleList handles GET /api/projects requests.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.ProjectListResponse{Projects: h.service.List(r.Context())})
}

// HandleSections handles GET /api/projects/sections requests.
func (h *ProjectHandler) HandleSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Sections(r.Context()))
}

// HandleGet handles GET /api/projects/{id} requests.
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse(service.ErrProjectNotFound.Error()))
		return
	}

	writeJSON(w, http.StatusOK, model.ProjectResponse{Project: p})
}

// HandleCreate handles POST /api/projects requests.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.ProjectInput
	if err := decodeJSON(w, r, &req); err != nil {
		status, msg := decodeStatus(err)
		writeJSON(w, status, errorResponse(msg))
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.Error("creating project failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, model.ProjectResponse{Project: p})
}

// HandleUpdate handles PUT /api/projects requests. The id travels in the body.
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if errors.Is(err, model.ErrInvalidProjectID) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		status, msg := decodeStatus(err)
		writeJSON(w, status, errorResponse(msg))
		return
	}
	if req.ID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse(model.ErrInvalidProjectID.Error()))
		return
	}

	p, err := h.service.Update(r.Context(), int64(req.ID), req.ProjectInput)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrProjectNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			slog.Error("updating project failed", "id", int64(req.ID), "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, model.ProjectResponse{Project: p})
}
