package handler

import (
	"errors"
	"net/http"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/service"
)

// ProjectHandler handles the current project and the saved project list.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// HandleCurrent returns the user's most recently saved project.
// GET /api/projects/current
// Response: {"project": {...}|null}
func (h *ProjectHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	project, err := h.projects.Current(r.Context(), user)
	if err != nil {
		writeServiceError(w, "get current project", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"project": toProjectDTO(project)})
}

// HandleUpdateCurrent replaces the current project. It is saved only when
// the request carries a session.
// PUT /api/projects/current
// Request:  {"project": {...}}
// Response: {"project": {...}, "persisted": bool}
func (h *ProjectHandler) HandleUpdateCurrent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Project *ProjectDTO `json:"project"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, persisted, err := h.projects.Update(r.Context(), UserFromContext(r.Context()), fromProjectDTO(req.Project))
	if err != nil {
		writeServiceError(w, "update project", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"project":   toProjectDTO(project),
		"persisted": persisted,
	})
}

// HandleList returns the user's saved projects, most recent first.
// GET /api/projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, "list projects", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"projects": toProjectDTOs(projects)})
}

// HandleDelete removes one of the user's projects.
// DELETE /api/projects/{id}
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.projects.Delete(r.Context(), UserFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusNotFound, "Project not found.")
			return
		}
		writeServiceError(w, "delete project", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
