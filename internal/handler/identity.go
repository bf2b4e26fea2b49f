package handler

import (
	"net/http"

	"github.com/brandcraft-ai/brandcraft/internal/service"
)

// IdentityHandler handles the naming and strategy steps of the studio.
type IdentityHandler struct {
	projects *service.ProjectService
	studio   *service.StudioService
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(projects *service.ProjectService, studio *service.StudioService) *IdentityHandler {
	return &IdentityHandler{projects: projects, studio: studio}
}

// HandleDraft records what a visitor typed before signing in. Signed-in
// users get their project back unchanged.
// POST /api/identity/draft
// Request:  {"project": {...}, "name": "...", "industry": "...", "keywords": "..."}
// Response: {"project": {...}|null}
func (h *IdentityHandler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Project  *ProjectDTO `json:"project"`
		Name     *string     `json:"name"`
		Industry string      `json:"industry"`
		Keywords string      `json:"keywords"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if UserFromContext(r.Context()) != nil {
		writeJSON(w, http.StatusOK, map[string]any{"project": toProjectDTO(fromProjectDTO(req.Project))})
		return
	}

	draft, err := h.projects.StartDraft(fromProjectDTO(req.Project), req.Name, req.Industry, req.Keywords)
	if err != nil {
		writeServiceError(w, "start draft", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"project": toProjectDTO(draft)})
}

// HandleNames suggests brand names.
// POST /api/identity/names
// Request:  {"industry": "...", "keywords": "...", "engine": "gemini|granite"}
// Response: {"names": [{"name": "...", "meaning": "..."}]}
func (h *IdentityHandler) HandleNames(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Industry string `json:"industry"`
		Keywords string `json:"keywords"`
		Engine   string `json:"engine"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	names, err := h.studio.GenerateNames(r.Context(), UserFromContext(r.Context()), req.Industry, req.Keywords, req.Engine)
	if err != nil {
		writeServiceError(w, "generate names", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"names": names})
}

// HandleSelect finalises the brand name.
// POST /api/identity/select
// Request:  {"project": {...}, "name": "...", "industry": "...", "keywords": "..."}
// Response: {"project": {...}, "authRequired": bool}
func (h *IdentityHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Project  *ProjectDTO `json:"project"`
		Name     string      `json:"name"`
		Industry string      `json:"industry"`
		Keywords string      `json:"keywords"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, authRequired, err := h.projects.SelectIdentity(r.Context(), UserFromContext(r.Context()),
		fromProjectDTO(req.Project), req.Name, req.Industry, req.Keywords)
	if err != nil {
		writeServiceError(w, "select identity", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"project":      toProjectDTO(project),
		"authRequired": authRequired,
	})
}

// HandleStrategy generates and saves the project's strategy.
// POST /api/identity/strategy
// Request:  {"project": {...}, "engine": "..."}
// Response: {"project": {...}}
func (h *IdentityHandler) HandleStrategy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Project *ProjectDTO `json:"project"`
		Engine  string      `json:"engine"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, err := h.studio.GenerateStrategy(r.Context(), UserFromContext(r.Context()), fromProjectDTO(req.Project), req.Engine)
	if err != nil {
		writeServiceError(w, "generate strategy", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"project": toProjectDTO(project)})
}
