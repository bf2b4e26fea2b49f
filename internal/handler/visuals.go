package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/service"
)

// VisualsHandler handles logo generation, recolouring and palette edits.
type VisualsHandler struct {
	studio *service.StudioService
	logos  *service.LogoService
}

// NewVisualsHandler creates a new VisualsHandler.
func NewVisualsHandler(studio *service.StudioService, logos *service.LogoService) *VisualsHandler {
	return &VisualsHandler{studio: studio, logos: logos}
}

// HandlePresets lists the logo style and mood presets.
// GET /api/visuals/presets
func (h *VisualsHandler) HandlePresets(w http.ResponseWriter, r *http.Request) {
	styles := make([]StylePresetDTO, len(domain.StylePresets))
	for i, p := range domain.StylePresets {
		styles[i] = StylePresetDTO{ID: p.ID, Label: p.Label}
	}
	moods := make([]MoodPresetDTO, len(domain.MoodPresets))
	for i, p := range domain.MoodPresets {
		moods[i] = MoodPresetDTO{Label: p.Label, Instruction: p.Instruction}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"styles":         styles,
		"moods":          moods,
		"defaultPalette": domain.DefaultPalette,
	})
}

// HandleLogo generates a logo for the project.
// POST /api/visuals/logo
// Request:  {"project": {...}, "preset": "...", "style": "...", "colors": [...], "engine": "..."}
// Response: {"project": {...}}
func (h *VisualsHandler) HandleLogo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Project *ProjectDTO `json:"project"`
		Preset  string      `json:"preset"`
		Style   string      `json:"style"`
		Colors  []string    `json:"colors"`
		Engine  string      `json:"engine"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, err := h.studio.GenerateLogo(r.Context(), UserFromContext(r.Context()), fromProjectDTO(req.Project), service.LogoOptions{
		Preset: req.Preset,
		Style:  req.Style,
		Colors: req.Colors,
		Engine: req.Engine,
	})
	if err != nil {
		writeServiceError(w, "generate logo", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"project": toProjectDTO(project)})
}

// HandleRefine recolours the project's current logo.
// POST /api/visuals/refine
// Request:  {"project": {...}, "colors": [...], "instruction": "...", "engine": "..."}
// Response: {"project": {...}}
func (h *VisualsHandler) HandleRefine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Project     *ProjectDTO `json:"project"`
		Colors      []string    `json:"colors"`
		Instruction string      `json:"instruction"`
		Engine      string      `json:"engine"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, err := h.studio.RefineLogo(r.Context(), UserFromContext(r.Context()), fromProjectDTO(req.Project), req.Colors, req.Instruction, req.Engine)
	if err != nil {
		writeServiceError(w, "refine logo", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"project": toProjectDTO(project)})
}

// HandleColors saves an edited palette.
// PUT /api/visuals/colors
// Request:  {"project": {...}, "colors": [...]}
// Response: {"project": {...}}
func (h *VisualsHandler) HandleColors(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Project *ProjectDTO `json:"project"`
		Colors  []string    `json:"colors"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	project, err := h.studio.UpdateColors(r.Context(), UserFromContext(r.Context()), fromProjectDTO(req.Project), req.Colors)
	if err != nil {
		writeServiceError(w, "update colors", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"project": toProjectDTO(project)})
}

// HandleServeLogo serves stored logo bytes to their owner.
// GET /api/logos/{key}
func (h *VisualsHandler) HandleServeLogo(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	img, err := h.logos.Get(r.Context(), user.ID, r.PathValue("key"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusNotFound, "Logo not found.")
			return
		}
		writeServiceError(w, "get logo", err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}
