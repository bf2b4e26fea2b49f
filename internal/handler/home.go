package handler

import (
	"log/slog"
	"net/http"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/service"
	"github.com/brandcraft-ai/brandcraft/internal/view"
)

// HomeHandler renders the studio shell.
type HomeHandler struct {
	projects *service.ProjectService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(projects *service.ProjectService) *HomeHandler {
	return &HomeHandler{projects: projects}
}

// HandleHome renders the home page with the signed-in user's current project.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		view.ErrorPage(http.StatusNotFound, "Not Found", "The page you are looking for does not exist.").Render(r.Context(), w)
		return
	}

	username := ""
	var project *domain.Project
	if user := UserFromContext(r.Context()); user != nil {
		username = user.Username
		current, err := h.projects.Current(r.Context(), user)
		if err != nil {
			slog.Error("load current project", "error", err)
		}
		project = current
	}

	view.HomePage(username, project, service.AssistantGreeting(project)).Render(r.Context(), w)
}
