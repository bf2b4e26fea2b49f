package handler

import (
	"net/http"

	"github.com/brandcraft-ai/brandcraft/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, reconciler *service.SessionReconciler, projects *service.ProjectService, studio *service.StudioService, logos *service.LogoService, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, reconciler, cookieSecure)
	homeHandler := NewHomeHandler(projects)
	projectHandler := NewProjectHandler(projects)
	identityHandler := NewIdentityHandler(projects, studio)
	visualsHandler := NewVisualsHandler(studio, logos)
	contentHandler := NewContentHandler(studio)
	assistantHandler := NewAssistantHandler(studio)

	requireAuth := func(h http.HandlerFunc) http.Handler { return RequireAuth(auth, h) }
	optionalAuth := func(h http.HandlerFunc) http.Handler { return OptionalAuth(auth, h) }

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /", optionalAuth(homeHandler.HandleHome))

	// Auth
	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/guest", authHandler.HandleGuest)
	mux.Handle("POST /api/auth/logout", optionalAuth(authHandler.HandleLogout))
	mux.Handle("POST /api/auth/logout-all", requireAuth(authHandler.HandleLogoutAll))
	mux.Handle("GET /api/auth/me", requireAuth(authHandler.HandleMe))

	// Projects
	mux.Handle("GET /api/projects/current", requireAuth(projectHandler.HandleCurrent))
	mux.Handle("PUT /api/projects/current", optionalAuth(projectHandler.HandleUpdateCurrent))
	mux.Handle("GET /api/projects", requireAuth(projectHandler.HandleList))
	mux.Handle("DELETE /api/projects/{id}", requireAuth(projectHandler.HandleDelete))

	// Identity
	mux.Handle("POST /api/identity/draft", optionalAuth(identityHandler.HandleDraft))
	mux.Handle("POST /api/identity/names", requireAuth(identityHandler.HandleNames))
	mux.Handle("POST /api/identity/select", optionalAuth(identityHandler.HandleSelect))
	mux.Handle("POST /api/identity/strategy", requireAuth(identityHandler.HandleStrategy))

	// Visuals
	mux.HandleFunc("GET /api/visuals/presets", visualsHandler.HandlePresets)
	mux.Handle("POST /api/visuals/logo", requireAuth(visualsHandler.HandleLogo))
	mux.Handle("POST /api/visuals/refine", requireAuth(visualsHandler.HandleRefine))
	mux.Handle("PUT /api/visuals/colors", requireAuth(visualsHandler.HandleColors))
	mux.Handle("GET /api/logos/{key}", requireAuth(visualsHandler.HandleServeLogo))

	// Content
	mux.Handle("POST /api/content/copy", requireAuth(contentHandler.HandleCopy))
	mux.Handle("POST /api/sentiment", requireAuth(contentHandler.HandleSentiment))

	// Assistant
	mux.Handle("POST /api/assistant/messages", requireAuth(assistantHandler.HandleMessage))
}
