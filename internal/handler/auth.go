package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/service"
)

// AuthHandler handles authentication-related HTTP requests. Every way of
// starting a session also reconciles the client's draft project with the
// user's saved history.
type AuthHandler struct {
	auth         *service.AuthService
	reconciler   *service.SessionReconciler
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, reconciler *service.SessionReconciler, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, reconciler: reconciler, cookieSecure: cookieSecure}
}

// HandleRegister processes a JSON registration request.
// POST /api/auth/register
// Request:  {"email":"...","username":"...","password":"...","draft":{...}}
// Response: 201 {"user": {...}, "project": {...}|null}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string      `json:"email"`
		Username string      `json:"username"`
		Password string      `json:"password"`
		Draft    *ProjectDTO `json:"draft"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, "register user", err)
		return
	}

	h.beginSession(w, r, http.StatusCreated, user, req.Draft)
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"...","draft":{...}}
// Response: {"user": {...}, "project": {...}|null}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Draft    *ProjectDTO `json:"draft"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, "login user", err)
		return
	}

	h.beginSession(w, r, http.StatusOK, user, req.Draft)
}

// HandleGuest starts a guest session.
// POST /api/auth/guest
// Request:  {"draft":{...}} or empty
// Response: {"user": {...}, "project": {...}|null}
func (h *AuthHandler) HandleGuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Draft *ProjectDTO `json:"draft"`
	}
	if err := readOptionalJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	h.beginSession(w, r, http.StatusOK, h.auth.Guest(), req.Draft)
}

// HandleLogout removes the session and clears the auth cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(authCookieName); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			slog.Error("logout", "error", err)
		}
	}

	h.setAuthCookie(w, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

// HandleLogoutAll ends every session of the current user, on all devices,
// and clears the auth cookie.
// POST /api/auth/logout-all
// Response: 204 No Content
func (h *AuthHandler) HandleLogoutAll(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := h.auth.LogoutAll(r.Context(), user); err != nil {
		writeServiceError(w, "logout all sessions", err)
		return
	}

	h.setAuthCookie(w, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
// Response: {"user": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// beginSession starts a session for user, reconciles the draft and writes
// the response. The session is discarded if reconciliation fails.
func (h *AuthHandler) beginSession(w http.ResponseWriter, r *http.Request, status int, user *domain.User, draft *ProjectDTO) {
	token, err := h.auth.StartSession(r.Context(), user)
	if err != nil {
		slog.Error("start session", "error", err)
		writeError(w, http.StatusInternalServerError, unexpectedErrorMessage)
		return
	}

	project, err := h.reconciler.Reconcile(r.Context(), fromProjectDTO(draft), user)
	if err != nil {
		if logoutErr := h.auth.Logout(r.Context(), token); logoutErr != nil {
			slog.Error("discard session", "error", logoutErr)
		}
		writeServiceError(w, "reconcile session", err)
		return
	}

	h.setAuthCookie(w, token, int(h.auth.SessionTTL()/time.Second))
	writeJSON(w, status, map[string]any{
		"user":    toUserDTO(user),
		"project": toProjectDTO(project),
	})
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
