package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/service"
	"github.com/brandcraft-ai/brandcraft/internal/view"
)

const (
	chatMessagesID     = "chat-messages"
	emptyReplyFallback = "I'm sorry, I couldn't generate a response at this time."
	replyErrorFallback = "I encountered an issue connecting to the branding core. Please try again."
)

// AssistantHandler streams the brand assistant's replies.
type AssistantHandler struct {
	studio *service.StudioService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(studio *service.StudioService) *AssistantHandler {
	return &AssistantHandler{studio: studio}
}

// HandleMessage appends the user's message and the streamed reply to the
// chat log.
// POST /api/assistant/messages
// Request:  {"message": "...", "history": [{"role": "...", "content": "..."}], "project": {...}}
// Response: Datastar SSE stream
func (h *AssistantHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string               `json:"message"`
		History []domain.ChatMessage `json:"history"`
		Project *ProjectDTO          `json:"project"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	reply, err := h.studio.Chat(r.Context(), UserFromContext(r.Context()), fromProjectDTO(req.Project), req.History, req.Message)
	if err != nil {
		writeServiceError(w, "start chat", err)
		return
	}

	replyID := "reply-" + uuid.NewString()
	sse := datastar.NewSSE(w, r)

	sse.PatchElementTempl(
		view.ChatMessage(domain.ChatRoleUser, req.Message),
		datastar.WithSelectorID(chatMessagesID),
		datastar.WithModeAppend(),
	)
	sse.PatchElementTempl(
		view.ChatReply(replyID),
		datastar.WithSelectorID(chatMessagesID),
		datastar.WithModeAppend(),
	)

	wrote := false
	for chunk, err := range reply {
		if err != nil {
			slog.Error("stream chat reply", "error", err)
			sse.PatchElementTempl(
				view.ChatReplyChunk(replyErrorFallback),
				datastar.WithSelectorID(replyID),
				datastar.WithModeInner(),
			)
			return
		}
		if chunk == "" {
			continue
		}
		wrote = true
		sse.PatchElementTempl(
			view.ChatReplyChunk(chunk),
			datastar.WithSelectorID(replyID),
			datastar.WithModeAppend(),
		)
	}

	if !wrote {
		sse.PatchElementTempl(
			view.ChatReplyChunk(emptyReplyFallback),
			datastar.WithSelectorID(replyID),
			datastar.WithModeInner(),
		)
	}
}
