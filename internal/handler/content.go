package handler

import (
	"net/http"

	"github.com/brandcraft-ai/brandcraft/internal/service"
)

// ContentHandler handles marketing copy and sentiment analysis.
type ContentHandler struct {
	studio *service.StudioService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(studio *service.StudioService) *ContentHandler {
	return &ContentHandler{studio: studio}
}

// HandleCopy writes marketing copy for a product.
// POST /api/content/copy
// Request:  {"brandName": "...", "product": "...", "tone": "...", "engine": "..."}
// Response: {"copy": {"slogans": [...], "socialPosts": [...], "email": "..."}}
func (h *ContentHandler) HandleCopy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BrandName string `json:"brandName"`
		Product   string `json:"product"`
		Tone      string `json:"tone"`
		Engine    string `json:"engine"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	mc, err := h.studio.MarketingCopy(r.Context(), UserFromContext(r.Context()), req.BrandName, req.Product, req.Tone, req.Engine)
	if err != nil {
		writeServiceError(w, "generate copy", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"copy": mc})
}

// HandleSentiment scores customer feedback.
// POST /api/sentiment
// Request:  {"text": "..."}
// Response: {"result": {"score": 0.8, "label": "Positive", "breakdown": {...}}}
func (h *ContentHandler) HandleSentiment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	result, err := h.studio.AnalyzeSentiment(r.Context(), UserFromContext(r.Context()), req.Text)
	if err != nil {
		writeServiceError(w, "analyze sentiment", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}
