package domain

import (
	"context"
	"fmt"
	"iter"
)

// TextEngine selects the text model family used for a generation.
type TextEngine string

const (
	TextEngineGemini  TextEngine = "gemini"
	TextEngineGranite TextEngine = "granite"
)

// ImageEngine selects the image model used for logo generation.
type ImageEngine string

const (
	ImageEngineGemini          ImageEngine = "gemini-image"
	ImageEngineStableDiffusion ImageEngine = "stable-diffusion"
)

type NameSuggestion struct {
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
}

type MarketingCopy struct {
	Slogans     []string `json:"slogans"`
	SocialPosts []string `json:"socialPosts"`
	Email       string   `json:"email"`
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

type SentimentResult struct {
	Score     float64            `json:"score"`
	Label     SentimentLabel     `json:"label"`
	Breakdown SentimentBreakdown `json:"breakdown"`
}

type SentimentBreakdown struct {
	Joy      float64 `json:"joy"`
	Trust    float64 `json:"trust"`
	Fear     float64 `json:"fear"`
	Surprise float64 `json:"surprise"`
}

// GeneratedImage is raw image output from the image model.
type GeneratedImage struct {
	Data        []byte
	ContentType string
}

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// LogoRequest describes a new logo.
type LogoRequest struct {
	BrandName string
	Industry  string
	Style     string
	Colors    []string
	Engine    ImageEngine
}

// RecolorRequest describes a palette change applied to an existing logo.
type RecolorRequest struct {
	Image       GeneratedImage
	Colors      []string
	Instruction string
	Engine      ImageEngine
}

// BrandGenerator produces brand material from a generative model. Every
// method fails with ErrMalformedResponse when the model output does not
// match the expected shape.
type BrandGenerator interface {
	BrandNames(ctx context.Context, industry, keywords string, engine TextEngine) ([]NameSuggestion, error)
	Strategy(ctx context.Context, brandName, industry, description string, engine TextEngine) (*Strategy, error)
	Logo(ctx context.Context, req LogoRequest) (*GeneratedImage, error)
	RecolorLogo(ctx context.Context, req RecolorRequest) (*GeneratedImage, error)
	MarketingCopy(ctx context.Context, brandName, product, tone string, engine TextEngine) (*MarketingCopy, error)
	Sentiment(ctx context.Context, text string) (*SentimentResult, error)
	// Chat streams the assistant's reply to message as text chunks.
	Chat(ctx context.Context, brief string, history []ChatMessage, message string) iter.Seq2[string, error]
}

// ParseTextEngine validates a text engine name. An empty name selects
// TextEngineGemini.
func ParseTextEngine(s string) (TextEngine, error) {
	switch e := TextEngine(s); e {
	case "":
		return TextEngineGemini, nil
	case TextEngineGemini, TextEngineGranite:
		return e, nil
	}
	return "", fmt.Errorf("%w: unknown text engine %q", ErrInvalidInput, s)
}

// ParseImageEngine validates an image engine name. An empty name selects
// ImageEngineGemini.
func ParseImageEngine(s string) (ImageEngine, error) {
	switch e := ImageEngine(s); e {
	case "":
		return ImageEngineGemini, nil
	case ImageEngineGemini, ImageEngineStableDiffusion:
		return e, nil
	}
	return "", fmt.Errorf("%w: unknown image engine %q", ErrInvalidInput, s)
}
