// Package generator produces brand material with Google's Gemini models.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

const (
	flashTextModel  = "gemini-3-flash-preview"
	proTextModel    = "gemini-3-pro-preview"
	flashImageModel = "gemini-2.5-flash-image"
	proImageModel   = "gemini-3-pro-image-preview"
	chatModel       = proTextModel
)

const (
	graniteNamesInstruction = "You are an IBM Granite AI specialist. Focus on enterprise-grade, reliable, and scalable brand names. Use clean plain text."
	geminiNamesInstruction  = "You are a creative Gemini AI branding expert. Focus on catchy, modern, and memorable brand names. Use clean plain text."
	strategyInstruction     = "You are a branding strategist. Output must be clean plain text. Do NOT use markdown symbols like ** or #. Use clear section labels in ALL CAPS."
	copywriterInstruction   = "You are a professional copywriter. Use clean plain text only. Do NOT use markdown symbols like ** or underscores. Use capitalization for emphasis."
)

const assistantInstruction = `You are the BrandCraft Senior Branding Consultant.
Your goal is to provide elite, professional, and creative branding advice.

CRITICAL FORMATTING RULE:
- Do NOT use ANY Markdown characters. No asterisks (**), no underscores (_), no hash symbols (#).
- Use ONLY clean plain text.
- Use double line breaks between paragraphs for spacing.
- Use UPPERCASE labels for section headers (e.g., RECOMMENDATION:).
- Use simple bullet points like "-" if needed, but avoid complex formatting.

RULES:
1. Be professional yet inspiring.
2. Always refer to the user's specific brand data if provided.
3. If a user asks for designs, focus on the 'concept' and 'why' behind the design.
4. Keep responses concise but high-impact.

CONTEXT:
`

// ModelsAPI is the subset of *genai.Models the generator calls.
type ModelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// Gemini implements domain.BrandGenerator on the Gemini API.
type Gemini struct {
	models ModelsAPI
}

var _ domain.BrandGenerator = (*Gemini)(nil)

// New creates a Gemini generator authenticated with apiKey.
func New(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, domain.ErrGeneratorUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewWithModels(client.Models), nil
}

// NewWithModels creates a Gemini generator on an existing models client.
func NewWithModels(models ModelsAPI) *Gemini {
	return &Gemini{models: models}
}

func (g *Gemini) BrandNames(ctx context.Context, industry, keywords string, engine domain.TextEngine) ([]domain.NameSuggestion, error) {
	instruction := geminiNamesInstruction
	if engine == domain.TextEngineGranite {
		instruction = graniteNamesInstruction
	}
	prompt := fmt.Sprintf("Generate 10 creative and catchy brand names for the industry: %s. Keywords: %s. Provide the name and a short explanation for each.", industry, keywords)

	var raw []struct {
		Name    *string `json:"name"`
		Meaning *string `json:"meaning"`
	}
	if err := g.generateJSON(ctx, textModel(engine), prompt, instruction, namesSchema, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no names returned", domain.ErrMalformedResponse)
	}

	names := make([]domain.NameSuggestion, 0, len(raw))
	for i, r := range raw {
		if r.Name == nil || strings.TrimSpace(*r.Name) == "" || r.Meaning == nil {
			return nil, fmt.Errorf("%w: name %d is incomplete", domain.ErrMalformedResponse, i)
		}
		names = append(names, domain.NameSuggestion{Name: strings.TrimSpace(*r.Name), Meaning: *r.Meaning})
	}
	return names, nil
}

func (g *Gemini) Strategy(ctx context.Context, brandName, industry, description string, engine domain.TextEngine) (*domain.Strategy, error) {
	prompt := fmt.Sprintf("Brand: %q, Industry: %q. Create a brand strategy based on: %s", brandName, industry, description)

	var raw struct {
		Mission *string  `json:"mission"`
		Vision  *string  `json:"vision"`
		Values  []string `json:"values"`
	}
	if err := g.generateJSON(ctx, textModel(engine), prompt, strategyInstruction, strategySchema, &raw); err != nil {
		return nil, err
	}
	if raw.Mission == nil || raw.Vision == nil || raw.Values == nil {
		return nil, fmt.Errorf("%w: strategy requires mission, vision and values", domain.ErrMalformedResponse)
	}
	return &domain.Strategy{Mission: *raw.Mission, Vision: *raw.Vision, Values: raw.Values}, nil
}

func (g *Gemini) Logo(ctx context.Context, req domain.LogoRequest) (*domain.GeneratedImage, error) {
	prompt := fmt.Sprintf("Professional minimalist vector logo for %q in %s. Style: %s. %s White background.",
		req.BrandName, req.Industry, req.Style, colorDirective(req.Colors))

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	return g.generateImage(ctx, imageModel(req.Engine), contents)
}

func (g *Gemini) RecolorLogo(ctx context.Context, req domain.RecolorRequest) (*domain.GeneratedImage, error) {
	requirement := "Apply the new color palette accurately."
	if req.Instruction != "" {
		requirement = fmt.Sprintf("The user's specific color requirement is: %q.", req.Instruction)
	}
	prompt := fmt.Sprintf(`TASK: RECOLOR LOGO.
INSTRUCTION: Keep the shapes, symbols, geometry, and layout of this logo COMPLETELY identical.
MODIFICATION: Change the colors of the logo parts to match this palette: %s.
%s
The background MUST stay pure white. The output must be a clean, high-resolution vector-style image.`,
		paletteList(req.Colors), requirement)

	contents := []*genai.Content{genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(req.Image.Data, req.Image.ContentType),
		genai.NewPartFromText(prompt),
	}, genai.RoleUser)}
	return g.generateImage(ctx, imageModel(req.Engine), contents)
}

func (g *Gemini) MarketingCopy(ctx context.Context, brandName, product, tone string, engine domain.TextEngine) (*domain.MarketingCopy, error) {
	prompt := fmt.Sprintf("Brand: %q, Product: %q, Tone: %s. Write 3 slogans, 2 social captions, and 1 email.", brandName, product, tone)

	var raw struct {
		Slogans     []string `json:"slogans"`
		SocialPosts []string `json:"socialPosts"`
		Email       *string  `json:"email"`
	}
	if err := g.generateJSON(ctx, textModel(engine), prompt, copywriterInstruction, copySchema, &raw); err != nil {
		return nil, err
	}
	if raw.Slogans == nil || raw.SocialPosts == nil || raw.Email == nil {
		return nil, fmt.Errorf("%w: copy requires slogans, socialPosts and email", domain.ErrMalformedResponse)
	}
	return &domain.MarketingCopy{Slogans: raw.Slogans, SocialPosts: raw.SocialPosts, Email: *raw.Email}, nil
}

func (g *Gemini) Sentiment(ctx context.Context, text string) (*domain.SentimentResult, error) {
	prompt := fmt.Sprintf("Analyze sentiment: %q", text)

	var raw struct {
		Label     *string                    `json:"label"`
		Score     *float64                   `json:"score"`
		Breakdown *domain.SentimentBreakdown `json:"breakdown"`
	}
	if err := g.generateJSON(ctx, flashTextModel, prompt, "", sentimentSchema, &raw); err != nil {
		return nil, err
	}
	if raw.Label == nil || raw.Score == nil || raw.Breakdown == nil {
		return nil, fmt.Errorf("%w: sentiment requires label, score and breakdown", domain.ErrMalformedResponse)
	}
	label, err := parseSentimentLabel(*raw.Label)
	if err != nil {
		return nil, err
	}
	return &domain.SentimentResult{Score: *raw.Score, Label: label, Breakdown: *raw.Breakdown}, nil
}

func (g *Gemini) Chat(ctx context.Context, brief string, history []domain.ChatMessage, message string) iter.Seq2[string, error] {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == domain.ChatRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistantInstruction+brief, genai.RoleUser),
	}

	return func(yield func(string, error) bool) {
		for resp, err := range g.models.GenerateContentStream(ctx, chatModel, contents, config) {
			if err != nil {
				yield("", upstreamError("chat", err))
				return
			}
			if resp == nil {
				continue
			}
			if text := resp.Text(); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
	}
}

func (g *Gemini) generateJSON(ctx context.Context, model, prompt, instruction string, schema *genai.Schema, out any) error {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	if instruction != "" {
		config.SystemInstruction = genai.NewContentFromText(instruction, genai.RoleUser)
	}

	resp, err := g.models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return upstreamError("generate content", err)
	}
	if resp == nil {
		return fmt.Errorf("%w: empty response", domain.ErrMalformedResponse)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fmt.Errorf("%w: empty response", domain.ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

func (g *Gemini) generateImage(ctx context.Context, model string, contents []*genai.Content) (*domain.GeneratedImage, error) {
	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: "1:1"},
	}
	resp, err := g.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, upstreamError("generate image", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no image candidate", domain.ErrMalformedResponse)
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		contentType := part.InlineData.MIMEType
		if contentType == "" {
			contentType = "image/png"
		}
		return &domain.GeneratedImage{Data: part.InlineData.Data, ContentType: contentType}, nil
	}
	return nil, fmt.Errorf("%w: response contained no image", domain.ErrMalformedResponse)
}

func upstreamError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrGeneratorUnavailable, op, err)
}

func textModel(engine domain.TextEngine) string {
	if engine == domain.TextEngineGranite {
		return proTextModel
	}
	return flashTextModel
}

func imageModel(engine domain.ImageEngine) string {
	if engine == domain.ImageEngineStableDiffusion {
		return proImageModel
	}
	return flashImageModel
}

func colorDirective(colors []string) string {
	if len(colors) < domain.PaletteSize {
		return ""
	}
	return fmt.Sprintf("Strictly use these colors: Primary %s, Secondary %s, Accent %s.", colors[0], colors[1], colors[2])
}

func paletteList(colors []string) string {
	if len(colors) < domain.PaletteSize {
		return strings.Join(colors, ", ")
	}
	return fmt.Sprintf("Primary %s, Secondary %s, and Accent %s", colors[0], colors[1], colors[2])
}

func parseSentimentLabel(s string) (domain.SentimentLabel, error) {
	for _, l := range []domain.SentimentLabel{domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative} {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sentiment label %q", domain.ErrMalformedResponse, s)
}
