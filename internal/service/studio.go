package service

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

const (
	namesPerRequest   = 10
	maxChatHistory    = 20
	maxSentimentInput = 5000
	defaultTone       = "Professional"
)

// StudioService runs the generation steps of the brand studio and folds
// their results into the current project.
type StudioService struct {
	gen      domain.BrandGenerator
	projects *ProjectService
	logos    *LogoService
	limiter  *TokenBucket
}

// NewStudioService creates a new StudioService. gen may be nil, in which case
// every generation fails with domain.ErrGeneratorUnavailable.
func NewStudioService(gen domain.BrandGenerator, projects *ProjectService, logos *LogoService, limiter *TokenBucket) *StudioService {
	return &StudioService{gen: gen, projects: projects, logos: logos, limiter: limiter}
}

// Enabled reports whether a generator is configured.
func (s *StudioService) Enabled() bool {
	return s.gen != nil
}

// LogoOptions configures a new logo.
type LogoOptions struct {
	Preset string
	Style  string
	Colors []string
	Engine string
}

// GenerateNames suggests brand names for an industry and keywords.
func (s *StudioService) GenerateNames(ctx context.Context, user *domain.User, industry, keywords, engine string) ([]domain.NameSuggestion, error) {
	industry, keywords, err := requireIdentityInput(industry, keywords)
	if err != nil {
		return nil, err
	}
	eng, err := domain.ParseTextEngine(engine)
	if err != nil {
		return nil, err
	}
	if err := s.begin(user); err != nil {
		return nil, err
	}

	names, err := s.gen.BrandNames(ctx, industry, keywords, eng)
	if err != nil {
		return nil, fmt.Errorf("generate names: %w", err)
	}
	if len(names) > namesPerRequest {
		names = names[:namesPerRequest]
	}
	return names, nil
}

// GenerateStrategy creates a mission, vision and values for the project and
// saves them on it.
func (s *StudioService) GenerateStrategy(ctx context.Context, user *domain.User, project *domain.Project, engine string) (*domain.Project, error) {
	if err := requireNamedProject(project); err != nil {
		return nil, err
	}
	eng, err := domain.ParseTextEngine(engine)
	if err != nil {
		return nil, err
	}
	if err := s.begin(user); err != nil {
		return nil, err
	}

	strategy, err := s.gen.Strategy(ctx, *project.Name, domain.Deref(project.Industry), domain.Deref(project.Description), eng)
	if err != nil {
		return nil, fmt.Errorf("generate strategy: %w", err)
	}

	updated := project.Clone()
	updated.Strategy = strategy
	return s.save(ctx, user, updated)
}

// GenerateLogo draws a new logo for the project, stores it and points the
// project at it together with the palette used.
func (s *StudioService) GenerateLogo(ctx context.Context, user *domain.User, project *domain.Project, opts LogoOptions) (*domain.Project, error) {
	if err := requireNamedProject(project); err != nil {
		return nil, err
	}
	preset, err := domain.LookupStylePreset(opts.Preset)
	if err != nil {
		return nil, err
	}
	colors, err := paletteFor(project, opts.Colors)
	if err != nil {
		return nil, err
	}
	eng, err := domain.ParseImageEngine(opts.Engine)
	if err != nil {
		return nil, err
	}
	if err := s.begin(user); err != nil {
		return nil, err
	}

	style := preset.Prompt
	if extra := strings.TrimSpace(opts.Style); extra != "" {
		style += ". " + extra
	}
	img, err := s.gen.Logo(ctx, domain.LogoRequest{
		BrandName: *project.Name,
		Industry:  domain.Deref(project.Industry),
		Style:     style,
		Colors:    colors,
		Engine:    eng,
	})
	if err != nil {
		return nil, fmt.Errorf("generate logo: %w", err)
	}
	return s.attachLogo(ctx, user, project, img, colors)
}

// RefineLogo recolours the project's current logo with a new palette,
// keeping its shapes.
func (s *StudioService) RefineLogo(ctx context.Context, user *domain.User, project *domain.Project, colors []string, instruction, engine string) (*domain.Project, error) {
	if project == nil || domain.Deref(project.LogoURL) == "" {
		return nil, fmt.Errorf("%w: project has no logo to refine", domain.ErrInvalidInput)
	}
	palette, err := paletteFor(project, colors)
	if err != nil {
		return nil, err
	}
	eng, err := domain.ParseImageEngine(engine)
	if err != nil {
		return nil, err
	}
	if err := s.begin(user); err != nil {
		return nil, err
	}

	current, err := s.logos.GetByURL(ctx, user.ID, *project.LogoURL)
	if err != nil {
		return nil, err
	}
	img, err := s.gen.RecolorLogo(ctx, domain.RecolorRequest{
		Image:       *current,
		Colors:      palette,
		Instruction: strings.TrimSpace(instruction),
		Engine:      eng,
	})
	if err != nil {
		return nil, fmt.Errorf("recolor logo: %w", err)
	}
	return s.attachLogo(ctx, user, project, img, palette)
}

// UpdateColors saves an edited palette on the project.
func (s *StudioService) UpdateColors(ctx context.Context, user *domain.User, project *domain.Project, colors []string) (*domain.Project, error) {
	if project == nil {
		return nil, fmt.Errorf("%w: project is required", domain.ErrInvalidInput)
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: colors are required", domain.ErrInvalidInput)
	}
	palette, err := domain.NormalizePalette(colors)
	if err != nil {
		return nil, err
	}

	updated := project.Clone()
	updated.Colors = palette
	return s.save(ctx, user, updated)
}

// MarketingCopy writes slogans, social posts and an email for a product.
func (s *StudioService) MarketingCopy(ctx context.Context, user *domain.User, brandName, product, tone, engine string) (*domain.MarketingCopy, error) {
	brandName = strings.TrimSpace(brandName)
	product = strings.TrimSpace(product)
	if brandName == "" || product == "" {
		return nil, fmt.Errorf("%w: brand name and product are required", domain.ErrInvalidInput)
	}
	tone = strings.TrimSpace(tone)
	if tone == "" {
		tone = defaultTone
	}
	eng, err := domain.ParseTextEngine(engine)
	if err != nil {
		return nil, err
	}
	if err := s.begin(user); err != nil {
		return nil, err
	}

	mc, err := s.gen.MarketingCopy(ctx, brandName, product, tone, eng)
	if err != nil {
		return nil, fmt.Errorf("generate copy: %w", err)
	}
	return mc, nil
}

// AnalyzeSentiment scores customer feedback.
func (s *StudioService) AnalyzeSentiment(ctx context.Context, user *domain.User, text string) (*domain.SentimentResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}
	if len(text) > maxSentimentInput {
		return nil, fmt.Errorf("%w: text exceeds %d characters", domain.ErrInvalidInput, maxSentimentInput)
	}
	if err := s.begin(user); err != nil {
		return nil, err
	}

	result, err := s.gen.Sentiment(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyze sentiment: %w", err)
	}
	return result, nil
}

// Chat streams the assistant's reply to message. The project, which may be
// nil, is given to the assistant as context. Only the most recent history
// messages are sent.
func (s *StudioService) Chat(ctx context.Context, user *domain.User, project *domain.Project, history []domain.ChatMessage, message string) (iter.Seq2[string, error], error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	for _, m := range history {
		if m.Role != domain.ChatRoleUser && m.Role != domain.ChatRoleAssistant {
			return nil, fmt.Errorf("%w: unknown chat role %q", domain.ErrInvalidInput, m.Role)
		}
	}
	if err := s.begin(user); err != nil {
		return nil, err
	}

	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	return s.gen.Chat(ctx, RenderBrief(project), history, message), nil
}

func (s *StudioService) begin(user *domain.User) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	if s.gen == nil {
		return domain.ErrGeneratorUnavailable
	}
	if s.limiter != nil && !s.limiter.Allow(user.ID) {
		return domain.ErrRateLimited
	}
	return nil
}

func (s *StudioService) attachLogo(ctx context.Context, user *domain.User, project *domain.Project, img *domain.GeneratedImage, colors []string) (*domain.Project, error) {
	logo, err := s.logos.Store(ctx, user.ID, img)
	if err != nil {
		return nil, fmt.Errorf("store logo: %w", err)
	}

	updated := project.Clone()
	updated.LogoURL = domain.Str(logo.URL())
	updated.Colors = colors
	return s.save(ctx, user, updated)
}

func (s *StudioService) save(ctx context.Context, user *domain.User, project *domain.Project) (*domain.Project, error) {
	saved, _, err := s.projects.Update(ctx, user, project)
	return saved, err
}

func requireNamedProject(project *domain.Project) error {
	if project == nil || domain.Deref(project.Name) == "" {
		return fmt.Errorf("%w: select a brand name first", domain.ErrInvalidInput)
	}
	return nil
}

// paletteFor returns the requested palette, falling back to the project's
// colours and then the default palette.
func paletteFor(project *domain.Project, colors []string) ([]string, error) {
	if len(colors) == 0 && project != nil {
		colors = project.Colors
	}
	return domain.NormalizePalette(colors)
}
