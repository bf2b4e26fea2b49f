package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

// ProjectService applies the "update the current project, persist if
// authenticated" rule shared by every project mutation.
type ProjectService struct {
	projects domain.ProjectRepository
	logos    *LogoService
	newID    func() string
}

// NewProjectService creates a new ProjectService. logos may be nil, in which
// case deleted projects leave their stored logos behind.
func NewProjectService(projects domain.ProjectRepository, logos *LogoService) *ProjectService {
	return &ProjectService{projects: projects, logos: logos, newID: uuid.NewString}
}

// Update makes project the current project. Without a user it is returned as
// a scratchpad draft and nothing is stored. With a user it is owned by the
// user and saved. persisted reports whether a write happened.
func (s *ProjectService) Update(ctx context.Context, user *domain.User, project *domain.Project) (updated *domain.Project, persisted bool, err error) {
	if project == nil {
		return nil, false, fmt.Errorf("%w: project is required", domain.ErrInvalidInput)
	}
	p := project.Clone()
	if p.ID == "" {
		p.ID = s.newID()
	}
	if user == nil {
		if p.UserID == "" {
			p.UserID = domain.DraftOwnerID
		}
		return p, false, nil
	}

	existing, err := s.projects.GetByID(ctx, p.ID)
	switch {
	case err == nil:
		if existing.UserID != user.ID {
			return nil, false, domain.ErrUnauthorized
		}
	case !errors.Is(err, domain.ErrNotFound):
		return nil, false, fmt.Errorf("get project: %w", err)
	}

	p.UserID = user.ID
	if err := s.projects.Save(ctx, p); err != nil {
		return nil, false, fmt.Errorf("save project: %w", err)
	}
	return p, true, nil
}

// Current returns the user's most recently saved project, or nil.
func (s *ProjectService) Current(ctx context.Context, user *domain.User) (*domain.Project, error) {
	p, err := s.projects.LatestByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest project: %w", err)
	}
	return p, nil
}

// StartDraft records the industry and keywords a visitor typed before
// signing in. name overrides the current project's name when set.
func (s *ProjectService) StartDraft(current *domain.Project, name *string, industry, keywords string) (*domain.Project, error) {
	industry, keywords, err := requireIdentityInput(industry, keywords)
	if err != nil {
		return nil, err
	}

	draft := &domain.Project{
		ID:       s.idOrNew(current),
		UserID:   domain.DraftOwnerID,
		Industry: domain.Str(industry),
		Keywords: domain.Str(keywords),
	}
	if name != nil {
		draft.Name = domain.Str(*name)
	} else if current != nil && current.Name != nil {
		draft.Name = domain.Str(*current.Name)
	}
	if current != nil && domain.Deref(current.Description) != "" {
		draft.Description = domain.Str(*current.Description)
	} else {
		draft.Description = domain.Str(draftDescription(industry, keywords))
	}
	return draft, nil
}

// SelectIdentity finalises the brand name. Without a user the choice is kept
// as a draft and authRequired is true. With a user the project keeps its
// logo and strategy, gets a fresh description and is saved.
func (s *ProjectService) SelectIdentity(ctx context.Context, user *domain.User, current *domain.Project, name, industry, keywords string) (project *domain.Project, authRequired bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	if user == nil {
		return &domain.Project{
			ID:          s.idOrNew(current),
			UserID:      domain.DraftOwnerID,
			Name:        domain.Str(name),
			Industry:    domain.Str(industry),
			Keywords:    domain.Str(keywords),
			Description: domain.Str(draftDescription(industry, keywords)),
		}, true, nil
	}

	p := &domain.Project{
		ID:          s.idOrNew(current),
		UserID:      user.ID,
		Name:        domain.Str(name),
		Industry:    domain.Str(industry),
		Keywords:    domain.Str(keywords),
		Description: domain.Str(identityDescription(industry, keywords)),
	}
	if current != nil {
		c := current.Clone()
		p.LogoURL = c.LogoURL
		p.Strategy = c.Strategy
	}

	saved, _, err := s.Update(ctx, user, p)
	if err != nil {
		return nil, false, err
	}
	return saved, false, nil
}

// List returns the user's saved projects, most recently saved first.
func (s *ProjectService) List(ctx context.Context, user *domain.User) ([]domain.Project, error) {
	projects, err := s.projects.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Delete removes one of the user's projects together with its stored logo,
// unless another of the user's projects still shows that logo.
func (s *ProjectService) Delete(ctx context.Context, user *domain.User, id string) error {
	existing, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != user.ID {
		return domain.ErrUnauthorized
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	if s.logos == nil || existing.LogoURL == nil {
		return nil
	}
	remaining, err := s.projects.ListByUser(ctx, user.ID)
	if err == nil {
		err = s.logos.Release(ctx, user.ID, *existing.LogoURL, remaining)
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to release logo of deleted project", "project_id", id, "error", err)
	}
	return nil
}

func (s *ProjectService) idOrNew(current *domain.Project) string {
	if current != nil && current.ID != "" {
		return current.ID
	}
	return s.newID()
}

func requireIdentityInput(industry, keywords string) (string, string, error) {
	industry = strings.TrimSpace(industry)
	keywords = strings.TrimSpace(keywords)
	if industry == "" || keywords == "" {
		return "", "", fmt.Errorf("%w: industry and keywords are required", domain.ErrInvalidInput)
	}
	return industry, keywords, nil
}

func draftDescription(industry, keywords string) string {
	return fmt.Sprintf("Brand in %s characterized by %s.", industry, keywords)
}

func identityDescription(industry, keywords string) string {
	return fmt.Sprintf("A forward-thinking brand in the %s space, characterized by %s.", industry, keywords)
}
