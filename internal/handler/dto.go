package handler

import (
	"slices"
	"time"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}

// StrategyDTO is the JSON representation of a brand strategy.
type StrategyDTO struct {
	Mission string   `json:"mission"`
	Vision  string   `json:"vision"`
	Values  []string `json:"values"`
}

// ProjectDTO is the JSON representation of a project. Absent fields are
// omitted; an empty colors list is kept so it stays distinct from absent.
type ProjectDTO struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	Name         *string      `json:"name,omitempty"`
	Industry     *string      `json:"industry,omitempty"`
	Keywords     *string      `json:"keywords,omitempty"`
	Description  *string      `json:"description,omitempty"`
	Tagline      *string      `json:"tagline,omitempty"`
	Colors       []string     `json:"colors,omitzero"`
	LogoURL      *string      `json:"logoUrl,omitempty"`
	AestheticURL *string      `json:"aestheticUrl,omitempty"`
	Strategy     *StrategyDTO `json:"strategy,omitempty"`
	UpdatedAt    string       `json:"updatedAt,omitempty"`
}

// toProjectDTO converts a project, returning nil for a nil project so the
// response carries "project": null.
func toProjectDTO(p *domain.Project) *ProjectDTO {
	if p == nil {
		return nil
	}
	c := p.Clone()
	dto := &ProjectDTO{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		Industry:     c.Industry,
		Keywords:     c.Keywords,
		Description:  c.Description,
		Tagline:      c.Tagline,
		Colors:       c.Colors,
		LogoURL:      c.LogoURL,
		AestheticURL: c.AestheticURL,
	}
	if c.Strategy != nil {
		dto.Strategy = &StrategyDTO{Mission: c.Strategy.Mission, Vision: c.Strategy.Vision, Values: c.Strategy.Values}
	}
	if !c.UpdatedAt.IsZero() {
		dto.UpdatedAt = c.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

func toProjectDTOs(projects []domain.Project) []*ProjectDTO {
	dtos := make([]*ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = toProjectDTO(&projects[i])
	}
	return dtos
}

// fromProjectDTO converts a client project. The owner is left to the
// services, which decide it from the session.
func fromProjectDTO(dto *ProjectDTO) *domain.Project {
	if dto == nil {
		return nil
	}
	p := &domain.Project{
		ID:           dto.ID,
		UserID:       dto.UserID,
		Name:         dto.Name,
		Industry:     dto.Industry,
		Keywords:     dto.Keywords,
		Description:  dto.Description,
		Tagline:      dto.Tagline,
		Colors:       dto.Colors,
		LogoURL:      dto.LogoURL,
		AestheticURL: dto.AestheticURL,
	}
	if dto.Strategy != nil {
		p.Strategy = &domain.Strategy{
			Mission: dto.Strategy.Mission,
			Vision:  dto.Strategy.Vision,
			Values:  slices.Clone(dto.Strategy.Values),
		}
	}
	return p.Clone()
}

// StylePresetDTO is the JSON representation of a logo style preset.
type StylePresetDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MoodPresetDTO is the JSON representation of a recolouring preset.
type MoodPresetDTO struct {
	Label       string `json:"label"`
	Instruction string `json:"instruction"`
}
