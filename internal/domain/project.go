package domain

import (
	"context"
	"slices"
	"time"
)

// Project is a brand project. Content fields are optional: a nil pointer (or
// nil Colors slice) means the field is absent, which is distinct from an
// empty value when projects are merged.
type Project struct {
	ID           string
	UserID       string
	Name         *string
	Industry     *string
	Keywords     *string
	Description  *string
	Tagline      *string
	Colors       []string
	LogoURL      *string
	AestheticURL *string
	Strategy     *Strategy
	UpdatedAt    time.Time
}

// Strategy is the mission, vision and values generated for a brand.
type Strategy struct {
	Mission string   `json:"mission"`
	Vision  string   `json:"vision"`
	Values  []string `json:"values"`
}

// Clone returns a deep copy of p.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Name = cloneString(p.Name)
	c.Industry = cloneString(p.Industry)
	c.Keywords = cloneString(p.Keywords)
	c.Description = cloneString(p.Description)
	c.Tagline = cloneString(p.Tagline)
	c.LogoURL = cloneString(p.LogoURL)
	c.AestheticURL = cloneString(p.AestheticURL)
	c.Colors = slices.Clone(p.Colors)
	if p.Strategy != nil {
		s := *p.Strategy
		s.Values = slices.Clone(p.Strategy.Values)
		c.Strategy = &s
	}
	return &c
}

// Str returns a pointer to s, for populating optional project fields.
func Str(s string) *string {
	return &s
}

// Deref returns the value of an optional field, or "" when absent.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	// Save inserts or replaces the project with the same ID and marks it as
	// the most recently saved project.
	Save(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	// LatestByUser returns the user's most recently saved project, or
	// ErrNotFound.
	LatestByUser(ctx context.Context, userID string) (*Project, error)
	ListByUser(ctx context.Context, userID string) ([]Project, error)
	Delete(ctx context.Context, id string) error
}
