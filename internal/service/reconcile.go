package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

// SessionReconciler decides which project becomes active when a visitor
// authenticates, so that neither the in-progress draft nor the user's last
// saved project is silently discarded.
type SessionReconciler struct {
	projects domain.ProjectRepository
	newID    func() string
}

// NewSessionReconciler creates a SessionReconciler that generates UUIDs for
// drafts without an id.
func NewSessionReconciler(projects domain.ProjectRepository) *SessionReconciler {
	return &SessionReconciler{projects: projects, newID: uuid.NewString}
}

// WithIDGenerator replaces the id generator used for drafts without an id.
func (r *SessionReconciler) WithIDGenerator(newID func() string) *SessionReconciler {
	r.newID = newID
	return r
}

// Reconcile returns the project to adopt for user given the draft held by
// the client (nil when the client has none).
//
// Without a draft the user's latest saved project is returned as is and
// nothing is written. With a draft, the latest saved project is overlaid by
// every field the draft defines, owned by user and saved exactly once. The
// overlay happens even when the draft and the saved project have different
// ids, so untouched fields of an unrelated older project carry over. A draft
// id already owned by another account is ignored in favour of the saved
// project's id or a fresh one.
func (r *SessionReconciler) Reconcile(ctx context.Context, draft *domain.Project, user *domain.User) (*domain.Project, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: reconcile requires a user", domain.ErrUnauthorized)
	}

	history, err := r.projects.LatestByUser(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get latest project: %w", err)
		}
		history = nil
	}

	if draft == nil {
		return history, nil
	}

	claimed, err := r.ownedByOther(ctx, draft.ID, user.ID)
	if err != nil {
		return nil, err
	}

	merged := OverlayProject(history, draft)
	if claimed {
		// Another account owns the draft's id; never write over it.
		merged.ID = ""
		if history != nil {
			merged.ID = history.ID
		}
	}
	if merged.ID == "" {
		merged.ID = r.newID()
	}
	merged.UserID = user.ID

	if err := r.projects.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("save project: %w", err)
	}
	return merged, nil
}

// ownedByOther reports whether id names a stored project that belongs to an
// account other than userID.
func (r *SessionReconciler) ownedByOther(ctx context.Context, id, userID string) (bool, error) {
	if id == "" {
		return false, nil
	}
	existing, err := r.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get draft project: %w", err)
	}
	return existing.UserID != userID, nil
}

// OverlayProject returns a copy of base with every field defined on top
// written over it. The id falls back to base's when top has none; the owner
// is taken from top. Neither argument is modified.
func OverlayProject(base, top *domain.Project) *domain.Project {
	out := base.Clone()
	if out == nil {
		out = &domain.Project{}
	}
	t := top.Clone()
	if t == nil {
		return out
	}

	if t.ID != "" {
		out.ID = t.ID
	}
	if t.UserID != "" {
		out.UserID = t.UserID
	}
	if t.Name != nil {
		out.Name = t.Name
	}
	if t.Industry != nil {
		out.Industry = t.Industry
	}
	if t.Keywords != nil {
		out.Keywords = t.Keywords
	}
	if t.Description != nil {
		out.Description = t.Description
	}
	if t.Tagline != nil {
		out.Tagline = t.Tagline
	}
	if t.Colors != nil {
		out.Colors = t.Colors
	}
	if t.LogoURL != nil {
		out.LogoURL = t.LogoURL
	}
	if t.AestheticURL != nil {
		out.AestheticURL = t.AestheticURL
	}
	if t.Strategy != nil {
		out.Strategy = t.Strategy
	}
	return out
}
