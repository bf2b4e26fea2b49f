package sqlite_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

func makeTestProject(id, userID string) *domain.Project {
	return &domain.Project{
		ID:          id,
		UserID:      userID,
		Name:        domain.Str("Nova"),
		Industry:    domain.Str("Tech"),
		Keywords:    domain.Str("bold, fast"),
		Description: domain.Str("A forward-thinking brand"),
		Colors:      []string{"#6366f1", "#8b5cf6", "#a1c4fd"},
		LogoURL:     domain.Str("/api/logos/abc"),
		Strategy: &domain.Strategy{
			Mission: "Move fast",
			Vision:  "Everywhere",
			Values:  []string{"speed", "trust"},
		},
	}
}

func TestProjectRepository_SaveAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := db.Projects()
	ctx := context.Background()

	p := makeTestProject("p-1", "user-1")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be set")
	}

	got, err := repo.GetByID(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.UserID != "user-1" {
		t.Fatalf("expected user-1, got %s", got.UserID)
	}
	if domain.Deref(got.Name) != "Nova" || domain.Deref(got.Industry) != "Tech" {
		t.Fatalf("unexpected content: name=%q industry=%q", domain.Deref(got.Name), domain.Deref(got.Industry))
	}
	if !slices.Equal(got.Colors, p.Colors) {
		t.Fatalf("expected colors %v, got %v", p.Colors, got.Colors)
	}
	if got.Strategy == nil || got.Strategy.Mission != "Move fast" || len(got.Strategy.Values) != 2 {
		t.Fatalf("unexpected strategy: %+v", got.Strategy)
	}
	if got.Tagline != nil || got.AestheticURL != nil {
		t.Fatal("expected absent fields to stay absent")
	}
}

func TestProjectRepository_AbsentVersusEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := db.Projects()
	ctx := context.Background()

	p := &domain.Project{ID: "p-empty", UserID: "u", Description: domain.Str(""), Colors: []string{}}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, "p-empty")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Description == nil || *got.Description != "" {
		t.Fatalf("expected empty description to be present, got %v", got.Description)
	}
	if got.Colors == nil || len(got.Colors) != 0 {
		t.Fatalf("expected empty non-nil colors, got %#v", got.Colors)
	}
	if got.Name != nil || got.Strategy != nil {
		t.Fatal("expected name and strategy to be absent")
	}
}

func TestProjectRepository_SaveUpserts(t *testing.T) {
	db := newTestDB(t)
	repo := db.Projects()
	ctx := context.Background()

	p := makeTestProject("p-1", "temp")
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	p.UserID = "user-2"
	p.Name = domain.Str("Renamed")
	p.LogoURL = nil
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := repo.GetByID(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.UserID != "user-2" || domain.Deref(got.Name) != "Renamed" {
		t.Fatalf("expected upserted owner and name, got %s %q", got.UserID, domain.Deref(got.Name))
	}
	if got.LogoURL != nil {
		t.Fatal("expected logo URL to be cleared")
	}

	var count int
	if err := db.SqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestProjectRepository_LatestByUser(t *testing.T) {
	db := newTestDB(t)
	repo := db.Projects()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := repo.Save(ctx, makeTestProject(id, "user-1")); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	if err := repo.Save(ctx, makeTestProject("other", "user-2")); err != nil {
		t.Fatalf("Save other: %v", err)
	}

	latest, err := repo.LatestByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("LatestByUser: %v", err)
	}
	if latest.ID != "c" {
		t.Fatalf("expected latest c, got %s", latest.ID)
	}

	// Re-saving an older project makes it the latest.
	if err := repo.Save(ctx, makeTestProject("a", "user-1")); err != nil {
		t.Fatalf("re-save a: %v", err)
	}
	latest, err = repo.LatestByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("LatestByUser after re-save: %v", err)
	}
	if latest.ID != "a" {
		t.Fatalf("expected latest a after re-save, got %s", latest.ID)
	}

	list, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	var ids []string
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	if !slices.Equal(ids, []string{"a", "c", "b"}) {
		t.Fatalf("expected order [a c b], got %v", ids)
	}
}

func TestProjectRepository_LatestByUser_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Projects().LatestByUser(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := db.Projects()
	ctx := context.Background()

	if err := repo.Save(ctx, makeTestProject("p-del", "user-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, "p-del"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "p-del"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "p-del"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}
