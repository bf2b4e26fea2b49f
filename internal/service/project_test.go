package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/service"
)

func newTestProjectService(t *testing.T) (*service.ProjectService, *countingProjects) {
	t.Helper()
	db := newTestDB(t)
	projects := &countingProjects{ProjectRepository: db.Projects()}
	return service.NewProjectService(projects, nil), projects
}

func TestProjectService_Update_WithoutUser(t *testing.T) {
	svc, projects := newTestProjectService(t)

	got, persisted, err := svc.Update(context.Background(), nil, &domain.Project{Name: domain.Str("Nova")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if persisted {
		t.Fatal("expected no persistence without a user")
	}
	if got.ID == "" || got.UserID != domain.DraftOwnerID {
		t.Fatalf("expected draft with generated id, got id=%q userId=%q", got.ID, got.UserID)
	}
	if projects.saves != 0 {
		t.Fatalf("expected 0 writes, got %d", projects.saves)
	}
}

func TestProjectService_Update_WithUser(t *testing.T) {
	svc, projects := newTestProjectService(t)
	user := testUser()

	got, persisted, err := svc.Update(context.Background(), user, &domain.Project{ID: "A", UserID: domain.DraftOwnerID, Colors: []string{"#000"}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !persisted || projects.saves != 1 {
		t.Fatalf("expected one write, persisted=%v saves=%d", persisted, projects.saves)
	}
	if got.UserID != user.ID {
		t.Fatalf("expected owner %s, got %s", user.ID, got.UserID)
	}

	current, err := svc.Current(context.Background(), user)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current == nil || current.ID != "A" {
		t.Fatalf("expected A to be current, got %+v", current)
	}
}

func TestProjectService_Update_OtherUsersProject(t *testing.T) {
	svc, projects := newTestProjectService(t)
	seedProject(t, projects, &domain.Project{ID: "A", UserID: "someone-else"})

	_, _, err := svc.Update(context.Background(), testUser(), &domain.Project{ID: "A", Name: domain.Str("Mine")})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if projects.saves != 0 {
		t.Fatalf("expected 0 writes, got %d", projects.saves)
	}
}

func TestProjectService_Current_None(t *testing.T) {
	svc, _ := newTestProjectService(t)

	got, err := svc.Current(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestProjectService_StartDraft(t *testing.T) {
	svc, projects := newTestProjectService(t)

	draft, err := svc.StartDraft(nil, nil, "Tech", "bold, fast")
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if draft.ID == "" || draft.UserID != domain.DraftOwnerID {
		t.Fatalf("unexpected identity: %+v", draft)
	}
	if want := "Brand in Tech characterized by bold, fast."; domain.Deref(draft.Description) != want {
		t.Fatalf("expected description %q, got %q", want, domain.Deref(draft.Description))
	}
	if draft.Name != nil {
		t.Fatal("expected no name")
	}

	current := &domain.Project{ID: "A", Name: domain.Str("Nova"), Description: domain.Str("Existing")}
	draft, err = svc.StartDraft(current, nil, "Food", "fresh")
	if err != nil {
		t.Fatalf("StartDraft with current: %v", err)
	}
	if draft.ID != "A" || domain.Deref(draft.Name) != "Nova" || domain.Deref(draft.Description) != "Existing" {
		t.Fatalf("expected current id, name and description to carry, got %+v", draft)
	}
	if projects.saves != 0 {
		t.Fatalf("expected 0 writes, got %d", projects.saves)
	}

	if _, err := svc.StartDraft(nil, nil, "Tech", " "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectService_SelectIdentity_WithoutUser(t *testing.T) {
	svc, projects := newTestProjectService(t)

	current := &domain.Project{ID: "A", LogoURL: domain.Str("/api/logos/x")}
	got, authRequired, err := svc.SelectIdentity(context.Background(), nil, current, "Nova", "Tech", "bold")
	if err != nil {
		t.Fatalf("SelectIdentity: %v", err)
	}
	if !authRequired {
		t.Fatal("expected authRequired")
	}
	if got.ID != "A" || got.UserID != domain.DraftOwnerID || domain.Deref(got.Name) != "Nova" {
		t.Fatalf("unexpected draft: %+v", got)
	}
	if want := "Brand in Tech characterized by bold."; domain.Deref(got.Description) != want {
		t.Fatalf("expected %q, got %q", want, domain.Deref(got.Description))
	}
	if got.LogoURL != nil {
		t.Fatal("expected draft selection to drop the logo")
	}
	if projects.saves != 0 {
		t.Fatalf("expected 0 writes, got %d", projects.saves)
	}
}

func TestProjectService_SelectIdentity_WithUser(t *testing.T) {
	svc, projects := newTestProjectService(t)
	user := testUser()

	current := &domain.Project{
		ID:       "A",
		UserID:   user.ID,
		LogoURL:  domain.Str("/api/logos/x"),
		Strategy: &domain.Strategy{Mission: "m"},
		Colors:   []string{"#123456"},
	}
	got, authRequired, err := svc.SelectIdentity(context.Background(), user, current, "Nova", "Tech", "bold")
	if err != nil {
		t.Fatalf("SelectIdentity: %v", err)
	}
	if authRequired {
		t.Fatal("expected no auth requirement")
	}
	if want := "A forward-thinking brand in the Tech space, characterized by bold."; domain.Deref(got.Description) != want {
		t.Fatalf("expected %q, got %q", want, domain.Deref(got.Description))
	}
	if domain.Deref(got.LogoURL) != "/api/logos/x" || got.Strategy == nil || got.Strategy.Mission != "m" {
		t.Fatalf("expected logo and strategy to carry over, got %+v", got)
	}
	if got.Colors != nil {
		t.Fatalf("expected colors not to carry over, got %v", got.Colors)
	}
	if projects.saves != 1 {
		t.Fatalf("expected 1 write, got %d", projects.saves)
	}

	if _, _, err := svc.SelectIdentity(context.Background(), user, current, "  ", "Tech", "bold"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
}

func TestProjectService_ListAndDelete(t *testing.T) {
	svc, projects := newTestProjectService(t)
	user := testUser()
	ctx := context.Background()

	seedProject(t, projects, &domain.Project{ID: "A", UserID: user.ID})
	seedProject(t, projects, &domain.Project{ID: "B", UserID: user.ID})
	seedProject(t, projects, &domain.Project{ID: "C", UserID: "other"})

	list, err := svc.List(ctx, user)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "B" {
		t.Fatalf("expected [B A], got %+v", list)
	}

	if err := svc.Delete(ctx, user, "C"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized deleting another user's project, got %v", err)
	}
	if err := svc.Delete(ctx, user, "A"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, user, "A"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectService_DeleteReleasesLogo(t *testing.T) {
	db := newTestDB(t)
	logos := service.NewLogoService(db.Logos())
	projects := &countingProjects{ProjectRepository: db.Projects()}
	svc := service.NewProjectService(projects, logos)
	user := testUser()
	ctx := context.Background()

	shared, err := logos.Store(ctx, user.ID, &domain.GeneratedImage{Data: pngBytes, ContentType: "image/png"})
	if err != nil {
		t.Fatalf("Store shared: %v", err)
	}
	own, err := logos.Store(ctx, user.ID, &domain.GeneratedImage{Data: pngBytes, ContentType: "image/png"})
	if err != nil {
		t.Fatalf("Store own: %v", err)
	}
	seedProject(t, projects, &domain.Project{ID: "A", UserID: user.ID, LogoURL: domain.Str(shared.URL())})
	seedProject(t, projects, &domain.Project{ID: "B", UserID: user.ID, LogoURL: domain.Str(shared.URL())})
	seedProject(t, projects, &domain.Project{ID: "C", UserID: user.ID, LogoURL: domain.Str(own.URL())})

	if err := svc.Delete(ctx, user, "C"); err != nil {
		t.Fatalf("Delete C: %v", err)
	}
	if _, err := logos.Get(ctx, user.ID, own.StorageKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected logo of C to be removed, got %v", err)
	}

	if err := svc.Delete(ctx, user, "A"); err != nil {
		t.Fatalf("Delete A: %v", err)
	}
	if _, err := logos.Get(ctx, user.ID, shared.StorageKey); err != nil {
		t.Fatalf("expected logo still used by B to remain, got %v", err)
	}

	if err := svc.Delete(ctx, user, "B"); err != nil {
		t.Fatalf("Delete B: %v", err)
	}
	if _, err := logos.Get(ctx, user.ID, shared.StorageKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected shared logo removed with its last project, got %v", err)
	}
}
