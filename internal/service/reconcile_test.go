package service_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/service"
)

func newTestReconciler(t *testing.T) (*service.SessionReconciler, *countingProjects) {
	t.Helper()
	db := newTestDB(t)
	projects := &countingProjects{ProjectRepository: db.Projects()}
	return service.NewSessionReconciler(projects), projects
}

func testUser() *domain.User {
	return &domain.User{ID: "user-1", Email: "u@example.com", Username: "u"}
}

func seedProject(t *testing.T, projects *countingProjects, p *domain.Project) {
	t.Helper()
	if err := projects.ProjectRepository.Save(context.Background(), p); err != nil {
		t.Fatalf("seed project: %v", err)
	}
}

func TestReconcile_NoDraftWithHistory(t *testing.T) {
	rec, projects := newTestReconciler(t)
	user := testUser()
	seedProject(t, projects, &domain.Project{ID: "A", UserID: user.ID, Name: domain.Str("Nova"), Colors: []string{"#fff"}})

	got, err := rec.Reconcile(context.Background(), nil, user)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got == nil || got.ID != "A" || domain.Deref(got.Name) != "Nova" || !slices.Equal(got.Colors, []string{"#fff"}) {
		t.Fatalf("expected history unchanged, got %+v", got)
	}
	if projects.saves != 0 {
		t.Fatalf("expected 0 writes, got %d", projects.saves)
	}
}

func TestReconcile_NoDraftNoHistory(t *testing.T) {
	rec, projects := newTestReconciler(t)

	got, err := rec.Reconcile(context.Background(), nil, testUser())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no active project, got %+v", got)
	}
	if projects.saves != 0 {
		t.Fatalf("expected 0 writes, got %d", projects.saves)
	}
}

func TestReconcile_DraftWinsOnOverlap(t *testing.T) {
	rec, projects := newTestReconciler(t)
	user := testUser()
	seedProject(t, projects, &domain.Project{ID: "A", UserID: user.ID, Name: domain.Str("OldNova"), Description: domain.Str("desc")})

	draft := &domain.Project{ID: "A", UserID: domain.DraftOwnerID, Name: domain.Str("Nova"), Industry: domain.Str("Tech")}
	got, err := rec.Reconcile(context.Background(), draft, user)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if got.ID != "A" || got.UserID != user.ID {
		t.Fatalf("unexpected identity: id=%s userId=%s", got.ID, got.UserID)
	}
	if domain.Deref(got.Name) != "Nova" || domain.Deref(got.Industry) != "Tech" || domain.Deref(got.Description) != "desc" {
		t.Fatalf("unexpected merge: name=%q industry=%q description=%q",
			domain.Deref(got.Name), domain.Deref(got.Industry), domain.Deref(got.Description))
	}
	if got.Keywords != nil || got.LogoURL != nil || got.Strategy != nil {
		t.Fatal("expected fields absent from both sources to stay absent")
	}
	if projects.saves != 1 {
		t.Fatalf("expected exactly 1 write, got %d", projects.saves)
	}

	stored, err := projects.GetByID(context.Background(), "A")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if domain.Deref(stored.Name) != "Nova" || stored.UserID != user.ID {
		t.Fatalf("expected merged project persisted, got %+v", stored)
	}

	// The draft passed in is not modified.
	if draft.UserID != domain.DraftOwnerID || draft.Description != nil {
		t.Fatalf("draft was mutated: %+v", draft)
	}
}

func TestReconcile_GeneratesIDForDraftWithoutOne(t *testing.T) {
	rec, projects := newTestReconciler(t)
	user := testUser()

	got, err := rec.Reconcile(context.Background(), &domain.Project{UserID: domain.DraftOwnerID, Name: domain.Str("X")}, user)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected a generated id")
	}
	if got.UserID != user.ID {
		t.Fatalf("expected owner %s, got %s", user.ID, got.UserID)
	}
	if projects.saves != 1 {
		t.Fatalf("expected exactly 1 write, got %d", projects.saves)
	}
}

func TestReconcile_DraftWithoutIDTakesHistoryID(t *testing.T) {
	rec, projects := newTestReconciler(t)
	user := testUser()
	seedProject(t, projects, &domain.Project{ID: "A", UserID: user.ID, Name: domain.Str("Old")})

	rec.WithIDGenerator(func() string { return "generated" })
	got, err := rec.Reconcile(context.Background(), &domain.Project{Tagline: domain.Str("Go")}, user)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got.ID != "A" {
		t.Fatalf("expected history id A, got %s", got.ID)
	}
	if domain.Deref(got.Name) != "Old" || domain.Deref(got.Tagline) != "Go" {
		t.Fatalf("unexpected merge: %+v", got)
	}
}

func TestReconcile_UsesInjectedIDGenerator(t *testing.T) {
	rec, _ := newTestReconciler(t)
	rec.WithIDGenerator(func() string { return "fixed-id" })

	got, err := rec.Reconcile(context.Background(), &domain.Project{Name: domain.Str("X")}, testUser())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got.ID != "fixed-id" {
		t.Fatalf("expected fixed-id, got %s", got.ID)
	}
}

func TestReconcile_CrossProjectFieldsCarryOver(t *testing.T) {
	rec, projects := newTestReconciler(t)
	user := testUser()
	seedProject(t, projects, &domain.Project{ID: "A", UserID: user.ID, LogoURL: domain.Str("old.png")})

	got, err := rec.Reconcile(context.Background(), &domain.Project{ID: "B", Name: domain.Str("NewBrand")}, user)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got.ID != "B" || domain.Deref(got.Name) != "NewBrand" {
		t.Fatalf("unexpected project: %+v", got)
	}
	if domain.Deref(got.LogoURL) != "old.png" {
		t.Fatalf("expected logoUrl old.png to carry over, got %q", domain.Deref(got.LogoURL))
	}

	// The older project is untouched and B is now the latest.
	old, err := projects.GetByID(context.Background(), "A")
	if err != nil {
		t.Fatalf("GetByID A: %v", err)
	}
	if old.Name != nil {
		t.Fatalf("expected project A unchanged, got name %q", domain.Deref(old.Name))
	}
	latest, err := projects.LatestByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("LatestByUser: %v", err)
	}
	if latest.ID != "B" {
		t.Fatalf("expected B to be latest, got %s", latest.ID)
	}
}

func TestReconcile_NoDraftIsIdempotent(t *testing.T) {
	rec, projects := newTestReconciler(t)
	user := testUser()
	seedProject(t, projects, &domain.Project{ID: "A", UserID: user.ID, Name: domain.Str("Nova")})

	first, err := rec.Reconcile(context.Background(), nil, user)
	if err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}
	second, err := rec.Reconcile(context.Background(), nil, user)
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if first.ID != second.ID || domain.Deref(first.Name) != domain.Deref(second.Name) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if projects.saves != 0 {
		t.Fatalf("expected 0 writes in total, got %d", projects.saves)
	}
}

func TestReconcile_EmptyDraftFieldsStillWin(t *testing.T) {
	rec, projects := newTestReconciler(t)
	user := testUser()
	seedProject(t, projects, &domain.Project{ID: "A", UserID: user.ID, Description: domain.Str("desc"), Colors: []string{"#000"}})

	got, err := rec.Reconcile(context.Background(), &domain.Project{ID: "A", Description: domain.Str(""), Colors: []string{}}, user)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got.Description == nil || *got.Description != "" {
		t.Fatalf("expected empty description from draft, got %v", got.Description)
	}
	if got.Colors == nil || len(got.Colors) != 0 {
		t.Fatalf("expected empty colors from draft, got %v", got.Colors)
	}
}

func TestReconcile_DraftIDOwnedByAnotherUser(t *testing.T) {
	rec, projects := newTestReconciler(t)
	seedProject(t, projects, &domain.Project{ID: "P1", UserID: "victim", Name: domain.Str("Original"), Colors: []string{"#123456"}})
	rec.WithIDGenerator(func() string { return "fresh" })

	guest := domain.GuestUser()
	got, err := rec.Reconcile(context.Background(), &domain.Project{ID: "P1", Name: domain.Str("Pwned")}, guest)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got.ID != "fresh" || got.UserID != guest.ID || domain.Deref(got.Name) != "Pwned" {
		t.Fatalf("expected a new guest project, got %+v", got)
	}

	victim, err := projects.GetByID(context.Background(), "P1")
	if err != nil {
		t.Fatalf("GetByID P1: %v", err)
	}
	if victim.UserID != "victim" || domain.Deref(victim.Name) != "Original" || !slices.Equal(victim.Colors, []string{"#123456"}) {
		t.Fatalf("expected victim project untouched, got %+v", victim)
	}
}

func TestReconcile_DraftIDOwnedByAnotherUserFallsBackToHistory(t *testing.T) {
	rec, projects := newTestReconciler(t)
	user := testUser()
	seedProject(t, projects, &domain.Project{ID: "P1", UserID: "victim", Name: domain.Str("Original")})
	seedProject(t, projects, &domain.Project{ID: "A", UserID: user.ID, Tagline: domain.Str("Mine")})

	got, err := rec.Reconcile(context.Background(), &domain.Project{ID: "P1", Name: domain.Str("Pwned")}, user)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if got.ID != "A" || got.UserID != user.ID || domain.Deref(got.Tagline) != "Mine" {
		t.Fatalf("expected merge into own project A, got %+v", got)
	}
	if projects.saves != 1 {
		t.Fatalf("expected exactly 1 write, got %d", projects.saves)
	}
}

type failingProjects struct {
	domain.ProjectRepository
	latestErr error
	saveErr   error
}

func (f *failingProjects) GetByID(context.Context, string) (*domain.Project, error) {
	return nil, domain.ErrNotFound
}

func (f *failingProjects) LatestByUser(context.Context, string) (*domain.Project, error) {
	return nil, f.latestErr
}

func (f *failingProjects) Save(context.Context, *domain.Project) error {
	return f.saveErr
}

func TestReconcile_StorageErrorsSurface(t *testing.T) {
	storageErr := errors.New("storage unavailable")

	rec := service.NewSessionReconciler(&failingProjects{latestErr: storageErr})
	if _, err := rec.Reconcile(context.Background(), nil, testUser()); !errors.Is(err, storageErr) {
		t.Fatalf("lookup: expected storage error, got %v", err)
	}

	rec = service.NewSessionReconciler(&failingProjects{latestErr: domain.ErrNotFound, saveErr: storageErr})
	if _, err := rec.Reconcile(context.Background(), &domain.Project{ID: "A"}, testUser()); !errors.Is(err, storageErr) {
		t.Fatalf("save: expected storage error, got %v", err)
	}
}

func TestOverlayProject_DoesNotAliasInputs(t *testing.T) {
	base := &domain.Project{ID: "A", Colors: []string{"#111"}}
	top := &domain.Project{Strategy: &domain.Strategy{Values: []string{"v"}}}

	out := service.OverlayProject(base, top)
	out.Colors[0] = "#999"
	out.Strategy.Values[0] = "changed"

	if base.Colors[0] != "#111" || top.Strategy.Values[0] != "v" {
		t.Fatal("expected overlay result to be independent of its inputs")
	}
}
