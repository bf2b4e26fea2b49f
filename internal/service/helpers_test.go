package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/repository/sqlite"
	"github.com/brandcraft-ai/brandcraft/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests-0123456789"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), db.Sessions(), testJWTSecret, 4, time.Hour)
	return auth, db
}

func registerUser(t *testing.T, auth *service.AuthService, email string) *domain.User {
	t.Helper()
	user, err := auth.Register(context.Background(), email, "User "+email, "password123")
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return user
}

// countingProjects wraps a ProjectRepository and counts writes.
type countingProjects struct {
	domain.ProjectRepository
	saves int
}

func (c *countingProjects) Save(ctx context.Context, p *domain.Project) error {
	c.saves++
	return c.ProjectRepository.Save(ctx, p)
}
