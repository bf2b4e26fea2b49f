package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"iter"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/handler"
	"github.com/brandcraft-ai/brandcraft/internal/repository/sqlite"
	"github.com/brandcraft-ai/brandcraft/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testServices struct {
	db         *sqlite.DB
	auth       *service.AuthService
	reconciler *service.SessionReconciler
	projects   *service.ProjectService
	logos      *service.LogoService
	studio     *service.StudioService
}

// newTestServices wires the services over a fresh database. gen may be nil.
func newTestServices(t *testing.T, gen domain.BrandGenerator) *testServices {
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

	logos := service.NewLogoService(db.Logos())
	projects := service.NewProjectService(db.Projects(), logos)
	limiter := service.NewTokenBucket(0, 100)
	t.Cleanup(limiter.Close)

	return &testServices{
		db:         db,
		auth:       service.NewAuthService(db.Users(), db.Sessions(), testJWTSecret, 4, time.Hour),
		reconciler: service.NewSessionReconciler(db.Projects()),
		projects:   projects,
		logos:      logos,
		studio:     service.NewStudioService(gen, projects, logos, limiter),
	}
}

func newTestServer(t *testing.T, svc *testServices) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, svc.auth, svc.reconciler, svc.projects, svc.studio, svc.logos, false)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// doJSON sends body as JSON and decodes a JSON response into out when out
// is non-nil.
func doJSON(t *testing.T, client *http.Client, method, url string, body, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp
}

type sessionResponse struct {
	User    handler.UserDTO     `json:"user"`
	Project *handler.ProjectDTO `json:"project"`
}

// fakeGenerator returns canned brand material.
type fakeGenerator struct {
	chatChunks []string
	chatErr    error
	lastBrief  string
}

func (f *fakeGenerator) BrandNames(ctx context.Context, industry, keywords string, engine domain.TextEngine) ([]domain.NameSuggestion, error) {
	return []domain.NameSuggestion{{Name: "Lumina", Meaning: "Light for " + industry}}, nil
}

func (f *fakeGenerator) Strategy(ctx context.Context, brandName, industry, description string, engine domain.TextEngine) (*domain.Strategy, error) {
	return &domain.Strategy{Mission: "Serve " + brandName, Vision: "Lead", Values: []string{"Trust"}}, nil
}

func (f *fakeGenerator) Logo(ctx context.Context, req domain.LogoRequest) (*domain.GeneratedImage, error) {
	return &domain.GeneratedImage{Data: []byte("\x89PNG logo"), ContentType: "image/png"}, nil
}

func (f *fakeGenerator) RecolorLogo(ctx context.Context, req domain.RecolorRequest) (*domain.GeneratedImage, error) {
	return &domain.GeneratedImage{Data: []byte("\x89PNG recolored"), ContentType: "image/png"}, nil
}

func (f *fakeGenerator) MarketingCopy(ctx context.Context, brandName, product, tone string, engine domain.TextEngine) (*domain.MarketingCopy, error) {
	return &domain.MarketingCopy{Slogans: []string{"a", "b", "c"}, SocialPosts: []string{"x", "y"}, Email: tone}, nil
}

func (f *fakeGenerator) Sentiment(ctx context.Context, text string) (*domain.SentimentResult, error) {
	return &domain.SentimentResult{Score: 0.9, Label: domain.SentimentPositive}, nil
}

func (f *fakeGenerator) Chat(ctx context.Context, brief string, history []domain.ChatMessage, message string) iter.Seq2[string, error] {
	f.lastBrief = brief
	return func(yield func(string, error) bool) {
		for _, c := range f.chatChunks {
			if !yield(c, nil) {
				return
			}
		}
		if f.chatErr != nil {
			yield("", f.chatErr)
		}
	}
}
