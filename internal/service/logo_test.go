package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
	"github.com/brandcraft-ai/brandcraft/internal/service"
)

func newTestLogoService(t *testing.T) *service.LogoService {
	t.Helper()
	db := newTestDB(t)
	return service.NewLogoService(db.Logos())
}

func TestLogoService_StoreAndGet(t *testing.T) {
	svc := newTestLogoService(t)
	ctx := context.Background()

	logo, err := svc.Store(ctx, "user-1", &domain.GeneratedImage{Data: pngBytes, ContentType: "image/png"})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if logo.Size != int64(len(pngBytes)) {
		t.Fatalf("expected size %d, got %d", len(pngBytes), logo.Size)
	}

	img, err := svc.GetByURL(ctx, "user-1", logo.URL())
	if err != nil {
		t.Fatalf("GetByURL: %v", err)
	}
	if img.ContentType != "image/png" {
		t.Fatalf("expected image/png, got %s", img.ContentType)
	}

	if _, err := svc.Get(ctx, "user-2", logo.StorageKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user, got %v", err)
	}
}

func TestLogoService_Store_Invalid(t *testing.T) {
	svc := newTestLogoService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		image *domain.GeneratedImage
	}{
		{"nil", nil},
		{"empty", &domain.GeneratedImage{ContentType: "image/png"}},
		{"unsupported type", &domain.GeneratedImage{Data: []byte("x"), ContentType: "text/html"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Store(ctx, "user-1", tc.image); !errors.Is(err, domain.ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestLogoService_GetByURL_NotALogo(t *testing.T) {
	svc := newTestLogoService(t)

	if _, err := svc.GetByURL(context.Background(), "user-1", "https://example.com/logo.png"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLogoService_Delete(t *testing.T) {
	svc := newTestLogoService(t)
	ctx := context.Background()

	logo, err := svc.Store(ctx, "user-1", &domain.GeneratedImage{Data: pngBytes, ContentType: "image/png"})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	if err := svc.Delete(ctx, "user-2", logo.StorageKey); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.Delete(ctx, "user-1", logo.StorageKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", logo.StorageKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestLogoService_Release(t *testing.T) {
	svc := newTestLogoService(t)
	ctx := context.Background()

	logo, err := svc.Store(ctx, "user-1", &domain.GeneratedImage{Data: pngBytes, ContentType: "image/png"})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	stillUsed := []domain.Project{{ID: "B", LogoURL: domain.Str(logo.URL())}}
	if err := svc.Release(ctx, "user-1", logo.URL(), stillUsed); err != nil {
		t.Fatalf("Release while in use: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", logo.StorageKey); err != nil {
		t.Fatalf("expected logo kept while referenced, got %v", err)
	}

	if err := svc.Release(ctx, "user-2", logo.URL(), nil); err != nil {
		t.Fatalf("Release by another user: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", logo.StorageKey); err != nil {
		t.Fatalf("expected logo kept for its owner, got %v", err)
	}

	if err := svc.Release(ctx, "user-1", "https://example.com/logo.png", nil); err != nil {
		t.Fatalf("Release of external url: %v", err)
	}
	if err := svc.Release(ctx, "user-1", logo.URL(), nil); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", logo.StorageKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after release, got %v", err)
	}
	if err := svc.Release(ctx, "user-1", logo.URL(), nil); err != nil {
		t.Fatalf("second Release: %v", err)
	}
}
