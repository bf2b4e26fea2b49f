package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

const maxLogoSize = 10 * 1024 * 1024 // 10MB

// LogoService stores generated logos and serves them back to their owner.
type LogoService struct {
	logos domain.LogoRepository
}

// NewLogoService creates a new LogoService.
func NewLogoService(logos domain.LogoRepository) *LogoService {
	return &LogoService{logos: logos}
}

// Store saves image bytes as a logo owned by userID.
func (s *LogoService) Store(ctx context.Context, userID string, image *domain.GeneratedImage) (*domain.LogoAsset, error) {
	if image == nil || len(image.Data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrMalformedResponse)
	}
	if image.ContentType != "image/png" && image.ContentType != "image/jpeg" && image.ContentType != "image/webp" {
		return nil, fmt.Errorf("%w: unsupported image type %q", domain.ErrMalformedResponse, image.ContentType)
	}
	if len(image.Data) > maxLogoSize {
		return nil, fmt.Errorf("%w: image exceeds 10MB limit", domain.ErrMalformedResponse)
	}

	key, err := generateStorageKey()
	if err != nil {
		return nil, fmt.Errorf("generate storage key: %w", err)
	}

	logo := &domain.LogoAsset{
		StorageKey:  key,
		UserID:      userID,
		ContentType: image.ContentType,
	}
	if err := s.logos.Create(ctx, logo, image.Data); err != nil {
		return nil, fmt.Errorf("store logo: %w", err)
	}
	return logo, nil
}

// Get returns the logo bytes and content type. Logos of other users are
// reported as not found.
func (s *LogoService) Get(ctx context.Context, userID, key string) (*domain.GeneratedImage, error) {
	logo, err := s.logos.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if logo.UserID != userID {
		return nil, domain.ErrNotFound
	}

	data, err := s.logos.Data(ctx, logo.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("get logo data: %w", err)
	}
	return &domain.GeneratedImage{Data: data, ContentType: logo.ContentType}, nil
}

// GetByURL loads the logo a project's logoUrl points at.
func (s *LogoService) GetByURL(ctx context.Context, userID, url string) (*domain.GeneratedImage, error) {
	key, ok := strings.CutPrefix(url, domain.LogoURLPrefix)
	if !ok || key == "" {
		return nil, fmt.Errorf("%w: project logo is not a stored logo", domain.ErrInvalidInput)
	}
	img, err := s.Get(ctx, userID, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: project logo not found", domain.ErrInvalidInput)
	}
	return img, err
}

// Delete removes a logo and its stored bytes after an ownership check.
func (s *LogoService) Delete(ctx context.Context, userID, key string) error {
	logo, err := s.logos.GetByKey(ctx, key)
	if err != nil {
		return err
	}
	if logo.UserID != userID {
		return domain.ErrUnauthorized
	}
	if err := s.logos.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete logo: %w", err)
	}
	return nil
}

// Release deletes the stored logo behind url once no project still points
// at it. URLs that are not stored logos, and logos already gone, are ignored.
func (s *LogoService) Release(ctx context.Context, userID, url string, remaining []domain.Project) error {
	key, ok := strings.CutPrefix(url, domain.LogoURLPrefix)
	if !ok || key == "" {
		return nil
	}
	for _, p := range remaining {
		if domain.Deref(p.LogoURL) == url {
			return nil
		}
	}
	err := s.Delete(ctx, userID, key)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized) {
		return nil
	}
	return err
}

func generateStorageKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "logo-" + hex.EncodeToString(b), nil
}
