package domain

import (
	"context"
	"time"
)

// LogoURLPrefix is the path under which stored logos are served.
const LogoURLPrefix = "/api/logos/"

// LogoAsset holds metadata about a generated logo image.
type LogoAsset struct {
	StorageKey  string
	UserID      string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

// URL returns the path clients use to fetch the logo bytes.
func (a *LogoAsset) URL() string {
	return LogoURLPrefix + a.StorageKey
}

// LogoRepository persists logo images together with their metadata.
// Deleting a logo removes its bytes.
type LogoRepository interface {
	Create(ctx context.Context, logo *LogoAsset, data []byte) error
	GetByKey(ctx context.Context, key string) (*LogoAsset, error)
	Data(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
