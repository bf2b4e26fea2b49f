package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

// logoRepo implements domain.LogoRepository. Image bytes live in file_blobs
// and the logos row cascades away with its blob.
type logoRepo struct {
	db *sql.DB
}

// Create writes the blob and its metadata row in one transaction.
func (r *logoRepo) Create(ctx context.Context, logo *domain.LogoAsset, data []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin logo insert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO file_blobs (storage_key, data) VALUES (?, ?)",
		logo.StorageKey, data,
	); err != nil {
		return fmt.Errorf("insert logo blob: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO logos (storage_key, user_id, content_type, size, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		logo.StorageKey, logo.UserID, logo.ContentType, int64(len(data)), now,
	); err != nil {
		return fmt.Errorf("insert logo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit logo insert: %w", err)
	}
	logo.Size = int64(len(data))
	logo.CreatedAt = now
	return nil
}

func (r *logoRepo) GetByKey(ctx context.Context, key string) (*domain.LogoAsset, error) {
	logo := &domain.LogoAsset{}
	err := r.db.QueryRowContext(ctx,
		`SELECT storage_key, user_id, content_type, size, created_at
		 FROM logos WHERE storage_key = ?`, key,
	).Scan(&logo.StorageKey, &logo.UserID, &logo.ContentType, &logo.Size, &logo.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get logo: %w", err)
	}
	return logo, nil
}

// Data returns the stored image bytes.
func (r *logoRepo) Data(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT b.data FROM file_blobs b
		 JOIN logos l ON l.storage_key = b.storage_key
		 WHERE b.storage_key = ?`, key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get logo data: %w", err)
	}
	return data, nil
}

func (r *logoRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM file_blobs WHERE storage_key = ?", key); err != nil {
		return fmt.Errorf("delete logo: %w", err)
	}
	return nil
}
