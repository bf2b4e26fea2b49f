package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brandcraft-ai/brandcraft/internal/domain"
)

// projectRepo implements domain.ProjectRepository using SQLite.
// Optional fields map to NULL columns; colors and strategy are stored as JSON.
type projectRepo struct {
	db *sql.DB
}

const projectColumns = `id, user_id, name, industry, keywords, description, tagline,
	colors, logo_url, aesthetic_url, strategy, updated_at`

func (r *projectRepo) Save(ctx context.Context, project *domain.Project) error {
	colors, err := encodeJSON(project.Colors, project.Colors == nil)
	if err != nil {
		return fmt.Errorf("encode colors: %w", err)
	}
	strategy, err := encodeJSON(project.Strategy, project.Strategy == nil)
	if err != nil {
		return fmt.Errorf("encode strategy: %w", err)
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`, save_seq)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		         (SELECT COALESCE(MAX(save_seq), 0) + 1 FROM projects))
		 ON CONFLICT(id) DO UPDATE SET
		   user_id = excluded.user_id,
		   name = excluded.name,
		   industry = excluded.industry,
		   keywords = excluded.keywords,
		   description = excluded.description,
		   tagline = excluded.tagline,
		   colors = excluded.colors,
		   logo_url = excluded.logo_url,
		   aesthetic_url = excluded.aesthetic_url,
		   strategy = excluded.strategy,
		   updated_at = excluded.updated_at,
		   save_seq = excluded.save_seq`,
		project.ID, project.UserID,
		nullString(project.Name), nullString(project.Industry), nullString(project.Keywords),
		nullString(project.Description), nullString(project.Tagline),
		colors, nullString(project.LogoURL), nullString(project.AestheticURL), strategy,
		now,
	)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	project.UpdatedAt = now
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *projectRepo) LatestByUser(ctx context.Context, userID string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE user_id = ? ORDER BY save_seq DESC LIMIT 1`, userID)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get latest project: %w", err)
	}
	return p, nil
}

func (r *projectRepo) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE user_id = ? ORDER BY save_seq DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p                                             domain.Project
		name, industry, keywords, description, tagline sql.NullString
		colors, logoURL, aestheticURL, strategy        sql.NullString
	)
	if err := row.Scan(&p.ID, &p.UserID, &name, &industry, &keywords, &description, &tagline,
		&colors, &logoURL, &aestheticURL, &strategy, &p.UpdatedAt); err != nil {
		return nil, err
	}

	p.Name = fromNull(name)
	p.Industry = fromNull(industry)
	p.Keywords = fromNull(keywords)
	p.Description = fromNull(description)
	p.Tagline = fromNull(tagline)
	p.LogoURL = fromNull(logoURL)
	p.AestheticURL = fromNull(aestheticURL)

	if colors.Valid {
		p.Colors = []string{}
		if err := json.Unmarshal([]byte(colors.String), &p.Colors); err != nil {
			return nil, fmt.Errorf("decode colors: %w", err)
		}
	}
	if strategy.Valid {
		p.Strategy = &domain.Strategy{}
		if err := json.Unmarshal([]byte(strategy.String), p.Strategy); err != nil {
			return nil, fmt.Errorf("decode strategy: %w", err)
		}
	}
	return &p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return domain.Str(s.String)
}

func encodeJSON(v any, absent bool) (sql.NullString, error) {
	if absent {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
