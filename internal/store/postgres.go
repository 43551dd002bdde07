package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/crmdash/internal/config"
	"github.com/JonMunkholm/crmdash/internal/core"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var _ Store = (*Postgres)(nil)

// Postgres stores settings and analyses in PostgreSQL.
type Postgres struct {
	db  DBTX
	now func() time.Time
}

// NewPostgres wraps a pool, transaction or mock.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

// OpenPool creates and pings a connection pool from configuration.
func OpenPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Migrate applies the embedded schema files in lexicographic order.
// Every statement is idempotent, so Migrate runs on each startup.
func (p *Postgres) Migrate(ctx context.Context) error {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		name := entry.Name()
		data, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := p.db.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		slog.Debug("migration applied", "file", name)
	}
	return nil
}

const selectSettings = `SELECT crm_api_key, connected, default_source, top_titles, updated_at
FROM dashboard_settings WHERE id = 1`

// GetSettings returns the saved settings, or DefaultSettings if none exist.
func (p *Postgres) GetSettings(ctx context.Context) (Settings, error) {
	var s Settings
	err := p.db.QueryRow(ctx, selectSettings).Scan(
		&s.CRMAPIKey, &s.Connected, &s.DefaultSource, &s.TopTitles, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

const upsertSettings = `INSERT INTO dashboard_settings (id, crm_api_key, connected, default_source, top_titles, updated_at)
VALUES (1, $1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
    crm_api_key = EXCLUDED.crm_api_key,
    connected = EXCLUDED.connected,
    default_source = EXCLUDED.default_source,
    top_titles = EXCLUDED.top_titles,
    updated_at = EXCLUDED.updated_at`

// SaveSettings validates and upserts the settings row.
func (p *Postgres) SaveSettings(ctx context.Context, s Settings) (Settings, error) {
	s = s.normalize()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	s.UpdatedAt = p.now().UTC()

	if _, err := p.db.Exec(ctx, upsertSettings,
		s.CRMAPIKey, s.Connected, s.DefaultSource, s.TopTitles, s.UpdatedAt,
	); err != nil {
		return Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return s, nil
}

const insertAnalysis = `INSERT INTO saved_analyses (id, name, source, contact_count, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// SaveAnalysis stores ds under a new id.
func (p *Postgres) SaveAnalysis(ctx context.Context, name string, ds core.Dataset) (Analysis, error) {
	name, err := cleanName(name)
	if err != nil {
		return Analysis{}, err
	}

	payload, err := json.Marshal(ds)
	if err != nil {
		return Analysis{}, fmt.Errorf("encode dataset: %w", err)
	}

	a := Analysis{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    ds.Source,
		CreatedAt: p.now().UTC(),
		Dataset:   ds,
	}
	if _, err := p.db.Exec(ctx, insertAnalysis,
		a.ID, a.Name, a.Source, len(ds.Contacts), payload, a.CreatedAt,
	); err != nil {
		return Analysis{}, fmt.Errorf("save analysis: %w", err)
	}
	return a, nil
}

const selectAnalysis = `SELECT id, name, source, payload, created_at
FROM saved_analyses WHERE id = $1`

// GetAnalysis loads one analysis. Unknown or malformed ids return ErrNotFound.
func (p *Postgres) GetAnalysis(ctx context.Context, id string) (Analysis, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Analysis{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	var (
		a       Analysis
		payload []byte
	)
	err := p.db.QueryRow(ctx, selectAnalysis, id).Scan(&a.ID, &a.Name, &a.Source, &payload, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Analysis{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return Analysis{}, fmt.Errorf("get analysis: %w", err)
	}

	if err := json.Unmarshal(payload, &a.Dataset); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis %s: %w", id, err)
	}
	return a, nil
}

const listAnalyses = `SELECT id, name, source, contact_count, created_at
FROM saved_analyses ORDER BY created_at DESC, id`

// ListAnalyses returns summaries, newest first.
func (p *Postgres) ListAnalyses(ctx context.Context) ([]AnalysisSummary, error) {
	rows, err := p.db.Query(ctx, listAnalyses)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	out := make([]AnalysisSummary, 0)
	for rows.Next() {
		var s AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Source, &s.ContactCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return out, nil
}

// DeleteAnalysis removes an analysis. Deleting a missing id returns ErrNotFound.
func (p *Postgres) DeleteAnalysis(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	tag, err := p.db.Exec(ctx, `DELETE FROM saved_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}
