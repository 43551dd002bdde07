// Package store persists dashboard settings and saved analyses.
//
// Two implementations satisfy Store: Postgres (pgx) for deployments with a
// database and Memory for local runs and tests. Both keep a saved dataset as
// JSON so a reloaded analysis is identical to what was saved.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JonMunkholm/crmdash/internal/core"
)

// Sentinel errors. Their messages are matched by core.MapError.
var (
	ErrNotFound        = errors.New("analysis not found")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidSettings = errors.New("invalid settings")
)

// maxNameLength caps saved analysis names.
const maxNameLength = 200

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Store is the persistence boundary used by the HTTP layer.
type Store interface {
	Migrate(ctx context.Context) error

	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) (Settings, error)

	SaveAnalysis(ctx context.Context, name string, ds core.Dataset) (Analysis, error)
	GetAnalysis(ctx context.Context, id string) (Analysis, error)
	ListAnalyses(ctx context.Context) ([]AnalysisSummary, error)
	DeleteAnalysis(ctx context.Context, id string) error
}

// Settings is the single dashboard configuration row.
type Settings struct {
	CRMAPIKey     string    `json:"crmApiKey"`
	Connected     bool      `json:"connected"`
	DefaultSource string    `json:"defaultSource"`
	TopTitles     int       `json:"topTitles"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

// DefaultSettings is returned before anything has been saved.
func DefaultSettings() Settings {
	return Settings{
		DefaultSource: core.SourceDemo,
		TopTitles:     core.DefaultTopTitles,
	}
}

// Masked returns a copy safe to send to a browser: all but the last four
// characters of the API key are replaced.
func (s Settings) Masked() Settings {
	if s.CRMAPIKey == "" {
		return s
	}
	keep := 4
	if len(s.CRMAPIKey) <= keep {
		keep = 0
	}
	s.CRMAPIKey = strings.Repeat("*", 8) + s.CRMAPIKey[len(s.CRMAPIKey)-keep:]
	return s
}

// Validate checks user-editable fields.
func (s Settings) Validate() error {
	var problems []string
	if s.DefaultSource != core.SourceDemo {
		problems = append(problems, fmt.Sprintf("default source %q is not available", s.DefaultSource))
	}
	if s.TopTitles == 0 || s.TopTitles > 100 {
		problems = append(problems, "top titles must be between 1 and 100, or negative for all")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(problems, "; "))
	}
	return nil
}

// normalize fills defaults and derives Connected from the API key.
func (s Settings) normalize() Settings {
	s.CRMAPIKey = strings.TrimSpace(s.CRMAPIKey)
	if s.DefaultSource == "" {
		s.DefaultSource = core.SourceDemo
	}
	if s.TopTitles == 0 {
		s.TopTitles = core.DefaultTopTitles
	}
	s.Connected = s.CRMAPIKey != ""
	return s
}

// Options converts settings to pipeline options.
func (s Settings) Options() core.Options {
	return core.Options{TopTitles: s.TopTitles}
}

// Analysis is a named, saved pipeline result.
type Analysis struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Source    string       `json:"source"`
	CreatedAt time.Time    `json:"createdAt"`
	Dataset   core.Dataset `json:"dataset"`
}

// AnalysisSummary is the list view of an Analysis.
type AnalysisSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Source       string    `json:"source"`
	ContactCount int       `json:"contactCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summary returns the list view of a.
func (a Analysis) Summary() AnalysisSummary {
	return AnalysisSummary{
		ID:           a.ID,
		Name:         a.Name,
		Source:       a.Source,
		ContactCount: len(a.Dataset.Contacts),
		CreatedAt:    a.CreatedAt,
	}
}

// cleanName trims an analysis name and truncates it to maxNameLength runes.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if r := []rune(name); len(r) > maxNameLength {
		name = strings.TrimSpace(string(r[:maxNameLength]))
	}
	return name, nil
}
