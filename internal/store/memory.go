package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/crmdash/internal/core"
)

var _ Store = (*Memory)(nil)

// Memory is a process-local Store used when no database is configured.
// Datasets are held as JSON, like the Postgres payload column, so callers
// never share slices with the store.
type Memory struct {
	mu       sync.RWMutex
	settings *Settings
	analyses map[string]memoryAnalysis
	now      func() time.Time
}

type memoryAnalysis struct {
	summary AnalysisSummary
	payload []byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		analyses: make(map[string]memoryAnalysis),
		now:      time.Now,
	}
}

// Migrate implements Store. There is no schema to create.
func (m *Memory) Migrate(context.Context) error { return nil }

// GetSettings implements Store.
func (m *Memory) GetSettings(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return DefaultSettings(), nil
	}
	return *m.settings, nil
}

// SaveSettings implements Store.
func (m *Memory) SaveSettings(ctx context.Context, s Settings) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	s = s.normalize()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s.UpdatedAt = m.now().UTC()
	m.settings = &s
	return s, nil
}

// SaveAnalysis implements Store.
func (m *Memory) SaveAnalysis(ctx context.Context, name string, ds core.Dataset) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	name, err := cleanName(name)
	if err != nil {
		return Analysis{}, err
	}
	payload, err := json.Marshal(ds)
	if err != nil {
		return Analysis{}, fmt.Errorf("encode dataset: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a := Analysis{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    ds.Source,
		CreatedAt: m.now().UTC(),
		Dataset:   ds,
	}
	m.analyses[a.ID] = memoryAnalysis{summary: a.Summary(), payload: payload}
	return a, nil
}

// GetAnalysis implements Store.
func (m *Memory) GetAnalysis(ctx context.Context, id string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	m.mu.RLock()
	stored, ok := m.analyses[id]
	m.mu.RUnlock()

	if !ok {
		return Analysis{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	a := Analysis{
		ID:        stored.summary.ID,
		Name:      stored.summary.Name,
		Source:    stored.summary.Source,
		CreatedAt: stored.summary.CreatedAt,
	}
	if err := json.Unmarshal(stored.payload, &a.Dataset); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis %s: %w", id, err)
	}
	return a, nil
}

// ListAnalyses implements Store. Summaries are sorted newest first.
func (m *Memory) ListAnalyses(ctx context.Context) ([]AnalysisSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]AnalysisSummary, 0, len(m.analyses))
	for _, a := range m.analyses {
		out = append(out, a.summary)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteAnalysis implements Store.
func (m *Memory) DeleteAnalysis(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.analyses[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(m.analyses, id)
	return nil
}
