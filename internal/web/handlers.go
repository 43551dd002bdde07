package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/crmdash/internal/core"
	"github.com/JonMunkholm/crmdash/internal/logging"
	"github.com/JonMunkholm/crmdash/internal/store"
	"github.com/JonMunkholm/crmdash/internal/web/templates"
)

// handleDashboard renders the main dashboard page for a saved analysis
// (?analysis=<id>) or for the configured default source.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	params := templates.DashboardParams{
		Connected: settings.Connected,
	}

	if id := r.URL.Query().Get("analysis"); id != "" {
		a, err := s.store.GetAnalysis(ctx, id)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		params.Title = a.Name
		params.AnalysisID = a.ID
		params.Dataset = a.Dataset
	} else {
		ds, err := s.loadDefault(ctx, settings)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		params.Title = "Demo data"
		params.Dataset = ds
	}

	// The list is decoration; a failure here should not hide the charts.
	if list, err := s.store.ListAnalyses(ctx); err == nil {
		params.Analyses = list
	} else {
		logging.FromContext(ctx).Warn("list analyses for dashboard", "error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(params).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render dashboard", "error", err)
	}
}

// handleDemo returns the demo dataset as JSON.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts, err := s.options(r, settings)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	ds, err := core.DemoSource{Options: opts}.Load(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// loadDefault loads the source named by settings, or by configuration when
// settings were never saved.
func (s *Server) loadDefault(ctx context.Context, settings store.Settings) (core.Dataset, error) {
	name := settings.DefaultSource
	opts := settings.Options()
	if settings.UpdatedAt.IsZero() {
		name = s.cfg.Analytics.DefaultSource
		opts.TopTitles = s.cfg.Analytics.TopTitles
	}

	src, err := core.SourceByName(name, opts)
	if err != nil {
		return core.Dataset{}, err
	}
	ds, err := src.Load(ctx)
	if err != nil {
		return core.Dataset{}, err
	}
	logging.LogDataset(logging.FromContext(ctx), ds)
	return ds, nil
}
