package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/crmdash/internal/core"
	"github.com/JonMunkholm/crmdash/internal/logging"
	"github.com/JonMunkholm/crmdash/internal/store"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 64 << 10

// decodeJSON reads a single JSON object from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

// handleGetSettings returns settings with the API key masked.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetSettings(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings.Masked())
}

// settingsRequest is the body of PUT /api/settings. A nil CRMAPIKey keeps the
// stored key, as does echoing back the masked value from GET. Connected and
// UpdatedAt are read-only; they are accepted so a GET body can be sent back
// unchanged, and ignored.
type settingsRequest struct {
	CRMAPIKey     *string         `json:"crmApiKey"`
	DefaultSource string          `json:"defaultSource"`
	TopTitles     int             `json:"topTitles"`
	Connected     json.RawMessage `json:"connected,omitempty"`
	UpdatedAt     json.RawMessage `json:"updatedAt,omitempty"`
}

// handleUpdateSettings replaces the settings row.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req settingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	current, err := s.store.GetSettings(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	next := store.Settings{
		CRMAPIKey:     current.CRMAPIKey,
		DefaultSource: req.DefaultSource,
		TopTitles:     req.TopTitles,
	}
	if req.CRMAPIKey != nil && *req.CRMAPIKey != current.Masked().CRMAPIKey {
		next.CRMAPIKey = *req.CRMAPIKey
	}

	saved, err := s.store.SaveSettings(ctx, next)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(ctx).Info("settings saved",
		"connected", saved.Connected,
		"default_source", saved.DefaultSource,
		"top_titles", saved.TopTitles,
	)
	writeJSON(w, http.StatusOK, saved.Masked())
}

// handleListAnalyses returns saved analysis summaries, newest first.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListAnalyses(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// saveRequest is the JSON body of POST /api/analyses for sources that need
// no upload.
type saveRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// handleSaveAnalysis stores a named analysis. A multipart body is analyzed
// like POST /api/analyze; a JSON body names a built-in source.
func (s *Server) handleSaveAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		name string
		ds   core.Dataset
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		var ok bool
		if ds, ok = s.analyzeUpload(w, r); !ok {
			return
		}
		name = r.FormValue(fieldName)
	} else {
		var req saveRequest
		if err := decodeJSON(w, r, &req); err != nil {
			s.respondError(w, r, err)
			return
		}
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
		src, err := core.SourceByName(req.Source, opts)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if ds, err = src.Load(ctx); err != nil {
			s.respondError(w, r, err)
			return
		}
		name = req.Name
	}

	a, err := s.store.SaveAnalysis(ctx, name, ds)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(ctx).Info("analysis saved",
		"analysis_id", a.ID,
		"source", a.Source,
		"contacts", len(ds.Contacts),
	)
	w.Header().Set("Location", "/api/analyses/"+a.ID)
	writeJSON(w, http.StatusCreated, a.Summary())
}

// handleGetAnalysis returns one saved analysis including its dataset.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handleDeleteAnalysis removes a saved analysis.
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteAnalysis(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("analysis deleted", "analysis_id", id)
	w.WriteHeader(http.StatusNoContent)
}
