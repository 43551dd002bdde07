package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/crmdash/internal/core"
	"github.com/JonMunkholm/crmdash/internal/logging"
	"github.com/JonMunkholm/crmdash/internal/store"
)

// Multipart form fields.
const (
	fieldContacts = "contacts"
	fieldDeals    = "deals"
	fieldName     = "name"
)

// multipartOverhead is allowed on top of the file limits for boundaries and
// small fields.
const multipartOverhead = 1 << 20

// handleAnalyze runs the pipeline over uploaded exports and returns the dataset.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// analyzeUpload takes an analysis slot, reads the multipart body and runs the
// CSV source. On failure the error response is already written.
func (s *Server) analyzeUpload(w http.ResponseWriter, r *http.Request) (core.Dataset, bool) {
	ctx := r.Context()

	if err := s.limiter.Acquire(ctx); err != nil {
		s.respondError(w, r, err)
		return core.Dataset{}, false
	}
	defer s.limiter.Release()

	in, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return core.Dataset{}, false
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return core.Dataset{}, false
	}
	opts, err := s.options(r, settings)
	if err != nil {
		s.respondError(w, r, err)
		return core.Dataset{}, false
	}

	logger := logging.FromContext(ctx)
	if report, err := core.InspectExport(in.Contacts, core.ContactFieldSpecs); err == nil {
		logger.Debug("contact columns",
			"matched", len(report.Matched),
			"unmatched", report.Unmatched,
			"warnings", report.ContactWarnings(),
		)
	}

	ds, err := core.CSVSource{Contacts: in.Contacts, Deals: in.Deals, Options: opts}.Load(ctx)
	if err != nil {
		s.respondError(w, r, err)
		return core.Dataset{}, false
	}
	logging.LogDataset(logger, ds)
	return ds, true
}

// readUpload parses the multipart body. The contacts file is required and
// the deals file is optional.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (core.Input, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return core.Input{}, fmt.Errorf("%w: request exceeds %d bytes", core.ErrFileTooLarge, maxBytes.Limit)
		}
		return core.Input{}, fmt.Errorf("%w: %v", errInvalidForm, err)
	}

	contacts, err := readFormFile(r, fieldContacts, maxSize)
	if errors.Is(err, http.ErrMissingFile) {
		return core.Input{}, fmt.Errorf("%w: %s", errNoFile, fieldContacts)
	}
	if err != nil {
		return core.Input{}, err
	}

	deals, err := readFormFile(r, fieldDeals, maxSize)
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return core.Input{}, err
	}

	return core.Input{Contacts: contacts, Deals: deals}, nil
}

// readFormFile reads one uploaded file with the per-file size cap.
func readFormFile(r *http.Request, field string, maxSize int64) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := core.ReadUpload(file, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return data, nil
}

// options builds pipeline options from saved settings, falling back to
// configuration when settings were never saved. A "top" query parameter
// overrides the title ranking length for one request.
func (s *Server) options(r *http.Request, settings store.Settings) (core.Options, error) {
	opts := settings.Options()
	if settings.UpdatedAt.IsZero() {
		opts.TopTitles = s.cfg.Analytics.TopTitles
	}

	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n == 0 {
			return core.Options{}, fmt.Errorf("%w: top must be a non-zero integer", errInvalidForm)
		}
		opts.TopTitles = n
	}
	return opts, nil
}
