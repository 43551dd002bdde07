// Package logging provides structured logging configuration using log/slog.
//
// This package integrates with chi's RequestID middleware to propagate
// request IDs through structured log entries, so every line written while
// serving an upload can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/crmdash/internal/core"
)

// maxLoggedSkips bounds how many dropped rows are logged per file.
const maxLoggedSkips = 20

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
}

// New builds a logger writing to w. The CLI passes os.Stderr so stdout stays
// clean for JSON output.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromContext returns a logger enriched with request context.
//
// When called with a request context that contains a chi RequestID,
// the returned logger includes request_id in all log entries.
//
//	logger := logging.FromContext(r.Context())
//	logger.Info("analysis saved", "analysis_id", a.ID)
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}

	return logger
}

// LogDataset writes a one-line summary of a pipeline run at info level and
// each dropped row at debug level.
func LogDataset(logger *slog.Logger, ds core.Dataset) {
	logger.Info("dataset loaded",
		"source", ds.Source,
		"contacts", len(ds.Contacts),
		"accounts", len(ds.Accounts),
		"deals", len(ds.Deals),
		"skipped", len(ds.Skipped),
	)

	perFile := make(map[string]int)
	for _, s := range ds.Skipped {
		perFile[s.File]++
		if perFile[s.File] > maxLoggedSkips {
			continue
		}
		logger.Debug("row skipped",
			"file", s.File,
			"line", s.LineNumber,
			"reason", s.Reason,
		)
	}
}
