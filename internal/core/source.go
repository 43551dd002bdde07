package core

import (
	"context"
	"errors"
	"fmt"
)

// Source names.
const (
	SourceCSV  = "csv"
	SourceDemo = "demo"
)

// ErrUnknownSource is returned by SourceByName for unregistered names.
var ErrUnknownSource = errors.New("unknown data source")

// Source produces a Dataset. Callers pick one explicitly; nothing falls back
// to demo data behind their back.
type Source interface {
	Name() string
	Load(ctx context.Context) (Dataset, error)
}

// CSVSource analyzes user-uploaded CRM exports.
type CSVSource struct {
	Contacts []byte
	Deals    []byte
	Options  Options
}

// Name implements Source.
func (s CSVSource) Name() string { return SourceCSV }

// Load implements Source.
func (s CSVSource) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	return Analyze(SourceCSV, Input{Contacts: s.Contacts, Deals: s.Deals}, s.Options), nil
}

// DemoSource serves the built-in sample CRM export.
type DemoSource struct {
	Options Options
}

// Name implements Source.
func (s DemoSource) Name() string { return SourceDemo }

// Load implements Source.
func (s DemoSource) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	return Analyze(SourceDemo, Input{
		Contacts: []byte(demoContactsCSV),
		Deals:    []byte(demoDealsCSV),
	}, s.Options), nil
}

// SourceByName returns a source that needs no upload.
// Only the demo source qualifies; CSV sources are built from request bodies.
func SourceByName(name string, opts Options) (Source, error) {
	switch name {
	case SourceDemo:
		return DemoSource{Options: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
}
