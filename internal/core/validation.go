package core

// validation.go reports how an export's header maps onto record fields.
//
// Normalization never rejects a file for missing columns: absent fields get
// zero values. InspectHeaders makes that visible, so a user whose export uses
// unexpected header names can see which columns were used and which were
// ignored.

import (
	"errors"
	"fmt"
)

// ErrNoHeader is returned by InspectExport for content with no non-blank line.
var ErrNoHeader = errors.New("no header row found")

// ErrEncoding is returned by InspectExport for content that is not UTF-8.
var ErrEncoding = errors.New("encoding error: file is not valid UTF-8")

// ColumnMatch records which header column fed a field.
type ColumnMatch struct {
	Field  string `json:"field"`
	Column string `json:"column"`
	Index  int    `json:"index"`
}

// HeaderReport describes a header row against a set of field specs.
type HeaderReport struct {
	Matched   []ColumnMatch `json:"matched"`
	Missing   []string      `json:"missing"`
	Unmatched []string      `json:"unmatched"`
}

// InspectHeaders matches header against specs using the same alias rules as
// the normalizer: the first alias present wins, and for a repeated header the
// first occurrence is used.
func InspectHeaders(header RawRow, specs []FieldSpec) HeaderReport {
	idx := MakeHeaderIndex(header)
	used := make(map[int]bool)

	report := HeaderReport{
		Matched:   make([]ColumnMatch, 0, len(specs)),
		Missing:   make([]string, 0),
		Unmatched: make([]string, 0),
	}

	for _, spec := range specs {
		pos, ok := idx.position(spec.Aliases...)
		if !ok {
			report.Missing = append(report.Missing, spec.Name)
			continue
		}
		used[pos] = true
		report.Matched = append(report.Matched, ColumnMatch{
			Field:  spec.Name,
			Column: header[pos],
			Index:  pos,
		})
	}

	for i, h := range header {
		if !used[i] && CleanCell(h) != "" {
			report.Unmatched = append(report.Unmatched, h)
		}
	}
	return report
}

// position returns the column of the first alias present in the index.
func (h HeaderIndex) position(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if pos, ok := h[a]; ok {
			return pos, true
		}
	}
	return 0, false
}

// Has reports whether the named field was matched.
func (r HeaderReport) Has(field string) bool {
	for _, m := range r.Matched {
		if m.Field == field {
			return true
		}
	}
	return false
}

// ContactWarnings lists problems worth showing a user. A contacts header with no
// owner, title, lifecycle or intent column still parses, but every chart
// built from that column will be empty.
func (r HeaderReport) ContactWarnings() []string {
	var out []string
	for _, f := range []string{contactOwner.Name, contactTitle.Name, contactStage.Name, contactIntent.Name} {
		if !r.Has(f) {
			out = append(out, fmt.Sprintf("no column recognized for %s", f))
		}
	}
	return out
}

// InspectExport reads the first non-blank line of raw export content and
// reports it against specs. Unlike Tokenize it accepts a header-only file.
func InspectExport(data []byte, specs []FieldSpec) (HeaderReport, error) {
	text, ok := DecodeText(data)
	if !ok {
		return HeaderReport{}, ErrEncoding
	}
	lines := splitLines(text)
	if len(lines) == 0 {
		return HeaderReport{}, ErrNoHeader
	}
	first := lines[0].text
	return InspectHeaders(parseLine(first, DetectDelimiter(first)), specs), nil
}
