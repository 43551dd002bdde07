package core

// convert.go provides conversion functions from raw CSV cells to typed values.
//
// These functions handle the messy reality of CRM exports:
//   - Multiple date formats (US, EU, ISO, RFC 3339)
//   - Currency symbols and thousand separators in amounts
//   - Excel formula prefixes (="value")
//   - Inconsistent header spelling ("Job Title", "job-title", "JOB_TITLE")
//
// Parse failures never surface as errors. Numbers fall back to zero and dates
// to the zero time; callers that need to tell "missing" from "zero" must look
// at the raw cell.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearCutoff is the last year a 2-digit year can resolve to.
// 00-49 map to 2000-2049 and 50-99 to 1950-1999, independent of the clock.
const TwoDigitYearCutoff = 2049

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// NormalizeHeader canonicalizes a header name for lookup:
// lowercase, with runs of spaces, dashes, dots and slashes collapsed to "_".
func NormalizeHeader(h string) string {
	h = strings.ToLower(CleanCell(h))

	var b strings.Builder
	b.Grow(len(h))
	pendingSep := false
	for _, r := range h {
		switch r {
		case ' ', '-', '.', '/', '_', '\t':
			pendingSep = b.Len() > 0
		default:
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HeaderIndex maps normalized column names to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// When two columns normalize to the same name, the first one wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := NormalizeHeader(h)
		if _, exists := idx[key]; exists {
			continue
		}
		idx[key] = i
	}
	return idx
}

// Lookup returns the cleaned value of the first alias present in the row.
func (h HeaderIndex) Lookup(row []string, aliases ...string) (string, bool) {
	for _, a := range aliases {
		pos, ok := h[a]
		if !ok || pos >= len(row) {
			continue
		}
		return CleanCell(row[pos]), true
	}
	return "", false
}

// Get is Lookup without the presence flag.
func (h HeaderIndex) Get(row []string, aliases ...string) string {
	v, _ := h.Lookup(row, aliases...)
	return v
}

// ParseAmount converts a money or decimal string to float64.
// Handles currency symbols, thousands separators, and accounting format
// (parentheses for negative). Returns 0 for empty or invalid input.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseInt converts a score-like string to int, truncating decimals.
// Returns 0 for empty or invalid input.
func ParseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f := ParseAmount(s)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// ParseDate parses the supported date layouts.
// Returns the zero time for empty or unrecognized input.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}

	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > TwoDigitYearCutoff {
				t = t.AddDate(-100, 0, 0)
			}
			return t
		}
	}

	return time.Time{}
}

// ParsePriority maps free-form priority values to a Priority.
// Unrecognized or empty values map to PriorityLow.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "hot", "h", "a":
		return PriorityHigh
	case "medium", "med", "warm", "m", "b":
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// isStage compares a deal stage against known spellings, ignoring case and spacing.
func isStage(stage string, names ...string) bool {
	s := strings.ReplaceAll(NormalizeHeader(stage), "_", "")
	for _, n := range names {
		if s == strings.ReplaceAll(n, "_", "") {
			return true
		}
	}
	return false
}
