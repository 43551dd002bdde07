package core

// tokenizer.go splits raw CRM export text into rows of fields.
//
// The tokenizer is intentionally line-oriented: records are split on line
// endings first, so a quoted field cannot span lines. Quotes only protect the
// delimiter. A backslash before a quote makes it literal.

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts uploaded bytes to text.
// A leading UTF-8 BOM is removed. Returns false if the content is not valid UTF-8.
func DecodeText(data []byte) (string, bool) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// DetectDelimiter returns tab if the header line contains one, otherwise comma.
func DetectDelimiter(header string) rune {
	if strings.ContainsRune(header, '\t') {
		return '\t'
	}
	return ','
}

// Tokenize splits text into a header row followed by data rows.
//
// Blank lines are discarded. Rows whose field count differs from the header
// are dropped and reported in Skipped. Text with fewer than two non-blank lines
// produces an empty result.
func Tokenize(text string) Tokenized {
	lines := splitLines(text)
	if len(lines) < 2 {
		return Tokenized{}
	}

	delim := DetectDelimiter(lines[0].text)
	header := parseLine(lines[0].text, delim)

	out := Tokenized{
		Delimiter: delim,
		Rows:      make([]RawRow, 0, len(lines)),
	}
	out.Rows = append(out.Rows, header)

	for _, ln := range lines[1:] {
		fields := parseLine(ln.text, delim)
		if len(fields) != len(header) {
			out.Skipped = append(out.Skipped, FailedRow{
				LineNumber: ln.number,
				Reason:     fmt.Sprintf("expected %d fields, got %d", len(header), len(fields)),
				Data:       fields,
			})
			continue
		}
		out.Rows = append(out.Rows, fields)
	}

	return out
}

// TokenizeBytes decodes and tokenizes raw file content.
// Undecodable content yields an empty result.
func TokenizeBytes(data []byte) Tokenized {
	text, ok := DecodeText(data)
	if !ok {
		return Tokenized{}
	}
	return Tokenize(text)
}

type line struct {
	number int // 1-indexed physical line
	text   string
}

// splitLines splits on CRLF, LF and CR, dropping whitespace-only lines.
func splitLines(text string) []line {
	var lines []line
	number := 1
	start := 0

	emit := func(end int) {
		s := text[start:end]
		if strings.TrimSpace(s) != "" {
			lines = append(lines, line{number: number, text: s})
		}
		number++
	}

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			emit(i)
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		case '\n':
			emit(i)
			start = i + 1
		}
	}
	if start < len(text) {
		emit(len(text))
	}

	return lines
}

// parseLine splits a single line on delim, honoring double-quoted sections.
// Delimiter, quote and backslash are ASCII, so scanning bytes is UTF-8 safe.
func parseLine(s string, delim rune) RawRow {
	d := byte(delim)
	fields := make(RawRow, 0, 8)
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && s[i+1] == '"':
			b.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == d && !inQuotes:
			fields = append(fields, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(b.String()))

	return fields
}
