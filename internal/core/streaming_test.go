package core

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewBOMSkippingReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestReadUpload(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		maxSize int64
		want    string
		wantErr error
	}{
		{
			name:    "within limit",
			input:   []byte("a,b\n1,2\n"),
			maxSize: 100,
			want:    "a,b\n1,2\n",
		},
		{
			name:    "exactly at limit",
			input:   []byte("12345"),
			maxSize: 5,
			want:    "12345",
		},
		{
			name:    "BOM does not count toward content",
			input:   append([]byte{0xEF, 0xBB, 0xBF}, "abc"...),
			maxSize: 3,
			want:    "abc",
		},
		{
			name:    "over limit",
			input:   []byte(strings.Repeat("x", 11)),
			maxSize: 10,
			wantErr: ErrFileTooLarge,
		},
		{
			name:    "no limit",
			input:   []byte(strings.Repeat("x", 4096)),
			maxSize: 0,
			want:    strings.Repeat("x", 4096),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadUpload(bytes.NewReader(tt.input), tt.maxSize)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadUpload_TooLargeMapsToUserMessage(t *testing.T) {
	_, err := ReadUpload(strings.NewReader("abcdef"), 2)
	if got := MapError(err).Code; got != "FILE001" {
		t.Errorf("MapError(%v).Code = %q, want FILE001", err, got)
	}
}
