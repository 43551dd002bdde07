package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/crmdash/internal/core"
)

const contactsCSV = "Email,Company,Job Title,Intent Score,Contact Owner\n" +
	"a@acme.io,Acme,CEO,25,Dana\n" +
	"b@acme.io,Acme,CTO,12,\n" +
	"broken row\n"

const dealsCSV = "Deal Name,Company,Deal Stage,Amount\n" +
	"Renewal,Acme,closedwon,500\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	contacts := writeTemp(t, "contacts.csv", contactsCSV)
	deals := writeTemp(t, "deals.csv", dealsCSV)

	stdout, stderr, err := execute(t, "analyze", "--contacts", contacts, "--deals", deals, "--log-level", "debug")
	require.NoError(t, err)

	var ds core.Dataset
	require.NoError(t, json.Unmarshal([]byte(stdout), &ds))
	assert.Equal(t, core.SourceCSV, ds.Source)
	assert.Equal(t, 2, ds.Stats.TotalContacts)
	assert.Equal(t, map[string]int{"Dana": 1, "": 1}, ds.Stats.ByOwner)
	require.Len(t, ds.Accounts, 1)
	assert.Equal(t, 1, ds.Accounts[0].WonDealCount)
	require.Len(t, ds.Skipped, 1)
	assert.Equal(t, core.FileContacts, ds.Skipped[0].File)

	assert.Contains(t, stderr, "dataset loaded")
	assert.Contains(t, stderr, "row skipped")
}

func TestAnalyzeCommand_StatsOnly(t *testing.T) {
	contacts := writeTemp(t, "contacts.csv", contactsCSV)

	stdout, _, err := execute(t, "analyze", "-c", contacts, "--stats-only", "--top", "1")
	require.NoError(t, err)

	var stats core.Stats
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	assert.Equal(t, 2, stats.TotalContacts)
	assert.Len(t, stats.TopTitles, 1)
	assert.NotContains(t, stdout, "contacts\"")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	contacts := writeTemp(t, "contacts.csv", contactsCSV)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "contacts flag required", args: []string{"analyze"}, wantErr: "contacts"},
		{name: "missing file", args: []string{"analyze", "-c", filepath.Join(t.TempDir(), "nope.csv")}, wantErr: "open"},
		{name: "missing deals file", args: []string{"analyze", "-c", contacts, "-d", filepath.Join(t.TempDir(), "nope.csv")}, wantErr: "open"},
		{name: "file too large", args: []string{"analyze", "-c", contacts, "--max-size", "10"}, wantErr: "file too large"},
		{name: "zero top", args: []string{"analyze", "-c", contacts, "--top", "0"}, wantErr: "--top"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, stdout)
		})
	}
}

func TestDemoCommand(t *testing.T) {
	stdout, stderr, err := execute(t, "demo", "--pretty")
	require.NoError(t, err)

	var ds core.Dataset
	require.NoError(t, json.Unmarshal([]byte(stdout), &ds))
	assert.Equal(t, core.SourceDemo, ds.Source)
	assert.NotEmpty(t, ds.Contacts)
	assert.Contains(t, stdout, "\n  \"source\"")
	assert.Empty(t, stderr, "default log level keeps stderr quiet")
}

func TestDemoCommand_Deterministic(t *testing.T) {
	first, _, err := execute(t, "demo")
	require.NoError(t, err)
	second, _, err := execute(t, "demo")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestColumnsCommand(t *testing.T) {
	contacts := writeTemp(t, "contacts.csv", "Email,Job Title,Shoe Size\n")
	deals := writeTemp(t, "deals.csv", dealsCSV)

	stdout, _, err := execute(t, "columns", "-c", contacts, "-d", deals)
	require.NoError(t, err)

	var got columnsReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.NotNil(t, got.Contacts)
	assert.True(t, got.Contacts.Has("Title"))
	assert.Equal(t, []string{"Shoe Size"}, got.Contacts.Unmatched)
	assert.Len(t, got.Warnings, 3)
	require.NotNil(t, got.Deals)
	assert.True(t, got.Deals.Has("Amount"))
}

func TestColumnsCommand_EmptyFile(t *testing.T) {
	contacts := writeTemp(t, "contacts.csv", "")

	_, _, err := execute(t, "columns", "-c", contacts)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoHeader)
}

func TestFormatError(t *testing.T) {
	contacts := writeTemp(t, "contacts.csv", contactsCSV)
	_, _, err := execute(t, "analyze", "-c", contacts, "--max-size", "10")
	require.Error(t, err)

	got := FormatError(err)
	assert.Contains(t, got, err.Error())
	assert.Contains(t, got, "(Code: FILE001)")
	assert.Contains(t, got, "Export fewer records or split the file")

	plain := errors.New("unexpected flag value")
	assert.Equal(t, "unexpected flag value", FormatError(plain))
}
