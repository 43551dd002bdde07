package templates

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/crmdash/internal/core"
	"github.com/JonMunkholm/crmdash/internal/store"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestDashboard_Demo(t *testing.T) {
	ds, err := core.DemoSource{}.Load(context.Background())
	require.NoError(t, err)

	html := render(t, Dashboard(DashboardParams{Title: "Demo data", Dataset: ds}))

	assert.Contains(t, html, "<title>Demo data")
	assert.Contains(t, html, core.UnassignedOwner, "empty owners are labelled at render time")
	assert.Contains(t, html, "Jordan Blake")
	assert.Contains(t, html, "Marketing Manager")
	assert.Contains(t, html, "CRM not connected")
	assert.Contains(t, html, "No saved analyses yet.")
}

func TestDashboard_EscapesUserText(t *testing.T) {
	ds := core.Analyze(core.SourceCSV, core.Input{
		Contacts: []byte("Email,Job Title,Contact Owner\na@x.io,<script>alert(1)</script>,O'Brien\n"),
	}, core.Options{})

	html := render(t, Dashboard(DashboardParams{
		Title:   "<b>Q3</b>",
		Dataset: ds,
		Analyses: []store.AnalysisSummary{
			{ID: "a1", Name: "Q3 & Q4", Source: core.SourceCSV, ContactCount: 1, CreatedAt: time.Now()},
		},
	}))

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.NotContains(t, html, "<b>Q3</b>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Q3 &amp; Q4")
	assert.Contains(t, html, `href="/?analysis=a1"`)
}

func TestDashboard_CurrentAnalysisNotLinked(t *testing.T) {
	html := render(t, Dashboard(DashboardParams{
		Title:      "Saved",
		AnalysisID: "a1",
		Connected:  true,
		Analyses:   []store.AnalysisSummary{{ID: "a1", Name: "Current"}},
	}))

	assert.Contains(t, html, "<strong>Current</strong>")
	assert.NotContains(t, html, `href="/?analysis=a1"`)
	assert.Contains(t, html, `<a href="/">Demo data</a>`)
	assert.Contains(t, html, "CRM connected")
}

func TestSortedCounts(t *testing.T) {
	rows := sortedCounts(map[string]int{"": 2, "Sam": 2, "Alex": 5}, core.OwnerLabel)

	require.Len(t, rows, 3)
	assert.Equal(t, countRow{Label: "Alex", Count: 5}, rows[0])
	assert.Equal(t, countRow{Label: "Sam", Count: 2}, rows[1])
	assert.Equal(t, countRow{Label: core.UnassignedOwner, Count: 2}, rows[2])
}

func TestErrorPage(t *testing.T) {
	html := render(t, ErrorPage("Saved analysis not found", "Refresh the list", "ANL001"))

	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, "Saved analysis not found")
	assert.Contains(t, html, "Code: ANL001")
	assert.Contains(t, html, `<a href="/">`)
}

func TestErrorAlert_OmitsEmptyAction(t *testing.T) {
	html := render(t, ErrorAlert("Oops", "", "ERR000"))
	assert.NotContains(t, html, "<p>")
}
