package templates

import (
	"context"
	"io"
	"sort"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/crmdash/internal/core"
	"github.com/JonMunkholm/crmdash/internal/store"
)

// DashboardParams is everything the dashboard page shows.
type DashboardParams struct {
	Title      string
	AnalysisID string
	Connected  bool
	Dataset    core.Dataset
	Analyses   []store.AnalysisSummary
}

// countRow is one labelled row of a count table.
type countRow struct {
	Label string
	Count int
}

// sortedCounts orders a count map by count descending, then label.
// label maps raw keys to display text.
func sortedCounts(m map[string]int, label func(string) string) []countRow {
	rows := make([]countRow, 0, len(m))
	for k, v := range m {
		rows = append(rows, countRow{Label: label(k), Count: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

func identity(s string) string { return s }

// Dashboard renders the full dashboard page.
func Dashboard(p DashboardParams) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		ds := p.Dataset
		stats := ds.Stats

		hw.raw(`<header><h1>`)
		hw.text(p.Title)
		hw.raw(`</h1>`)
		if p.Connected {
			hw.raw(`<span class="badge on">CRM connected</span>`)
		} else {
			hw.raw(`<span class="badge">CRM not connected</span>`)
		}
		hw.raw(`</header><main>`)

		hw.render(ctx, kpis(ds))
		hw.render(ctx, leadIntent(stats))
		hw.render(ctx, countTable("Contacts by owner", "Owner",
			sortedCounts(stats.ByOwner, core.OwnerLabel), stats.TotalContacts))
		hw.render(ctx, countTable("Lifecycle stages", "Stage",
			sortedCounts(stats.ByLifecycle, identity), stats.TotalContacts))
		hw.render(ctx, topTitles(stats))
		hw.render(ctx, engagementByOwner(stats))
		hw.render(ctx, savedAnalyses(p.Analyses, p.AnalysisID))

		hw.raw(`</main>`)
		return hw.err
	})
	return page(p.Title, body)
}

func kpis(ds core.Dataset) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section><h2>Overview</h2><table>`)
		hw.rawf(`<tr><td>Contacts</td><td class="num kpi">%d</td></tr>`, ds.Stats.TotalContacts)
		hw.rawf(`<tr><td>Accounts</td><td class="num">%d</td></tr>`, len(ds.Accounts))
		hw.rawf(`<tr><td>Deals</td><td class="num">%d</td></tr>`, len(ds.Deals))
		if n := len(ds.Skipped); n > 0 {
			hw.rawf(`<tr><td>Skipped rows</td><td class="num">%d</td></tr>`, n)
		}
		hw.raw(`</table></section>`)
		return hw.err
	})
}

func leadIntent(stats core.Stats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		total := stats.TotalContacts
		hw.raw(`<section><h2>Lead intent</h2><table>`)
		for _, row := range []countRow{
			{Label: "High", Count: stats.LeadIntent.High},
			{Label: "Medium", Count: stats.LeadIntent.Medium},
			{Label: "Low", Count: stats.LeadIntent.Low},
		} {
			shareRow(hw, row, total)
		}
		hw.raw(`</table></section>`)
		return hw.err
	})
}

// shareRow writes a label, count and a bar sized by the row's share of total.
func shareRow(hw *htmlWriter, row countRow, total int) {
	share := core.Share(row.Count, total)
	hw.raw(`<tr><td>`)
	hw.text(row.Label)
	hw.rawf(`</td><td class="num">%d</td><td style="width:40%%"><div class="bar"><span style="width:%.1f%%"></span></div></td></tr>`,
		row.Count, share)
}

func countTable(title, column string, rows []countRow, total int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section><h2>`)
		hw.text(title)
		hw.raw(`</h2><table><tr><th>`)
		hw.text(column)
		hw.raw(`</th><th class="num">Contacts</th><th></th></tr>`)
		for _, row := range rows {
			shareRow(hw, row, total)
		}
		hw.raw(`</table></section>`)
		return hw.err
	})
}

func topTitles(stats core.Stats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section><h2>Top job titles</h2><table>`)
		for i, t := range stats.TopTitles {
			hw.rawf(`<tr><td>%d.</td><td>`, i+1)
			hw.text(t.Title)
			hw.rawf(`</td><td class="num">%d</td></tr>`, t.Count)
		}
		hw.raw(`</table></section>`)
		return hw.err
	})
}

func engagementByOwner(stats core.Stats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		owners := make([]string, 0, len(stats.EngagementByOwner))
		for owner := range stats.EngagementByOwner {
			owners = append(owners, owner)
		}
		sort.Slice(owners, func(i, j int) bool {
			return core.OwnerLabel(owners[i]) < core.OwnerLabel(owners[j])
		})

		hw.raw(`<section><h2>Engagement by owner</h2><table>`)
		hw.raw(`<tr><th>Owner</th><th class="num">High</th><th class="num">Medium</th><th class="num">Low</th></tr>`)
		for _, owner := range owners {
			b := stats.EngagementByOwner[owner]
			hw.raw(`<tr><td>`)
			hw.text(core.OwnerLabel(owner))
			hw.rawf(`</td><td class="num">%d</td><td class="num">%d</td><td class="num">%d</td></tr>`,
				b.High, b.Medium, b.Low)
		}
		hw.raw(`</table></section>`)
		return hw.err
	})
}

func savedAnalyses(list []store.AnalysisSummary, current string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section><h2>Saved analyses</h2>`)
		if len(list) == 0 {
			hw.raw(`<p>No saved analyses yet.</p></section>`)
			return hw.err
		}
		hw.raw(`<table>`)
		if current != "" {
			hw.raw(`<tr><td colspan="3"><a href="/">Demo data</a></td></tr>`)
		}
		for _, a := range list {
			hw.raw(`<tr><td>`)
			if a.ID == current {
				hw.raw(`<strong>`)
				hw.text(a.Name)
				hw.raw(`</strong>`)
			} else {
				hw.rawf(`<a href="%s">`, templ.EscapeString(string(templ.URL("/?analysis="+a.ID))))
				hw.text(a.Name)
				hw.raw(`</a>`)
			}
			hw.raw(`</td><td>`)
			hw.text(a.Source)
			hw.rawf(`</td><td class="num">%d</td></tr>`, a.ContactCount)
		}
		hw.raw(`</table></section>`)
		return hw.err
	})
}
