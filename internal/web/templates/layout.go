// Package templates renders the dashboard HTML as templ components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and remembers the first write error, so
// components can emit many fragments and check once.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw writes trusted markup.
func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// text writes escaped text.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// rawf formats trusted markup. Callers escape string arguments.
func (hw *htmlWriter) rawf(format string, args ...any) {
	hw.raw(fmt.Sprintf(format, args...))
}

// render renders a child component into the same writer.
func (hw *htmlWriter) render(ctx context.Context, c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

const styles = `body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9;color:#1f2933}
header{background:#1f2933;color:#fff;padding:16px 24px;display:flex;justify-content:space-between;align-items:center}
main{padding:24px;display:grid;grid-template-columns:repeat(auto-fit,minmax(320px,1fr));gap:16px}
section{background:#fff;border-radius:8px;padding:16px;box-shadow:0 1px 2px rgba(0,0,0,.08)}
h1{font-size:20px;margin:0}h2{font-size:15px;margin:0 0 12px}
table{width:100%;border-collapse:collapse;font-size:14px}td,th{padding:4px 6px;text-align:left}
td.num,th.num{text-align:right}.bar{background:#e4e7eb;border-radius:4px;height:8px}
.bar span{display:block;height:8px;border-radius:4px;background:#3e7bfa}
.badge{font-size:12px;padding:2px 8px;border-radius:10px;background:#52606d}
.badge.on{background:#2f9e44}.alert{border-left:4px solid #e03131;background:#fff5f5;padding:12px 16px;margin:24px}
.kpi{font-size:28px;font-weight:600}`

// page wraps body in the document shell.
func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>`)
		hw.text(title)
		hw.raw(` · CRM dashboard</title><style>`)
		hw.raw(styles)
		hw.raw(`</style></head><body>`)
		hw.render(ctx, body)
		hw.raw(`</body></html>`)
		return hw.err
	})
}
