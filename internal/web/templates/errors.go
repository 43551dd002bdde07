package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorAlert renders a user-facing error message with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="alert" role="alert"><strong>`)
		hw.text(message)
		hw.raw(`</strong>`)
		if action != "" {
			hw.raw(`<p>`)
			hw.text(action)
			hw.raw(`</p>`)
		}
		hw.raw(`<small>Code: `)
		hw.text(code)
		hw.raw(`</small></div>`)
		return hw.err
	})
}

// ErrorPage renders ErrorAlert as a full document with a link home.
func ErrorPage(message, action, code string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<header><h1>CRM dashboard</h1></header>`)
		hw.render(ctx, ErrorAlert(message, action, code))
		hw.raw(`<p style="margin:0 24px"><a href="/">Back to dashboard</a></p>`)
		return hw.err
	})
	return page("Error", body)
}
