package html

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"codeslabs/frontend/shared/nav"
)

// Page describes the chrome around a page body.
type Page struct {
	Title   string
	Nav     nav.TopNavData
	Status  string
	Error   string
	NoIndex bool
}

// Layout wraps body in the site document with navigation and flash messages.
func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "Codes-Labs"
		if p.Title != "" {
			title = p.Title + " | Codes-Labs"
		}
		var b strings.Builder
		b.WriteString(`<!doctype html><html lang="es"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		if p.NoIndex {
			b.WriteString(`<meta name="robots" content="noindex">`)
		}
		fmt.Fprintf(&b, `<title>%s</title><link rel="stylesheet" href="/assets/app.css"></head><body>`, Esc(title))
		writeTopNav(&b, p.Nav)
		b.WriteString(`<main class="container">`)
		if p.Status != "" {
			fmt.Fprintf(&b, `<div class="alert alert-success" role="status">%s</div>`, Esc(p.Status))
		}
		if p.Error != "" {
			fmt.Fprintf(&b, `<div class="alert alert-error" role="alert">%s</div>`, Esc(p.Error))
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main><footer class="footer">Codes-Labs</footer>`+CSRFFormScript()+`</body></html>`)
		return err
	})
}

func writeTopNav(b *strings.Builder, data nav.TopNavData) {
	b.WriteString(`<nav class="topnav"><a class="brand" href="/">Codes-Labs</a><ul>`)
	for _, l := range data.Links {
		class := ""
		if l.Active {
			class = ` class="active"`
		}
		fmt.Fprintf(b, `<li><a href="%s"%s>%s</a></li>`, Esc(l.Href), class, Esc(l.Label))
	}
	b.WriteString(`</ul>`)
	if data.IsAdmin {
		b.WriteString(`<form method="post" action="/admin/logout"><button class="btn btn-ghost" type="submit">Cerrar sesión</button></form>`)
	}
	b.WriteString(`</nav>`)
}

// Esc escapes text for HTML element and attribute content.
func Esc(s string) string {
	return templ.EscapeString(s)
}

// Markup returns a component that writes s verbatim.
func Markup(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}
