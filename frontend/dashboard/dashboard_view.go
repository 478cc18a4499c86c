package dashboard

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"codeslabs/frontend/shared/html"
)

func DashboardPage(data DashboardPageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="hero"><h1>Codes-Labs</h1><p class="lead">Proyectos tecnológicos impulsados por inteligencia artificial</p>`)
		b.WriteString(`<a class="btn" href="/contacto">Contáctanos</a></section>`)

		b.WriteString(`<section class="projects"><h2>Nuestros Proyectos</h2>`)
		switch {
		case data.LoadError != "":
			fmt.Fprintf(&b, `<div class="alert alert-error" role="alert">%s</div>`, html.Esc(data.LoadError))
		case len(data.Projects) == 0:
			b.WriteString(`<p class="empty">Aún no hay proyectos publicados</p>`)
		default:
			b.WriteString(`<div class="grid grid-3">`)
			for _, p := range data.Projects {
				writeProjectCard(&b, p)
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</section>`)

		if len(data.Values) > 0 {
			b.WriteString(`<section class="company-values"><h2>Nuestros Valores</h2><div class="grid grid-4">`)
			for _, v := range data.Values {
				fmt.Fprintf(&b, `<article class="card"><span class="icon icon-%s" aria-hidden="true"></span><h3>%s</h3><p>%s</p></article>`,
					html.Esc(v.IconName), html.Esc(v.Title), html.Esc(v.Description))
			}
			b.WriteString(`</div></section>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeProjectCard(b *strings.Builder, p ProjectCard) {
	fmt.Fprintf(b, `<article class="card project-card"><header><span class="icon icon-%s" aria-hidden="true"></span><span class="badge">%s</span></header>`,
		html.Esc(p.IconName), html.Esc(p.Category))
	fmt.Fprintf(b, `<h3><a href="/proyectos/%s">%s</a></h3><p>%s</p>`, html.Esc(p.ID), html.Esc(p.Title), html.Esc(p.Description))
	if len(p.Stats) > 0 {
		b.WriteString(`<dl class="stat-chips">`)
		for _, s := range p.Stats {
			fmt.Fprintf(b, `<div><dt>%s</dt><dd>%s</dd></div>`, html.Esc(s.Label), html.Esc(s.Value))
		}
		b.WriteString(`</dl>`)
	}
	if len(p.Technologies) > 0 {
		b.WriteString(`<ul class="chips">`)
		for _, t := range p.Technologies {
			fmt.Fprintf(b, `<li>%s</li>`, html.Esc(t))
		}
		b.WriteString(`</ul>`)
	}
	fmt.Fprintf(b, `<a class="btn btn-ghost" href="/proyectos/%s">Ver detalles</a></article>`, html.Esc(p.ID))
}
