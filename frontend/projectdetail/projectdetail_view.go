package projectdetail

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"codeslabs/frontend/shared/html"
)

func ProjectPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := data.Project
		var b strings.Builder
		fmt.Fprintf(&b, `<article class="project"><header class="project-hero"><span class="icon icon-%s" aria-hidden="true"></span>`, html.Esc(p.IconName))
		fmt.Fprintf(&b, `<span class="badge">%s</span><h1>%s</h1><p class="lead">%s</p>`, html.Esc(p.Category), html.Esc(p.Title), html.Esc(p.Description))
		fmt.Fprintf(&b, `<a class="btn btn-ghost" href="/proyectos/%s/ficha.pdf">Descargar ficha</a></header>`, html.Esc(p.ID))

		if len(data.Stats) > 0 {
			b.WriteString(`<section class="stats"><dl>`)
			for _, s := range data.Stats {
				fmt.Fprintf(&b, `<div class="stat"><dt>%s</dt><dd>%s</dd></div>`, html.Esc(s.Label), html.Esc(s.Value))
			}
			b.WriteString(`</dl></section>`)
		}

		if len(p.Technologies) > 0 {
			b.WriteString(`<section class="technologies"><h2>Stack tecnológico</h2><ul class="chips">`)
			for _, t := range p.Technologies {
				fmt.Fprintf(&b, `<li>%s</li>`, html.Esc(t))
			}
			b.WriteString(`</ul></section>`)
		}

		for _, n := range data.Narrative {
			fmt.Fprintf(&b, `<section class="narrative"><h2>%s</h2><p>%s</p></section>`, html.Esc(n.Label), html.Esc(n.Value))
		}

		for _, s := range data.Sections {
			fmt.Fprintf(&b, `<section class="details"><h2>%s</h2>`, html.Esc(s.Title))
			for _, block := range s.Blocks {
				// block is renderer output, already escaped.
				fmt.Fprintf(&b, `<div class="rich-text">%s</div>`, block)
			}
			b.WriteString(`</section>`)
		}

		b.WriteString(`<footer class="project-cta"><a class="btn" href="/contacto">¿Hablamos de tu proyecto?</a> <a class="btn btn-ghost" href="/">Ver todos los proyectos</a></footer></article>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
