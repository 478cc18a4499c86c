package activity

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"codeslabs/frontend/shared/html"
)

func ActivityPage(data ActivityPageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<section class="admin"><header class="section-header"><h1>Actividad: %s</h1><a class="btn btn-ghost" href="/admin">Volver</a></header>`, html.Esc(data.ProjectTitle))
		if len(data.Rows) == 0 {
			b.WriteString(`<p class="empty">Sin actividad registrada</p></section>`)
			_, err := io.WriteString(w, b.String())
			return err
		}
		b.WriteString(`<table class="table"><thead><tr><th>Fecha</th><th>Acción</th><th>Entidad</th><th>Antes</th><th>Después</th></tr></thead><tbody>`)
		for _, row := range data.Rows {
			fmt.Fprintf(&b, `<tr><td>%s</td><td title="%s">%s</td><td>%s %s</td><td><code>%s</code></td><td><code>%s</code></td></tr>`,
				html.Esc(row.CreatedAt), html.Esc(row.Action), html.Esc(row.Label),
				html.Esc(row.EntityType), html.Esc(row.EntityID),
				html.Esc(row.BeforeJSON), html.Esc(row.AfterJSON))
		}
		b.WriteString(`</tbody></table></section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
