package details

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"codeslabs/frontend/shared/html"
)

func DetailsPage(data DetailsPageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		base := detailsURL(data.ProjectID)
		fmt.Fprintf(&b, `<section class="admin"><header class="section-header"><h1>Detalles: %s</h1><a class="btn btn-ghost" href="/admin">Volver</a></header>`, html.Esc(data.ProjectTitle))

		b.WriteString(`<h2>Nuevo detalle</h2>`)
		writeDetailForm(&b, base, "", data.NextOrder, true, "Agregar")

		if len(data.Rows) == 0 {
			b.WriteString(`<p class="empty">Este proyecto aún no tiene detalles</p>`)
		}
		for _, row := range data.Rows {
			state := "Activo"
			if !row.IsActive {
				state = "Inactivo"
			}
			fmt.Fprintf(&b, `<article class="detail-card"><header><span class="badge">%s</span> <span class="muted">Orden %d · %s</span></header>`,
				html.Esc(row.Category), row.DisplayOrder, state)
			fmt.Fprintf(&b, `<div class="rich-text">%s</div>`, row.PreviewHTML)
			writeDetailForm(&b, base+"/"+row.ID, row.Body, row.DisplayOrder, row.IsActive, "Guardar")
			fmt.Fprintf(&b, `<form method="post" action="%s/%s/delete" data-confirm="¿Eliminar este detalle?"><button class="btn btn-danger" type="submit">Eliminar</button></form></article>`,
				html.Esc(base), html.Esc(row.ID))
		}
		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeDetailForm(b *strings.Builder, action, body string, order int, active bool, submit string) {
	checked := ""
	if active {
		checked = " checked"
	}
	fmt.Fprintf(b, `<form class="form" method="post" action="%s"><textarea name="projectDetail" rows="6" required>%s</textarea>`, html.Esc(action), html.Esc(body))
	fmt.Fprintf(b, `<label>Orden <input type="number" min="0" name="displayOrder" value="%d"></label>`, order)
	fmt.Fprintf(b, `<label class="check"><input type="checkbox" name="isActive" value="1"%s> Activo</label>`, checked)
	fmt.Fprintf(b, `<button class="btn" type="submit">%s</button></form>`, html.Esc(submit))
}
