package admin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"codeslabs/frontend/shared/html"
)

// ProjectsPage renders the searchable, paginated project table.
func ProjectsPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="admin"><header class="section-header"><h1>Proyectos</h1>`)
		b.WriteString(`<div class="actions"><a class="btn" href="/admin/projects/new">Nuevo proyecto</a>`)
		fmt.Fprintf(&b, `<a class="btn btn-ghost" href="%s">Exportar CSV</a>`, html.Esc(exportURL(data.Search, data.Category)))
		b.WriteString(`</div></header>`)

		if data.LoadError != "" {
			fmt.Fprintf(&b, `<div class="alert alert-error" role="alert">%s</div>`, html.Esc(data.LoadError))
		}

		b.WriteString(`<form class="filters" method="get" action="/admin">`)
		fmt.Fprintf(&b, `<input type="search" name="q" placeholder="Buscar proyectos" value="%s">`, html.Esc(data.Search))
		b.WriteString(`<select name="category"><option value="">Todas las categorías</option>`)
		for _, c := range data.Categories {
			selected := ""
			if c == data.Category {
				selected = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, html.Esc(c), selected, html.Esc(c))
		}
		b.WriteString(`</select><button class="btn" type="submit">Filtrar</button></form>`)

		if len(data.Rows) == 0 {
			b.WriteString(`<p class="empty">No se encontraron proyectos</p>`)
		} else {
			writeTable(&b, data.Rows)
		}
		writePagination(&b, data)
		b.WriteString(`</section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeTable(b *strings.Builder, rows []ProjectRow) {
	b.WriteString(`<table class="table"><thead><tr><th>Orden</th><th>Título</th><th>Categoría</th><th>Tecnologías</th><th>Estado</th><th></th></tr></thead><tbody>`)
	for _, row := range rows {
		state := `<span class="badge badge-muted">Inactivo</span>`
		if row.IsActive {
			state = `<span class="badge badge-ok">Activo</span>`
		}
		fmt.Fprintf(b, `<tr><td>%d</td><td><a href="/proyectos/%s">%s</a></td><td>%s</td><td>%s</td><td>%s</td>`,
			row.DisplayOrder, html.Esc(row.ID), html.Esc(row.Title), html.Esc(row.Category),
			html.Esc(strings.Join(row.Technologies, ", ")), state)
		fmt.Fprintf(b, `<td class="row-actions"><a href="/admin/projects/%[1]s/edit">Editar</a> <a href="/admin/projects/%[1]s/details">Detalles</a> <a href="/admin/projects/%[1]s/activity">Actividad</a> `, html.Esc(row.ID))
		fmt.Fprintf(b, `<form method="post" action="/admin/projects/%s/delete" data-confirm="¿Eliminar el proyecto %s?"><button class="btn btn-danger" type="submit">Eliminar</button></form></td></tr>`,
			html.Esc(row.ID), html.Esc(row.Title))
	}
	b.WriteString(`</tbody></table>`)
}

func writePagination(b *strings.Builder, data PageData) {
	p := data.Pagination
	if p.Total == 0 {
		return
	}
	fmt.Fprintf(b, `<nav class="pagination"><span>Mostrando %d-%d de %d</span>`, p.StartIndex, p.EndIndex, p.Total)
	if p.TotalPages > 1 {
		if p.HasPrev() {
			fmt.Fprintf(b, `<a href="%s">Anterior</a>`, html.Esc(listURL(data.Search, data.Category, p.Page-1)))
		}
		for _, n := range p.Pages {
			if n == p.Page {
				fmt.Fprintf(b, `<span class="current">%d</span>`, n)
				continue
			}
			fmt.Fprintf(b, `<a href="%s">%d</a>`, html.Esc(listURL(data.Search, data.Category, n)), n)
		}
		if p.HasNext() {
			fmt.Fprintf(b, `<a href="%s">Siguiente</a>`, html.Esc(listURL(data.Search, data.Category, p.Page+1)))
		}
	}
	b.WriteString(`</nav>`)
}

func exportURL(search, category string) string {
	return strings.Replace(listURL(search, category, 1), "/admin", "/admin/projects.csv", 1)
}
