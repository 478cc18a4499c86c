package projectform

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"codeslabs/frontend/shared/html"
)

func ProjectForm(title string, f FormData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<section class="admin"><header class="section-header"><h1>%s</h1><a class="btn btn-ghost" href="/admin">Cancelar</a></header>`, html.Esc(title))
		fmt.Fprintf(&b, `<form class="form" method="post" action="%s">`, html.Esc(f.Action()))
		input(&b, "title", "Título", f.Title, `required maxlength="255"`)
		textarea(&b, "description", "Descripción", f.Description, 3, "required")
		input(&b, "category", "Categoría", f.Category, `required maxlength="100"`)
		input(&b, "iconName", "Icono", f.IconName, "")
		textarea(&b, "stats", "Estadísticas (una por línea, clave:valor)", f.StatsText, 4, "")
		textarea(&b, "technologies", "Tecnologías (una por línea)", f.TechText, 4, "")
		textarea(&b, "whatIs", "¿Qué es?", f.WhatIs, 3, "")
		textarea(&b, "forWho", "¿Para quién?", f.ForWho, 3, "")
		textarea(&b, "problemSolved", "Problema resuelto", f.ProblemSolved, 3, "")
		textarea(&b, "result", "Resultado", f.Result, 3, "")
		input(&b, "displayOrder", "Orden", f.DisplayOrder, `type="number" min="0"`)
		checked := ""
		if f.IsActive {
			checked = " checked"
		}
		fmt.Fprintf(&b, `<label class="check"><input type="checkbox" name="isActive" value="1"%s> Activo</label>`, checked)
		b.WriteString(`<button class="btn" type="submit">Guardar</button></form></section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func input(b *strings.Builder, name, label, value, attrs string) {
	if !strings.Contains(attrs, "type=") {
		attrs = strings.TrimSpace(`type="text" ` + attrs)
	}
	fmt.Fprintf(b, `<label for="%[1]s">%[2]s</label><input id="%[1]s" name="%[1]s" %[3]s value="%[4]s">`,
		name, html.Esc(label), attrs, html.Esc(value))
}

func textarea(b *strings.Builder, name, label, value string, rows int, attrs string) {
	fmt.Fprintf(b, `<label for="%[1]s">%[2]s</label><textarea id="%[1]s" name="%[1]s" rows="%[3]d" %[4]s>%[5]s</textarea>`,
		name, html.Esc(label), rows, attrs, html.Esc(value))
}
