package contact

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"codeslabs/frontend/shared/html"
	"codeslabs/models"
)

// ContactPage renders the form; invalidField gets aria-invalid.
func ContactPage(in models.ContactInput, invalidField string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section class="contact"><header class="section-header"><div><h1>Contacto</h1>`)
		b.WriteString(`<p class="lead">Cuéntanos sobre tu proyecto y te responderemos a la brevedad</p></div></header>`)
		b.WriteString(`<form class="form" method="post" action="/contacto">`)
		field(&b, "nombreContacto", "Nombre de contacto", "text", in.ContactName, invalidField, `required minlength="2"`)
		field(&b, "nombreEmpresa", "Nombre de la empresa", "text", in.CompanyName, invalidField, `required minlength="2"`)
		field(&b, "emailContacto", "Correo electrónico", "email", in.Email, invalidField, "required")
		field(&b, "telefonoContacto", "Teléfono", "tel", in.Phone, invalidField, "required")
		fmt.Fprintf(&b, `<label for="comentarios">Comentarios</label><textarea id="comentarios" name="comentarios" rows="5">%s</textarea>`, html.Esc(in.Comments))
		b.WriteString(`<button class="btn" type="submit">Enviar mensaje</button></form></section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func field(b *strings.Builder, name, label, kind, value, invalidField, attrs string) {
	invalid := ""
	if name == invalidField {
		invalid = ` aria-invalid="true"`
	}
	fmt.Fprintf(b, `<label for="%[1]s">%[2]s</label><input id="%[1]s" name="%[1]s" type="%[3]s" value="%[4]s" %[5]s%[6]s>`,
		name, html.Esc(label), kind, html.Esc(value), attrs, invalid)
}
