package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"codeslabs/models"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders t as "4 de mayo de 2026, 09:30".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d, %02d:%02d", t.Day(), spanishMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

const contactEmailStyle = `body{font-family:'Segoe UI',Tahoma,Geneva,Verdana,sans-serif;line-height:1.6;color:#333;max-width:600px;margin:0 auto;padding:20px;background-color:#f5f5f5}
.email-container{background-color:#fff;border-radius:8px;padding:30px}
.header{background:linear-gradient(135deg,#06b6d4 0%,#0891b2 100%);color:#fff;padding:20px;border-radius:8px 8px 0 0;margin:-30px -30px 30px -30px}
.info-section{margin-bottom:25px;padding-bottom:20px;border-bottom:1px solid #e5e5e5}
.info-label{font-weight:600;color:#06b6d4;font-size:14px;text-transform:uppercase;letter-spacing:.5px}
.comments-section{background-color:#f8f9fa;padding:20px;border-radius:6px;border-left:4px solid #06b6d4}
.footer{margin-top:30px;padding-top:20px;border-top:1px solid #e5e5e5;text-align:center;color:#666;font-size:12px}`

// ContactEmail is the HTML body of a contact notification. Comments are
// expected to be sanitized already and are written as markup.
func ContactEmail(msg models.ContactMessage, at time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8"><style>`)
		b.WriteString(contactEmailStyle)
		b.WriteString(`</style></head><body><div class="email-container">`)
		b.WriteString(`<div class="header"><h1>Nuevo Contacto - Codes-Labs</h1></div>`)
		section(&b, "Nombre de Contacto", templ.EscapeString(msg.ContactName))
		section(&b, "Empresa", templ.EscapeString(msg.CompanyName))
		section(&b, "Email de Contacto", fmt.Sprintf(`<a href="mailto:%s">%s</a>`,
			templ.EscapeString(msg.Email), templ.EscapeString(msg.Email)))
		section(&b, "Teléfono de Contacto", fmt.Sprintf(`<a href="tel:%s">%s</a>`,
			templ.EscapeString(msg.Phone), templ.EscapeString(msg.Phone)))
		if msg.Comments != "" {
			b.WriteString(`<div class="comments-section"><div class="info-label">Comentarios / Mensaje</div><div class="info-value">`)
			b.WriteString(msg.Comments)
			b.WriteString(`</div></div>`)
		}
		b.WriteString(`<div class="footer"><div>Codes-Labs</div><div>Este mensaje fue enviado desde el formulario de contacto</div>`)
		fmt.Fprintf(&b, `<div>Fecha: %s</div></div></div></body></html>`, templ.EscapeString(FormatDate(at)))
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func section(b *strings.Builder, label, valueHTML string) {
	fmt.Fprintf(b, `<div class="info-section"><div class="info-label">%s</div><div class="info-value">%s</div></div>`,
		templ.EscapeString(label), valueHTML)
}

func RenderContactHTML(ctx context.Context, msg models.ContactMessage, at time.Time) (string, error) {
	var b strings.Builder
	if err := ContactEmail(msg, at).Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ContactText is the plain-text alternative of the notification.
func ContactText(msg models.ContactMessage, at time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", 55)
	fmt.Fprintf(&b, "%s\n  NUEVO CONTACTO - CODES-LABS\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "NOMBRE DE CONTACTO:\n   %s\n\n", msg.ContactName)
	fmt.Fprintf(&b, "EMPRESA:\n   %s\n\n", msg.CompanyName)
	fmt.Fprintf(&b, "EMAIL DE CONTACTO:\n   %s\n\n", msg.Email)
	fmt.Fprintf(&b, "TELÉFONO DE CONTACTO:\n   %s\n\n", msg.Phone)
	if msg.Comments != "" {
		fmt.Fprintf(&b, "COMENTARIOS / MENSAJE:\n   %s\n\n", strings.ReplaceAll(msg.Comments, "<br>", "\n   "))
	}
	fmt.Fprintf(&b, "%s\nFecha: %s\n%s\n", rule, FormatDate(at), rule)
	return b.String()
}
