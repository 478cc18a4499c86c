package notfound

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	sessioncontext "codeslabs/frontend/shared/context"
	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
)

// Handler renders the 404 page for unknown routes.
func Handler(w http.ResponseWriter, r *http.Request) {
	Render(w, r)
}

// Render writes the 404 page with status 404.
func Render(w http.ResponseWriter, r *http.Request) {
	page := html.Page{
		Title: "Página no encontrada",
		Nav:   nav.BuildTopNavData(r.URL.Path, sessioncontext.IsAdmin(r.Context())),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := html.Layout(page, NotFoundPage()).Render(r.Context(), w); err != nil {
		slog.Error("render not found page failed", slog.Any("err", err))
	}
}

func NotFoundPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="not-found"><h1>404</h1>`+
			`<p>La página que buscas no existe o fue movida.</p>`+
			`<a class="btn" href="/">Volver al inicio</a></section>`)
		return err
	})
}
