package adminlogin

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func LoginScreen() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="login"><h1>Acceso administrativo</h1>`+
			`<form method="post" action="/admin/login" class="form">`+
			`<label for="key">Clave de administración</label>`+
			`<input id="key" name="key" type="password" autocomplete="current-password" required autofocus>`+
			`<button class="btn" type="submit">Ingresar</button></form></section>`)
		return err
	})
}
