package adminlogin

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"codeslabs/infrastructure/argon"
)

const (
	loginPath     = "/admin/login"
	afterLoginURL = "/admin"
)

// CreateLoginHandler checks the shared admin key and issues a session cookie.
func CreateLoginHandler(keys KeyVerifier, sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, loginPath+"?error="+url.QueryEscape("Solicitud inválida"), http.StatusSeeOther)
			return
		}

		key := strings.TrimSpace(r.FormValue("key"))
		if key == "" {
			http.Redirect(w, r, loginPath+"?error="+url.QueryEscape("Ingresa la clave de administración"), http.StatusSeeOther)
			return
		}

		if err := keys.Verify(key); err != nil {
			if !errors.Is(err, argon.ErrKeyMismatch) {
				slog.Error("admin key verification failed", slog.Any("err", err))
			}
			http.Redirect(w, r, loginPath+"?error="+url.QueryEscape("Clave incorrecta"), http.StatusSeeOther)
			return
		}

		_, cookie, err := sessions.Create(r.Context())
		if err != nil {
			slog.Error("create admin session failed", slog.Any("err", err))
			http.Redirect(w, r, loginPath+"?error="+url.QueryEscape("No se pudo iniciar la sesión"), http.StatusSeeOther)
			return
		}

		http.SetCookie(w, cookie)
		http.Redirect(w, r, afterLoginURL, http.StatusSeeOther)
	}
}
