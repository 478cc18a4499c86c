package adminlogin

import (
	"log/slog"
	"net/http"

	"codeslabs/infrastructure/session"
)

// LogoutHandler removes the session and clears the cookie.
func LogoutHandler(sessions Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err == nil && cookie.Value != "" {
			if err := sessions.Delete(r.Context(), cookie.Value); err != nil {
				slog.Error("delete admin session failed", slog.Any("err", err))
			}
		}
		http.SetCookie(w, session.ClearCookie())
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
