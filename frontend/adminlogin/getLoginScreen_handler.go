package adminlogin

import (
	"net/http"
	"strings"

	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
)

// GetLoginScreenHandler renders the admin key form.
func GetLoginScreenHandler(w http.ResponseWriter, r *http.Request) {
	page := html.Page{
		Title:   "Acceso administrativo",
		Nav:     nav.BuildTopNavData(r.URL.Path, false),
		Error:   strings.TrimSpace(r.URL.Query().Get("error")),
		NoIndex: true,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := html.Layout(page, LoginScreen()).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render login screen", http.StatusInternalServerError)
		return
	}
}
