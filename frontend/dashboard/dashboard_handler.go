package dashboard

import (
	"net/http"

	sessioncontext "codeslabs/frontend/shared/context"
	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
)

// DashboardPageQueryHandler renders the public home page.
func DashboardPageQueryHandler(api ContentAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := LoadDashboardPageData(r.Context(), api)
		page := html.Page{
			Nav:    nav.BuildTopNavData(r.URL.Path, sessioncontext.IsAdmin(r.Context())),
			Status: r.URL.Query().Get("status"),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := html.Layout(page, DashboardPage(data)).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
			return
		}
	}
}
