package activity

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
	"codeslabs/infrastructure/restclient"
	"codeslabs/infrastructure/sqlite"
)

// ActivityPageQueryHandler lists the audit entries recorded for a project.
func ActivityPageQueryHandler(api ProjectGetter, db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := strings.TrimSpace(chi.URLParam(r, "id"))
		project, err := api.GetProject(r.Context(), projectID)
		if err != nil {
			if errors.Is(err, restclient.ErrNotFound) {
				http.Redirect(w, r, "/admin?error="+url.QueryEscape("Proyecto no encontrado"), http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/admin?error="+url.QueryEscape(restclient.Message(err)), http.StatusSeeOther)
			return
		}

		rows, err := LoadActivityRows(r.Context(), db, projectID)
		if err != nil {
			slog.Error("load project activity failed", slog.String("project_id", projectID), slog.Any("err", err))
			http.Error(w, "failed to load project activity", http.StatusInternalServerError)
			return
		}

		data := ActivityPageData{ProjectID: project.ID, ProjectTitle: project.Title, Rows: rows}
		page := html.Page{
			Title:   "Actividad de " + project.Title,
			Nav:     nav.BuildTopNavData(r.URL.Path, true),
			NoIndex: true,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := html.Layout(page, ActivityPage(data)).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render project activity page", http.StatusInternalServerError)
			return
		}
	}
}
