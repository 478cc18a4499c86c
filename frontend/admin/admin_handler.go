package admin

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
	"codeslabs/infrastructure/restclient"
)

// ProjectsPageQueryHandler renders the admin project table. Query params:
// q (search), category, page.
func ProjectsPageQueryHandler(api ProjectsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		data := PageData{
			Search:   strings.TrimSpace(query.Get("q")),
			Category: strings.TrimSpace(query.Get("category")),
		}
		pageNum, _ := strconv.Atoi(query.Get("page"))

		projects, err := api.ListProjects(r.Context())
		if err != nil {
			slog.Error("admin list projects failed", slog.Any("err", err))
			data.LoadError = restclient.Message(err)
		}

		data.Categories = Categories(projects)
		filtered := FilterProjects(projects, data.Search, data.Category)
		data.Pagination = Paginate(len(filtered), pageNum, DefaultPageSize)
		for _, p := range PageOf(filtered, data.Pagination) {
			data.Rows = append(data.Rows, ProjectRow{
				ID:           p.ID,
				Title:        p.Title,
				Category:     p.Category,
				Technologies: p.Technologies,
				IsActive:     p.IsActive,
				DisplayOrder: p.DisplayOrder,
			})
		}

		page := html.Page{
			Title:   "Administración",
			Nav:     nav.BuildTopNavData(r.URL.Path, true),
			Status:  strings.TrimSpace(query.Get("status")),
			Error:   strings.TrimSpace(query.Get("error")),
			NoIndex: true,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := html.Layout(page, ProjectsPage(data)).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render admin page", http.StatusInternalServerError)
			return
		}
	}
}

func DeleteProjectCommandHandler(api ProjectsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if err := api.DeleteProject(r.Context(), id); err != nil {
			slog.Error("delete project failed", slog.String("project_id", id), slog.Any("err", err))
			http.Redirect(w, r, "/admin?error="+url.QueryEscape("Error al eliminar el proyecto: "+restclient.Message(err)), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/admin?status="+url.QueryEscape("Proyecto eliminado exitosamente"), http.StatusSeeOther)
	}
}

// listURL builds the admin list URL for a page, keeping the filters.
func listURL(search, category string, page int) string {
	v := url.Values{}
	if search != "" {
		v.Set("q", search)
	}
	if category != "" {
		v.Set("category", category)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return "/admin"
	}
	return "/admin?" + v.Encode()
}
