package details

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
	"codeslabs/frontend/shared/richtext"
	"codeslabs/infrastructure/content"
	"codeslabs/infrastructure/restclient"
)

var categoryLabels = map[richtext.Category]string{
	richtext.CategorySecurity:   "Seguridad",
	richtext.CategoryTechnology: "Tecnología",
	richtext.CategoryBenefits:   "Beneficios",
	richtext.CategoryFeatures:   "Características",
	richtext.CategoryOther:      "Otros",
}

func detailsURL(projectID string) string {
	return "/admin/projects/" + url.PathEscape(projectID) + "/details"
}

// DetailsPageQueryHandler lists the details of a project with a create form.
func DetailsPageQueryHandler(api DetailsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := strings.TrimSpace(chi.URLParam(r, "id"))
		project, err := api.GetProject(r.Context(), projectID)
		if err != nil {
			msg := restclient.Message(err)
			if errors.Is(err, restclient.ErrNotFound) {
				msg = "Proyecto no encontrado"
			}
			http.Redirect(w, r, "/admin?error="+url.QueryEscape(msg), http.StatusSeeOther)
			return
		}

		data := DetailsPageData{ProjectID: project.ID, ProjectTitle: project.Title}
		query := r.URL.Query()
		page := html.Page{
			Title:   "Detalles de " + project.Title,
			Nav:     nav.BuildTopNavData(r.URL.Path, true),
			Status:  strings.TrimSpace(query.Get("status")),
			Error:   strings.TrimSpace(query.Get("error")),
			NoIndex: true,
		}

		details, err := api.ListProjectDetails(r.Context(), projectID)
		if err != nil {
			slog.Error("list project details failed", slog.String("project_id", projectID), slog.Any("err", err))
			page.Error = restclient.Message(err)
		}
		for _, d := range details {
			data.Rows = append(data.Rows, DetailRow{
				ID:           d.ID,
				Body:         d.ProjectDetail,
				PreviewHTML:  richtext.Render(d.ProjectDetail),
				Category:     categoryLabels[richtext.CategoryOf(d.ProjectDetail)],
				DisplayOrder: d.DisplayOrder,
				IsActive:     d.IsActive,
			})
		}
		data.NextOrder = len(details)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := html.Layout(page, DetailsPage(data)).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render details page", http.StatusInternalServerError)
			return
		}
	}
}

func CreateDetailCommandHandler(api DetailsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := strings.TrimSpace(chi.URLParam(r, "id"))
		in, err := parseDetailForm(r)
		if err != nil {
			redirectError(w, r, projectID, err)
			return
		}
		if _, err := api.CreateProjectDetail(r.Context(), projectID, in); err != nil {
			slog.Error("create detail failed", slog.String("project_id", projectID), slog.Any("err", err))
			redirectError(w, r, projectID, err)
			return
		}
		http.Redirect(w, r, detailsURL(projectID)+"?status="+url.QueryEscape("Detalle agregado exitosamente"), http.StatusSeeOther)
	}
}

func UpdateDetailCommandHandler(api DetailsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := strings.TrimSpace(chi.URLParam(r, "id"))
		detailID := strings.TrimSpace(chi.URLParam(r, "detailID"))
		in, err := parseDetailForm(r)
		if err != nil {
			redirectError(w, r, projectID, err)
			return
		}
		if _, err := api.UpdateProjectDetail(r.Context(), detailID, in); err != nil {
			slog.Error("update detail failed", slog.String("detail_id", detailID), slog.Any("err", err))
			redirectError(w, r, projectID, err)
			return
		}
		http.Redirect(w, r, detailsURL(projectID)+"?status="+url.QueryEscape("Detalle actualizado exitosamente"), http.StatusSeeOther)
	}
}

func DeleteDetailCommandHandler(api DetailsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := strings.TrimSpace(chi.URLParam(r, "id"))
		detailID := strings.TrimSpace(chi.URLParam(r, "detailID"))
		if err := api.DeleteProjectDetail(r.Context(), detailID); err != nil {
			slog.Error("delete detail failed", slog.String("detail_id", detailID), slog.Any("err", err))
			redirectError(w, r, projectID, err)
			return
		}
		http.Redirect(w, r, detailsURL(projectID)+"?status="+url.QueryEscape("Detalle eliminado exitosamente"), http.StatusSeeOther)
	}
}

// parseDetailForm reads body, displayOrder and isActive. An empty order is
// left nil so the backend assigns one.
func parseDetailForm(r *http.Request) (content.DetailInput, error) {
	if err := r.ParseForm(); err != nil {
		return content.DetailInput{}, &content.ValidationError{Field: "form", Message: "Solicitud inválida"}
	}
	in := content.DetailInput{ProjectDetail: r.FormValue("projectDetail")}
	if strings.TrimSpace(in.ProjectDetail) == "" {
		return in, &content.ValidationError{Field: "projectDetail", Message: "El detalle es obligatorio"}
	}
	if s := strings.TrimSpace(r.FormValue("displayOrder")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return in, &content.ValidationError{Field: "displayOrder", Message: "El orden debe ser mayor o igual a 0"}
		}
		in.DisplayOrder = &n
	}
	active := r.FormValue("isActive") != ""
	in.IsActive = &active
	return in, nil
}

func redirectError(w http.ResponseWriter, r *http.Request, projectID string, err error) {
	msg := restclient.Message(err)
	var ve *content.ValidationError
	if errors.As(err, &ve) {
		msg = ve.Message
	}
	http.Redirect(w, r, detailsURL(projectID)+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
