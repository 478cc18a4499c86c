package projectform

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
	"codeslabs/infrastructure/content"
	"codeslabs/infrastructure/restclient"
)

// NewProjectPageQueryHandler renders an empty create form.
func NewProjectPageQueryHandler(w http.ResponseWriter, r *http.Request) {
	form := FormData{IconName: content.DefaultIconName, DisplayOrder: "0", IsActive: true}
	renderForm(w, r, http.StatusOK, form, strings.TrimSpace(r.URL.Query().Get("error")))
}

// EditProjectPageQueryHandler renders the form filled with the stored project.
func EditProjectPageQueryHandler(api ProjectsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		project, err := api.GetProject(r.Context(), id)
		if err != nil {
			if errors.Is(err, restclient.ErrNotFound) {
				http.Redirect(w, r, "/admin?error="+url.QueryEscape("Proyecto no encontrado"), http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/admin?error="+url.QueryEscape(restclient.Message(err)), http.StatusSeeOther)
			return
		}
		renderForm(w, r, http.StatusOK, formFromProject(project), strings.TrimSpace(r.URL.Query().Get("error")))
	}
}

func CreateProjectCommandHandler(api ProjectsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/admin/projects/new?error="+url.QueryEscape("Solicitud inválida"), http.StatusSeeOther)
			return
		}
		form := formFromRequest(r)
		in, err := form.Input()
		if err != nil {
			renderForm(w, r, http.StatusBadRequest, form, errorMessage(err))
			return
		}
		if _, err := api.CreateProject(r.Context(), in); err != nil {
			slog.Error("create project failed", slog.Any("err", err))
			renderForm(w, r, http.StatusBadGateway, form, "Error al crear el proyecto: "+errorMessage(err))
			return
		}
		http.Redirect(w, r, "/admin?status="+url.QueryEscape("Proyecto creado exitosamente"), http.StatusSeeOther)
	}
}

func UpdateProjectCommandHandler(api ProjectsAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/admin/projects/"+url.PathEscape(id)+"/edit?error="+url.QueryEscape("Solicitud inválida"), http.StatusSeeOther)
			return
		}
		form := formFromRequest(r)
		form.ID = id
		in, err := form.Input()
		if err != nil {
			renderForm(w, r, http.StatusBadRequest, form, errorMessage(err))
			return
		}
		if _, err := api.UpdateProject(r.Context(), id, in); err != nil {
			slog.Error("update project failed", slog.String("project_id", id), slog.Any("err", err))
			if errors.Is(err, restclient.ErrNotFound) {
				http.Redirect(w, r, "/admin?error="+url.QueryEscape("Proyecto no encontrado"), http.StatusSeeOther)
				return
			}
			renderForm(w, r, http.StatusBadGateway, form, "Error al actualizar el proyecto: "+errorMessage(err))
			return
		}
		http.Redirect(w, r, "/admin?status="+url.QueryEscape("Proyecto actualizado exitosamente"), http.StatusSeeOther)
	}
}

func errorMessage(err error) string {
	var ve *content.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return restclient.Message(err)
}

func renderForm(w http.ResponseWriter, r *http.Request, status int, form FormData, errMsg string) {
	title := "Nuevo proyecto"
	if form.IsEdit() {
		title = "Editar proyecto"
	}
	page := html.Page{
		Title:   title,
		Nav:     nav.BuildTopNavData(r.URL.Path, true),
		Error:   errMsg,
		NoIndex: true,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := html.Layout(page, ProjectForm(title, form)).Render(r.Context(), w); err != nil {
		slog.Error("render project form failed", slog.Any("err", err))
	}
}
