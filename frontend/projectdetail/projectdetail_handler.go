package projectdetail

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"codeslabs/frontend/notfound"
	sessioncontext "codeslabs/frontend/shared/context"
	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
	"codeslabs/infrastructure/restclient"
	"codeslabs/models"
)

// loadPublicProject fetches a project and hides inactive ones. It writes the
// error response itself and returns false when the caller should stop.
func loadPublicProject(w http.ResponseWriter, r *http.Request, api ProjectGetter) (models.Project, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	project, err := api.GetProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, restclient.ErrNotFound) {
			notfound.Render(w, r)
			return models.Project{}, false
		}
		slog.Error("load project failed", slog.String("project_id", id), slog.Any("err", err))
		renderLoadError(w, r, restclient.Message(err))
		return models.Project{}, false
	}
	if !project.IsActive {
		notfound.Render(w, r)
		return models.Project{}, false
	}
	return project, true
}

// ProjectPageQueryHandler renders the public case-study page.
func ProjectPageQueryHandler(api ProjectGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := loadPublicProject(w, r, api)
		if !ok {
			return
		}
		page := html.Page{
			Title: project.Title,
			Nav:   nav.BuildTopNavData(r.URL.Path, sessioncontext.IsAdmin(r.Context())),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := html.Layout(page, ProjectPage(BuildPageData(project))).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render project page", http.StatusInternalServerError)
			return
		}
	}
}

// ProjectSheetPDFHandler serves the printable sheet. The QR code points at
// the public page under publicBaseURL.
func ProjectSheetPDFHandler(api ProjectGetter, publicBaseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := loadPublicProject(w, r, api)
		if !ok {
			return
		}
		pageURL := strings.TrimRight(publicBaseURL, "/") + "/proyectos/" + project.ID
		pdfBytes, err := RenderProjectSheetPDF(BuildPageData(project), pageURL, time.Now())
		if err != nil {
			slog.Error("render project sheet failed", slog.String("project_id", project.ID), slog.Any("err", err))
			http.Error(w, "failed to build project sheet", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "inline; filename=ficha-"+project.ID+".pdf")
		_, _ = w.Write(pdfBytes)
	}
}

func renderLoadError(w http.ResponseWriter, r *http.Request, msg string) {
	page := html.Page{
		Title: "Proyecto",
		Nav:   nav.BuildTopNavData(r.URL.Path, sessioncontext.IsAdmin(r.Context())),
		Error: msg,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	if err := html.Layout(page, html.Markup(`<p><a class="btn" href="/">Volver al inicio</a></p>`)).Render(r.Context(), w); err != nil {
		slog.Error("render project error page failed", slog.Any("err", err))
	}
}
