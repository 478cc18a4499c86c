package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"codeslabs/frontend/about"
	"codeslabs/frontend/activity"
	"codeslabs/frontend/admin"
	"codeslabs/frontend/adminlogin"
	"codeslabs/frontend/contact"
	"codeslabs/frontend/dashboard"
	"codeslabs/frontend/details"
	"codeslabs/frontend/projectdetail"
	"codeslabs/frontend/projectform"
	sessioncontext "codeslabs/frontend/shared/context"
)

// RegisterPublicRoutes registers the marketing pages.
func (s *Server) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", dashboard.DashboardPageQueryHandler(s.API))
	r.Get("/about", about.AboutPageQueryHandler)
	r.Get("/contacto", contact.ContactPageQueryHandler)
	r.Post("/contacto", contact.SendContactCommandHandler(s.API))
	r.Get("/proyectos/{id}", projectdetail.ProjectPageQueryHandler(s.API))
	r.Get("/proyectos/{id}/ficha.pdf", projectdetail.ProjectSheetPDFHandler(s.API, s.PublicBaseURL))
}

// RegisterLoginRoutes registers the admin key form and logout; they sit
// under /admin outside the session guard.
func (s *Server) RegisterLoginRoutes(r chi.Router) {
	r.Get("/login", func(w http.ResponseWriter, req *http.Request) {
		if sessioncontext.IsAdmin(req.Context()) {
			http.Redirect(w, req, "/admin", http.StatusSeeOther)
			return
		}
		adminlogin.GetLoginScreenHandler(w, req)
	})
	r.Post("/login", adminlogin.CreateLoginHandler(s.Keys, s.Sessions))
	r.Post("/logout", adminlogin.LogoutHandler(s.Sessions))
}

// RegisterAdminRoutes registers the session-guarded console.
func (s *Server) RegisterAdminRoutes(r chi.Router) {
	r.Get("/", admin.ProjectsPageQueryHandler(s.API))
	r.Get("/projects.csv", admin.ProjectsCSVHandler(s.API))

	r.Get("/projects/new", projectform.NewProjectPageQueryHandler)
	r.Post("/projects", projectform.CreateProjectCommandHandler(s.API))
	r.Get("/projects/{id}/edit", projectform.EditProjectPageQueryHandler(s.API))
	r.Post("/projects/{id}", projectform.UpdateProjectCommandHandler(s.API))
	r.Post("/projects/{id}/delete", admin.DeleteProjectCommandHandler(s.API))

	r.Get("/projects/{id}/details", details.DetailsPageQueryHandler(s.API))
	r.Post("/projects/{id}/details", details.CreateDetailCommandHandler(s.API))
	r.Post("/projects/{id}/details/{detailID}", details.UpdateDetailCommandHandler(s.API))
	r.Post("/projects/{id}/details/{detailID}/delete", details.DeleteDetailCommandHandler(s.API))

	r.Get("/projects/{id}/activity", activity.ActivityPageQueryHandler(s.API, s.DB))
}
