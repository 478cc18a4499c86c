// Package api serves the content REST endpoints consumed by the site and
// any external front end. Reads are public; mutations need the admin key as
// a bearer token.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"codeslabs/infrastructure/content"
	"codeslabs/models"
)

const maxBodyBytes = 1 << 20

// ContentStore is the persistence the API needs.
type ContentStore interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	CreateProject(ctx context.Context, in content.ProjectInput) (models.Project, error)
	UpdateProject(ctx context.Context, id string, in content.ProjectInput) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListDetails(ctx context.Context, projectID string) ([]models.ProjectDetail, error)
	CreateDetail(ctx context.Context, projectID string, in content.DetailInput) (models.ProjectDetail, error)
	UpdateDetail(ctx context.Context, id string, in content.DetailInput) (models.ProjectDetail, error)
	DeleteDetail(ctx context.Context, id string) error

	ListCompanyValues(ctx context.Context) ([]models.CompanyValue, error)
	GetCompanyValue(ctx context.Context, id string) (models.CompanyValue, error)
	CreateCompanyValue(ctx context.Context, in content.CompanyValueInput) (models.CompanyValue, error)
	UpdateCompanyValue(ctx context.Context, id string, in content.CompanyValueInput) (models.CompanyValue, error)
	DeleteCompanyValue(ctx context.Context, id string) error

	SaveContactMessage(ctx context.Context, in models.ContactInput) (models.ContactMessage, error)
	MarkDelivered(ctx context.Context, id int64) error
}

// KeyVerifier checks the bearer token of mutating requests.
type KeyVerifier interface {
	Verify(candidate string) error
}

// ContactNotifier delivers stored contact messages.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg models.ContactMessage) error
}

type Handler struct {
	store    ContentStore
	keys     KeyVerifier
	notifier ContactNotifier
}

func NewHandler(store ContentStore, keys KeyVerifier, notifier ContactNotifier) *Handler {
	return &Handler{store: store, keys: keys, notifier: notifier}
}

// Routes returns the API router, meant to be mounted under /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/projects", h.listProjects)
	r.Get("/projects/{id}", h.getProject)
	r.Get("/projects/{id}/details", h.listDetails)
	r.Get("/company-values", h.listCompanyValues)
	r.Get("/company-values/{id}", h.getCompanyValue)
	r.Post("/contact/send", h.sendContact)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdminKey)

		r.Post("/projects", h.createProject)
		r.Put("/projects/details/{id}", h.updateDetail)
		r.Delete("/projects/details/{id}", h.deleteDetail)
		r.Put("/projects/{id}", h.updateProject)
		r.Delete("/projects/{id}", h.deleteProject)
		r.Post("/projects/{id}/details", h.createDetail)

		r.Post("/company-values", h.createCompanyValue)
		r.Put("/company-values/{id}", h.updateCompanyValue)
		r.Delete("/company-values/{id}", h.deleteCompanyValue)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Recurso no encontrado")
	})
	return r
}

func (h *Handler) requireAdminKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || h.keys == nil || h.keys.Verify(token) != nil {
			respondError(w, http.StatusUnauthorized, "No autorizado")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode api response failed", slog.Any("err", err))
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Success: false, Message: message})
}

// fail maps store errors onto the JSON envelope.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, content.ErrNotFound):
		respondError(w, http.StatusNotFound, "Recurso no encontrado")
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to write
	default:
		slog.Error("api request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
		respondError(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Solicitud inválida")
		return false
	}
	return true
}
