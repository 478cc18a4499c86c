package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"codeslabs/infrastructure/content"
)

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, projects)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var in content.ProjectInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.store.CreateProject(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, p)
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	var in content.ProjectInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.store.UpdateProject(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Proyecto eliminado")
}

func (h *Handler) listDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.store.ListDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, details)
}

func (h *Handler) createDetail(w http.ResponseWriter, r *http.Request) {
	var in content.DetailInput
	if !decode(w, r, &in) {
		return
	}
	d, err := h.store.CreateDetail(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, d)
}

func (h *Handler) updateDetail(w http.ResponseWriter, r *http.Request) {
	var in content.DetailInput
	if !decode(w, r, &in) {
		return
	}
	d, err := h.store.UpdateDetail(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, d)
}

func (h *Handler) deleteDetail(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteDetail(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Detalle eliminado")
}
