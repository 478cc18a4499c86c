package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"codeslabs/infrastructure/content"
)

func (h *Handler) listCompanyValues(w http.ResponseWriter, r *http.Request) {
	values, err := h.store.ListCompanyValues(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, values)
}

func (h *Handler) getCompanyValue(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.GetCompanyValue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, v)
}

func (h *Handler) createCompanyValue(w http.ResponseWriter, r *http.Request) {
	var in content.CompanyValueInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.store.CreateCompanyValue(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, v)
}

func (h *Handler) updateCompanyValue(w http.ResponseWriter, r *http.Request) {
	var in content.CompanyValueInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.store.UpdateCompanyValue(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	respondData(w, http.StatusOK, v)
}

func (h *Handler) deleteCompanyValue(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCompanyValue(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Valor eliminado")
}
