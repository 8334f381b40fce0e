package httpserver

import (
	"net/http"
)

func (h *Handlers) createCategory(w http.ResponseWriter, r *http.Request) {
	var d categoryDTO
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Categories.Save(r.Context(), d.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCategoryDTO(out))
}

func (h *Handlers) updateCategory(w http.ResponseWriter, r *http.Request) {
	var d categoryDTO
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Categories.Update(r.Context(), d.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCategoryDTO(out))
}

func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit, err := parseCategoryCriteria(q)
	if err != nil {
		writeError(w, err)
		return
	}
	pg, err := parsePage(q)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.Categories.FindPage(r.Context(), crit, pg)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]categoryDTO, 0, len(page.Items))
	for _, c := range page.Items {
		out = append(out, toCategoryDTO(c))
	}
	totalCountHeader(w, page.TotalElements)
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) countCategories(w http.ResponseWriter, r *http.Request) {
	crit, err := parseCategoryCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := h.Categories.Count(r.Context(), crit)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *Handlers) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCategoryDTO(out))
}

func (h *Handlers) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Categories.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
