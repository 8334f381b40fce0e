package httpserver

import (
	"net/http"

	"placebook/internal/domain"
)

func (h *Handlers) createPlace(w http.ResponseWriter, r *http.Request) {
	var d placeDTO
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	if d.ID != 0 {
		writeError(w, domain.Validation("idexists", "a new place cannot already have an id"))
		return
	}
	out, err := h.Places.Save(r.Context(), d.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPlaceDTO(out))
}

func (h *Handlers) updatePlace(w http.ResponseWriter, r *http.Request) {
	var d placeDTO
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Places.Update(r.Context(), d.ID, d.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPlaceDTO(out))
}

func (h *Handlers) listPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit, err := parsePlaceCriteria(q)
	if err != nil {
		writeError(w, err)
		return
	}
	pg, err := parsePage(q)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.Places.FindPage(r.Context(), crit, pg)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]placeDTO, 0, len(page.Items))
	for _, v := range page.Items {
		out = append(out, toPlaceDTO(v))
	}
	totalCountHeader(w, page.TotalElements)
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) countPlaces(w http.ResponseWriter, r *http.Request) {
	crit, err := parsePlaceCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := h.Places.Count(r.Context(), crit)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Places.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPlaceDTO(out))
}

func (h *Handlers) deletePlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Places.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
