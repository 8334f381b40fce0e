package httpserver

import (
	"net/http"
)

func (h *Handlers) createLocation(w http.ResponseWriter, r *http.Request) {
	var d locationDTO
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Locations.Save(r.Context(), d.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toLocationDTO(out))
}

func (h *Handlers) updateLocation(w http.ResponseWriter, r *http.Request) {
	var d locationDTO
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Locations.Update(r.Context(), d.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toLocationDTO(out))
}

func (h *Handlers) listLocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit, err := parseLocationCriteria(q)
	if err != nil {
		writeError(w, err)
		return
	}
	pg, err := parsePage(q)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.Locations.FindPage(r.Context(), crit, pg)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]locationDTO, 0, len(page.Items))
	for _, l := range page.Items {
		out = append(out, toLocationDTO(l))
	}
	totalCountHeader(w, page.TotalElements)
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) countLocations(w http.ResponseWriter, r *http.Request) {
	crit, err := parseLocationCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := h.Locations.Count(r.Context(), crit)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *Handlers) getLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Locations.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toLocationDTO(out))
}

func (h *Handlers) deleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Locations.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
