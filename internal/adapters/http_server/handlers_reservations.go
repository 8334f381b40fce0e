package httpserver

import (
	"net/http"

	"placebook/internal/domain"
)

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	who, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var d reservationDTO
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reservations.Save(r.Context(), d.toDomain(), who)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toReservationDTO(out))
}

func (h *Handlers) updateReservation(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	var d reservationDTO
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reservations.Update(r.Context(), d.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toReservationDTO(out))
}

type statusDTO struct {
	Status string `json:"status"`
}

func (h *Handlers) updateReservationStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var d statusDTO
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reservations.UpdateStatus(r.Context(), id, domain.ReservationStatus(d.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toReservationDTO(out))
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	who, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reservations.Cancel(r.Context(), id, who)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toReservationDTO(out))
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	who, ok := requireCaller(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	crit, err := parseReservationCriteria(q)
	if err != nil {
		writeError(w, err)
		return
	}
	pg, err := parsePage(q)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.Reservations.FindPage(r.Context(), crit, pg, who)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]reservationDTO, 0, len(page.Items))
	for _, v := range page.Items {
		out = append(out, toReservationViewDTO(v))
	}
	totalCountHeader(w, page.TotalElements)
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) countReservations(w http.ResponseWriter, r *http.Request) {
	who, ok := requireCaller(w, r)
	if !ok {
		return
	}
	crit, err := parseReservationCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := h.Reservations.Count(r.Context(), crit, who)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	who, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Reservations.Get(r.Context(), id, who)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toReservationDTO(out))
}

func (h *Handlers) deleteReservation(w http.ResponseWriter, r *http.Request) {
	who, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	// non-admins may only delete their own; the lookup is ownership-opaque
	if _, err := h.Reservations.Get(r.Context(), id, who); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Reservations.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
