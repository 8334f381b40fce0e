package httpserver

import (
	"net/http"
)

// The OTP throttle is consumed by the auth gateway sitting in front of this
// service: it reports failed and successful code entries for the client IP
// and asks whether that IP is currently blocked.

func (h *Handlers) otpFailed(w http.ResponseWriter, r *http.Request) {
	if err := h.Otp.Fail(r.Context(), remoteIP(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) otpSucceeded(w http.ResponseWriter, r *http.Request) {
	if err := h.Otp.Succeed(r.Context(), remoteIP(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) otpBlocked(w http.ResponseWriter, r *http.Request) {
	blocked, err := h.Otp.Blocked(r.Context(), remoteIP(r))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Blocked bool `json:"blocked"`
	}{Blocked: blocked})
}
