package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placebook/internal/domain"
)

func TestIdentity_ParsesHeaders(t *testing.T) {
	var got domain.Identity
	var present bool
	h := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, present = callerFrom(r)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-Id", "7")
	req.Header.Set("X-User-Login", "alice")
	req.Header.Set("X-User-Roles", "ROLE_USER, ROLE_ADMIN")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, present)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "alice", got.Login)
	assert.True(t, got.Admin())
}

func TestIdentity_AnonymousPassesThrough(t *testing.T) {
	var present bool
	h := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = callerFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, present)
}

func TestIdentity_MalformedID(t *testing.T) {
	h := Identity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-Id", "nope")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRateLimit_DropsBurstOverflow(t *testing.T) {
	h := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/places", nil)
		req.RemoteAddr = "10.1.1.1:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// a different client has its own bucket
	req := httptest.NewRequest("GET", "/api/places", nil)
	req.RemoteAddr = "10.1.1.2:1234"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWriteError_KindMapping(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
		key    string
	}{
		{domain.Validation("idexists", "already has an id"), 400, "idexists"},
		{domain.NotFound("idnotfound", "missing"), 404, "idnotfound"},
		{domain.Access("forbidden", "nope"), 403, "forbidden"},
		{domain.Storage("filewrite", "disk full", nil), 500, "filewrite"},
	} {
		rr := httptest.NewRecorder()
		writeError(rr, tc.err)
		assert.Equal(t, tc.status, rr.Code)
		assert.Equal(t, tc.key, rr.Header().Get("X-App-Error"))
		assert.Contains(t, rr.Header().Get("Content-Type"), "application/problem+json")
	}
}
