package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"placebook/internal/adapters/observability"
	"placebook/internal/domain"
)

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		observability.ObserveHTTP(route, r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			l.Info().
				Str("route", route).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// ---- Per-client rate limiting ----

// RateLimit keeps one token bucket per remote IP. Buckets are dropped after
// an hour without traffic so the map does not grow unbounded.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	type client struct {
		lim  *rate.Limiter
		seen time.Time
	}
	var (
		mu      sync.Mutex
		clients = map[string]*client{}
	)
	sweep := func(now time.Time) {
		for ip, c := range clients {
			if now.Sub(c.seen) > time.Hour {
				delete(clients, ip)
			}
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteIP(r)
			now := time.Now()

			mu.Lock()
			c, ok := clients[ip]
			if !ok {
				c = &client{lim: rate.NewLimiter(rate.Limit(rps), burst), seen: now}
				clients[ip] = c
				sweep(now)
			}
			c.seen = now
			allowed := c.lim.Allow()
			mu.Unlock()

			if !allowed {
				route := chi.RouteContext(r.Context()).RoutePattern()
				if route == "" {
					route = r.URL.Path
				}
				observability.ObserveRateLimited(route)
				writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "request rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ---- Caller identity ----

type identityKey struct{}

// Identity reads the caller headers set by the auth gateway in front of this
// service and stashes the parsed identity on the request context. Requests
// without the headers pass through anonymous; handlers that need a caller
// reject those themselves.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := r.Header.Get("X-User-Id")
		if idStr == "" {
			next.ServeHTTP(w, r)
			return
		}
		uid, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || uid <= 0 {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed X-User-Id header")
			return
		}
		who := domain.Identity{UserID: uid, Login: r.Header.Get("X-User-Login")}
		if roles := r.Header.Get("X-User-Roles"); roles != "" {
			for _, role := range strings.Split(roles, ",") {
				who.Roles = append(who.Roles, strings.TrimSpace(role))
			}
		}
		ctx := context.WithValue(r.Context(), identityKey{}, who)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func callerFrom(r *http.Request) (domain.Identity, bool) {
	who, ok := r.Context().Value(identityKey{}).(domain.Identity)
	return who, ok
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
