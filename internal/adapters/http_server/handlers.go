package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"placebook/internal/app"
	"placebook/internal/domain"
)

type Handlers struct {
	Categories   *app.CategoryService
	Places       *app.PlaceService
	Locations    *app.LocationService
	Images       *app.ImageService
	Reservations *app.ReservationService
	Otp          *app.OtpAttempts
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", h.createCategory)
			r.Put("/", h.updateCategory)
			r.Get("/", h.listCategories)
			r.Get("/count", h.countCategories)
			r.Get("/{id}", h.getCategory)
			r.Delete("/{id}", h.deleteCategory)
		})
		r.Route("/places", func(r chi.Router) {
			r.Post("/", h.createPlace)
			r.Put("/", h.updatePlace)
			r.Get("/", h.listPlaces)
			r.Get("/count", h.countPlaces)
			r.Get("/{id}", h.getPlace)
			r.Delete("/{id}", h.deletePlace)
		})
		r.Route("/locations", func(r chi.Router) {
			r.Post("/", h.createLocation)
			r.Put("/", h.updateLocation)
			r.Get("/", h.listLocations)
			r.Get("/count", h.countLocations)
			r.Get("/{id}", h.getLocation)
			r.Delete("/{id}", h.deleteLocation)
		})
		r.Route("/images", func(r chi.Router) {
			r.Get("/", h.listImages)
			r.Get("/count", h.countImages)
			r.Get("/load/{imageName}", h.loadImage)
			r.Post("/place/{placeId}", h.uploadPlaceImage)
			r.Get("/place/{placeId}", h.mainPlaceImage)
			r.Put("/place/main/{imageId}", h.setMainPlaceImage)
			r.Post("/category/{categoryId}", h.uploadCategoryImage)
			r.Get("/category/{categoryId}", h.mainCategoryImage)
			r.Put("/category/main/{imageId}", h.setMainCategoryImage)
			r.Get("/{id}", h.getImage)
			r.Delete("/{id}", h.deleteImage)
		})
		r.Route("/reservations", func(r chi.Router) {
			r.Post("/", h.createReservation)
			r.Put("/", h.updateReservation)
			r.Get("/", h.listReservations)
			r.Get("/count", h.countReservations)
			r.Put("/updateStatus/{id}", h.updateReservationStatus)
			r.Put("/canceled/{id}", h.cancelReservation)
			r.Get("/{id}", h.getReservation)
			r.Delete("/{id}", h.deleteReservation)
		})
		if h.Otp != nil {
			r.Route("/otp", func(r chi.Router) {
				r.Post("/failed", h.otpFailed)
				r.Post("/succeeded", h.otpSucceeded)
				r.Get("/blocked", h.otpBlocked)
			})
		}
	})
}

// ---- response plumbing ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the application error taxonomy onto HTTP statuses and
// surfaces the stable machine key in X-App-Error.
func writeError(w http.ResponseWriter, err error) {
	var ae *domain.Error
	if !errors.As(err, &ae) {
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("X-App-Error", ae.Key)
	switch ae.Kind {
	case domain.KindValidation:
		writeProblem(w, http.StatusBadRequest, "Bad Request", ae.Message)
	case domain.KindNotFound:
		writeProblem(w, http.StatusNotFound, "Not Found", ae.Message)
	case domain.KindAccess:
		writeProblem(w, http.StatusForbidden, "Forbidden", ae.Message)
	default:
		log.Error().Err(err).Str("key", ae.Key).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", ae.Message)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validation("bodyinvalid", "malformed JSON body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("idinvalid", name+" must be a positive number")
	}
	return id, nil
}

// requireCaller resolves the identity headers; identity-requiring routes
// answer 400 "noUser" without them.
func requireCaller(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	who, ok := callerFrom(r)
	if !ok {
		w.Header().Set("X-App-Error", "noUser")
		writeProblem(w, http.StatusBadRequest, "Bad Request", "no authenticated user")
		return domain.Identity{}, false
	}
	return who, true
}

func requireAdmin(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	who, ok := requireCaller(w, r)
	if !ok {
		return domain.Identity{}, false
	}
	if !who.Admin() {
		w.Header().Set("X-App-Error", "forbidden")
		writeProblem(w, http.StatusForbidden, "Forbidden", "administrator role required")
		return domain.Identity{}, false
	}
	return who, true
}

func totalCountHeader(w http.ResponseWriter, total int64) {
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
}
