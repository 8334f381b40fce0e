package httpserver

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"placebook/internal/adapters/observability"
	"placebook/internal/domain"
)

const maxUploadBytes = 32 << 20

func (h *Handlers) uploadPlaceImage(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathID(r, "placeId")
	if err != nil {
		writeError(w, err)
		return
	}
	file, filename, err := formImage(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	out, err := h.Images.UploadForPlace(r.Context(), placeID, filename, file)
	observability.ObserveImageUpload("place", err)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toImageDTO(out))
}

func (h *Handlers) uploadCategoryImage(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		writeError(w, err)
		return
	}
	file, filename, err := formImage(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	out, err := h.Images.UploadForCategory(r.Context(), categoryID, filename, file)
	observability.ObserveImageUpload("category", err)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toImageDTO(out))
}

// formImage pulls the "data" part out of the multipart body.
func formImage(r *http.Request) (io.ReadCloser, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", domain.Validation("bodyinvalid", "malformed multipart body")
	}
	file, fh, err := r.FormFile("data")
	if err != nil {
		return nil, "", domain.Validation("filemissing", "multipart part \"data\" is required")
	}
	return file, fh.Filename, nil
}

func (h *Handlers) setMainPlaceImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "imageId")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Images.SetMainForPlace(r.Context(), imageID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toImageDTO(out))
}

func (h *Handlers) setMainCategoryImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "imageId")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Images.SetMainForCategory(r.Context(), imageID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toImageDTO(out))
}

func (h *Handlers) loadImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "imageName")
	rc, err := h.Images.OpenByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()
	writeBinary(w, rc)
}

func (h *Handlers) mainPlaceImage(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathID(r, "placeId")
	if err != nil {
		writeError(w, err)
		return
	}
	rc, err := h.Images.OpenMainForPlace(r.Context(), placeID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()
	writeBinary(w, rc)
}

func (h *Handlers) mainCategoryImage(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		writeError(w, err)
		return
	}
	rc, err := h.Images.OpenMainForCategory(r.Context(), categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()
	writeBinary(w, rc)
}

func writeBinary(w http.ResponseWriter, src io.Reader) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, src); err != nil {
		log.Error().Err(err).Msg("write image body failed")
	}
}

func (h *Handlers) listImages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crit, err := parseImageCriteria(q)
	if err != nil {
		writeError(w, err)
		return
	}
	pg, err := parsePage(q)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := h.Images.FindPage(r.Context(), crit, pg)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]imageDTO, 0, len(page.Items))
	for _, img := range page.Items {
		out = append(out, toImageDTO(img))
	}
	totalCountHeader(w, page.TotalElements)
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) countImages(w http.ResponseWriter, r *http.Request) {
	crit, err := parseImageCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := h.Images.Count(r.Context(), crit)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

func (h *Handlers) getImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := h.Images.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toImageDTO(out))
}

func (h *Handlers) deleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Images.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
