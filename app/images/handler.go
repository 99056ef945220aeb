package images

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/mytheresa/go-item-listing/app/api"
	"github.com/mytheresa/go-item-listing/app/logger"
)

type ImageProvider interface {
	Fetch(ctx context.Context, name string) (io.ReadCloser, string, error)
}

type ImageHandler struct {
	store ImageProvider
}

func NewImageHandler(s ImageProvider) *ImageHandler {
	return &ImageHandler{store: s}
}

func (h *ImageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	rc, served, err := h.store.Fetch(r.Context(), name)
	if err != nil {
		if errors.Is(err, ErrInvalidImageName) {
			api.ErrorResponse(w, http.StatusBadRequest, ErrInvalidImageName.Error())
			return
		}
		logger.FromContext(r.Context()).Error("fetch image", "image", name, "error", err)
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve image")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", ContentType)
	if rs, ok := rc.(io.ReadSeeker); ok {
		http.ServeContent(w, r, served, time.Time{}, rs)
		return
	}
	if _, err := io.Copy(w, rc); err != nil {
		logger.FromContext(r.Context()).Warn("write image", "image", served, "error", err)
	}
}
