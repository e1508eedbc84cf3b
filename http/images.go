package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sagarc03/showroom"
)

func (h *Handler) handleListImages(list func(ctx context.Context) ([]string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := list(r.Context())
		if err != nil {
			HandleError(w, err)
			return
		}

		if images == nil {
			images = []string{}
		}
		_ = WriteJSON(w, http.StatusOK, showroom.ImagesResponse{Images: images})
	}
}

func (h *Handler) handleAutomobile(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/automobile/")

	content, info, err := h.config.Images.Get(r.Context(), path)
	if err != nil {
		if errors.Is(err, showroom.ErrNotFound) {
			writeFileNotFound(w)
		} else {
			HandleError(w, err)
		}
		return
	}
	defer func() { _ = content.Close() }()

	w.Header().Set("Content-Type", showroom.ContentType(path))
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}
