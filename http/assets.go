package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sagarc03/showroom"
)

const indexFile = "index.html"

// InfoResponse is the body served for unmatched paths in ModeInfo.
type InfoResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

var infoResponse = InfoResponse{
	Message: "showroom API",
	Endpoints: []string{
		"POST /gpt-search",
		"GET /list-images",
		"GET /list-images-cars",
		"GET /list-images-motorcycles",
	},
}

func (h *Handler) handleInfo(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, infoResponse)
}

// handleAsset serves a file from the static build, or index.html when the
// path names no regular file or ends with a slash.
func (h *Handler) handleAsset(w http.ResponseWriter, r *http.Request) {
	if h.config.Assets == nil {
		writeDefaultNotFound(w)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")
	if path != "" && !strings.HasSuffix(path, "/") {
		if h.serveFile(w, r, path) {
			return
		}
	}

	if !h.serveFile(w, r, indexFile) {
		writeDefaultNotFound(w)
	}
}

// serveFile writes the file at path and reports whether it did. A missing
// file writes nothing. Any other failure is answered with a 500.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, path string) bool {
	content, info, err := h.config.Assets.Get(r.Context(), path)
	if err != nil {
		if errors.Is(err, showroom.ErrNotFound) {
			return false
		}
		HandleError(w, fmt.Errorf("open asset %s: %w: %w", path, showroom.ErrInternal, err))
		return true
	}
	defer func() { _ = content.Close() }()

	w.Header().Set("Content-Type", showroom.ContentType(path))
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
	return true
}
