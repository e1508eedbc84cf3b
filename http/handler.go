package http

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sagarc03/showroom"
)

// Gallery lists vehicle images.
type Gallery interface {
	All(ctx context.Context) ([]string, error)
	Cars(ctx context.Context) ([]string, error)
	Motorcycles(ctx context.Context) ([]string, error)
}

// Completer answers a chat prompt with a completion API JSON body.
type Completer interface {
	Complete(ctx context.Context, input string) (json.RawMessage, error)
}

// Files opens regular files by slash-separated relative path.
// Missing files and directories are reported as showroom.ErrNotFound.
type Files interface {
	Get(ctx context.Context, path string) (io.ReadSeekCloser, fs.FileInfo, error)
}

// Metrics instruments the router and exposes the collected values.
type Metrics interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

type HandlerConfig struct {
	AssetMode showroom.AssetMode
	CORS      CORSConfig
	// Assets serves the static build in ModeSPA. Nil answers unmatched
	// paths with the 404 page.
	Assets Files
	// Images enables GET /automobile/* for the local image backend.
	Images Files
	// AccessLog logs every request.
	AccessLog bool
	// Metrics, when set, instruments requests and serves GET /metrics.
	Metrics Metrics
}

// Handler provides the HTTP API and static file serving.
type Handler struct {
	config    HandlerConfig
	gallery   Gallery
	completer Completer
}

// NewHandler creates a new Handler with the given configuration and services.
func NewHandler(config *HandlerConfig, gallery Gallery, completer Completer) *Handler {
	return &Handler{
		config:    *config,
		gallery:   gallery,
		completer: completer,
	}
}

// Router returns an http.Handler with every route registered.
// The CORS gate runs before routing, so OPTIONS never reaches a route.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if h.config.AccessLog {
		r.Use(AccessLog)
	}
	r.Use(Recover)
	if h.config.Metrics != nil {
		r.Use(h.config.Metrics.Middleware)
	}
	r.Use(CORSMiddleware(h.config.CORS))
	r.Use(middleware.GetHead)

	r.Post("/gpt-search", h.handleCompletion)

	r.Get("/list-images", h.handleListImages(h.gallery.All))
	r.Get("/list-images-cars", h.handleListImages(h.gallery.Cars))
	r.Get("/list-images-motorcycles", h.handleListImages(h.gallery.Motorcycles))

	if h.config.Images != nil {
		r.Get("/automobile/*", h.handleAutomobile)
	}

	if h.config.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.config.Metrics.Handler())
	}

	if h.config.AssetMode == showroom.ModeInfo {
		r.Get("/*", h.handleInfo)
	} else {
		r.Get("/*", h.handleAsset)
	}

	return r
}
