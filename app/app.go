// Package app assembles the HTTP handler from a resolved configuration. The
// server command and the Lambda entry point share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/sagarc03/showroom"
	"github.com/sagarc03/showroom/completion"
	"github.com/sagarc03/showroom/config"
	"github.com/sagarc03/showroom/filesystem"
	showroomhttp "github.com/sagarc03/showroom/http"
	"github.com/sagarc03/showroom/metrics"
	"github.com/sagarc03/showroom/s3store"
)

// ImagesURLPrefix is where the local image backend serves its files.
const ImagesURLPrefix = "/automobile/"

// App holds the assembled handler and the resources it keeps open.
type App struct {
	Handler http.Handler

	closers []func() error
}

// New wires the image store, completion client, asset root and metrics
// selected by cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	handlerCfg := showroomhttp.HandlerConfig{
		AssetMode: cfg.AssetMode(),
		CORS:      cfg.CORS,
		AccessLog: cfg.LoggingEnabled,
	}

	var store showroom.ImageStore
	switch cfg.ImageBackend() {
	case showroom.BackendS3:
		s3, err := s3store.NewFromConfig(ctx, s3store.Options{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.Images.Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("create s3 store: %w", err)
		}
		store = s3
		slog.Info("listing images from s3", "bucket", cfg.Images.Bucket, "region", cfg.AWS.Region)
	case showroom.BackendLocal:
		root, err := os.OpenRoot(cfg.Images.Dir)
		if err != nil {
			return nil, fmt.Errorf("open images root: %w", err)
		}
		a.closers = append(a.closers, root.Close)

		fsStore := filesystem.NewFileStorage(root, ImagesURLPrefix)
		store = fsStore
		handlerCfg.Images = fsStore
		slog.Info("listing images from directory", "dir", cfg.Images.Dir)
	default:
		return nil, fmt.Errorf("unsupported image backend: %s", cfg.Images.Backend)
	}

	if cfg.AssetMode() == showroom.ModeSPA {
		root, err := os.OpenRoot(cfg.Assets.Dir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("assets directory not found, unmatched paths will return 404", "dir", cfg.Assets.Dir)
		case err != nil:
			_ = a.Close()
			return nil, fmt.Errorf("open assets root: %w", err)
		default:
			a.closers = append(a.closers, root.Close)
			handlerCfg.Assets = filesystem.NewFileStorage(root, "")
		}
	}

	if cfg.Metrics.Enabled {
		handlerCfg.Metrics = metrics.New()
	}

	handler := showroomhttp.NewHandler(&handlerCfg, showroom.NewGallery(store), newCompleter(cfg))
	a.Handler = handler.Router()

	return a, nil
}

func newCompleter(cfg *config.Config) showroomhttp.Completer {
	if cfg.UseMock {
		slog.Info("completion requests are mocked")
		return completion.NewMock(cfg.OpenAI.Model)
	}
	return completion.New(cfg.OpenAI.APIKey,
		completion.WithBaseURL(cfg.OpenAI.BaseURL),
		completion.WithModel(cfg.OpenAI.Model),
		completion.WithMaxTokens(cfg.OpenAI.MaxTokens),
	)
}

// Close releases the directory roots opened by New.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
