// Package logging configures the process-wide slog logger for the showroom
// binaries: colored tint output in development, JSON in production.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// IsProd reports whether env names the production environment.
func IsProd(env string) bool {
	return env == "prod" || env == "production"
}

// New builds a logger writing to w. An empty level means debug in
// development and info in production.
func New(w io.Writer, env, level string) *slog.Logger {
	isProd := IsProd(env)

	if level == "" {
		if isProd {
			level = "info"
		} else {
			level = "debug"
		}
	}
	lvl := ParseLevel(level)

	var h slog.Handler
	if isProd {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     lvl,
			AddSource: false,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	} else {
		h = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			AddSource:  true,
			TimeFormat: "15:04:05.000",
		})
	}

	return slog.New(h)
}

// Setup installs a logger on stdout as the slog default and redirects the
// standard library logger into it.
func Setup(env, level string) {
	slog.SetDefault(New(os.Stdout, env, level))

	log.SetFlags(0)
	log.SetOutput(
		slog.NewLogLogger(
			slog.Default().Handler(),
			slog.LevelInfo,
		).Writer(),
	)
}

// ParseLevel maps a level name to a slog.Level. Unknown names are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
