// Command showroom-lambda runs the showroom API on AWS Lambda behind an API
// Gateway HTTP API. Static assets are not served; unmatched paths answer
// with the info document.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sagarc03/showroom/app"
	"github.com/sagarc03/showroom/config"
	"github.com/sagarc03/showroom/lambdaproxy"
	"github.com/sagarc03/showroom/logging"
)

func main() {
	logging.Setup("prod", "")

	ctx := context.Background()

	provider, err := config.NewProvider(os.Getenv("SHOWROOM_CONFIG_SOURCE"), config.Options{
		Defaults: map[string]any{"server.assets": "info"},
	})
	if err != nil {
		slog.Error("invalid config source", "err", err)
		os.Exit(1)
	}

	cfg, err := provider.Load(ctx)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Env, cfg.Log.Level)

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("create app", "err", err)
		os.Exit(1)
	}

	lambda.Start(lambdaproxy.New(a.Handler).Handle)
}
