// Command api-server runs the fuel distributor HTTP API.
package main

import (
	"context"

	"github.com/go-faster/errors"
	sdkapp "github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/petrodist/fuel-orders/internal/app"
)

func main() {
	sdkapp.Run(run)
}

func run(ctx context.Context, lg *zap.Logger, m *sdkapp.Telemetry) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	return app.Run(ctx, lg, m, cfg)
}
