package cli

import (
	"context"

	"go.uber.org/fx"

	"github.com/tripmates/itinerary-backend/internal/app"
	"github.com/tripmates/itinerary-backend/internal/app/appcontext"
)

// Start builds the dependency graph for a one-off command. The returned
// stop function runs the lifecycle OnStop hooks.
func Start(ctx context.Context, module fx.Option) (stop func() error, err error) {
	fxApp := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := fxApp.Start(ctx); err != nil {
		return nil, err
	}

	return func() error {
		return fxApp.Stop(context.Background())
	}, nil
}
