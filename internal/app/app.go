package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/tripmates/itinerary-backend/internal/app/appconfig"
	"github.com/tripmates/itinerary-backend/internal/app/appcontext"
	"github.com/tripmates/itinerary-backend/internal/controller"
	"github.com/tripmates/itinerary-backend/internal/infra"
	"github.com/tripmates/itinerary-backend/internal/pkg/logger"
	"github.com/tripmates/itinerary-backend/internal/repo"
	"github.com/tripmates/itinerary-backend/internal/server"
	"github.com/tripmates/itinerary-backend/internal/service"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),
		fx.Provide(fx.Annotate(infra.Generator, fx.As(new(service.Generator)))),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),
	}

	if ctx.Env == appcontext.EnvServer {
		baseOpts = append(baseOpts,
			// Servers
			server.Module(),

			// Global Singleton Inits: Keep those before controllers to ensure they are initialized
			// before controllers are registered as controllers are also fx#Invoke functions which
			// are called in the order of their registration.
			fx.Invoke(infra.SentryInit),

			// Controllers
			controller.Module(),
		)
	}

	baseOpts = append(baseOpts,
		// fx Extra Options
		fx.StartTimeout(10*time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(conf.HTTPServerShutdownTimeout+5*time.Second),
	)

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
