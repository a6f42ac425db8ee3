package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tripmates/itinerary-backend/cmd/app/cli/migrate"
	"github.com/tripmates/itinerary-backend/cmd/app/server"
	"github.com/tripmates/itinerary-backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "itinerary",
		Description: "The Itinerary Backend. Creates, edits and deletes generated trip itineraries. Built with Go, fiber, bun and go.uber.org/fx. Publishes itinerary events to NATS and uses Redis for idempotency.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			migrate.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
