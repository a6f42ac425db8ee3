package migrate

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/tripmates/itinerary-backend/cmd/app/cli"
	"github.com/tripmates/itinerary-backend/internal/repo"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the itinerary tables and indexes if they do not exist",
		Action: func(c *cli.Context) error {
			var db *bun.DB
			stop, err := cliapp.Start(c.Context, fx.Populate(&db))
			if err != nil {
				return errors.Wrap(err, "failed to start app")
			}
			defer func() {
				if err := stop(); err != nil {
					log.Warn().Err(err).Msg("failed to stop app")
				}
			}()

			if err := repo.CreateSchema(c.Context, db); err != nil {
				return errors.Wrap(err, "failed to create schema")
			}

			log.Info().
				Str("evt.name", "migrate.ok").
				Str("dialect", db.Dialect().Name().String()).
				Msg("schema is up to date")
			return nil
		},
	}
}
