package infra

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/fx"
	_ "modernc.org/sqlite"

	"github.com/tripmates/itinerary-backend/internal/app/appconfig"
	"github.com/tripmates/itinerary-backend/internal/repo"
)

func Database(lc fx.Lifecycle, conf *appconfig.Config) (*bun.DB, error) {
	var db *bun.DB

	switch conf.DatabaseDriver {
	case appconfig.DriverSQLite:
		sqldb, err := sql.Open("sqlite", conf.DatabaseDSN)
		if err != nil {
			log.Error().Err(err).Msg("infra: database: failed to open sqlite database")
			return nil, err
		}
		// pragmas and :memory: databases are per connection
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, err
		}
	default:
		pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(conf.DatabaseDSN)))
		pgdb.SetMaxOpenConns(conf.DatabaseMaxOpenConns)
		pgdb.SetMaxIdleConns(conf.DatabaseMaxIdleConns)
		pgdb.SetConnMaxLifetime(conf.DatabaseConnMaxLifeTime)
		pgdb.SetConnMaxIdleTime(conf.DatabaseConnMaxIdleTime)
		db = bun.NewDB(pgdb, pgdialect.New())
	}

	if conf.DevMode {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(conf.BunDebugVerbose),
		))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("infra: database: failed to ping database")
		return nil, err
	}

	if conf.DatabaseAutoMigrate {
		if err := repo.CreateSchema(ctx, db); err != nil {
			log.Error().Err(err).Msg("infra: database: failed to create schema")
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return db, nil
}
