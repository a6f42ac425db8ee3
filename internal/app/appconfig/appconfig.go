package appconfig

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/tripmates/itinerary-backend/internal/app/appcontext"
)

const envPrefix = "itinerary"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var config ConfigSpec
	err = envconfig.Process(envPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(envPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. See internal/app/appconfig/spec.go for the list of ITINERARY_* variables", err)
	}

	switch config.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("failed to parse configuration: unsupported database driver %q", config.DatabaseDriver)
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)
