package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/tripmates/itinerary-backend/internal/app/appconfig"
)

// Redis connects to the configured server. The client is nil when RedisURL is
// empty, which disables idempotent itinerary creation.
func Redis(lc fx.Lifecycle, conf *appconfig.Config) (*redis.Client, error) {
	if conf.RedisURL == "" {
		log.Warn().Msg("infra: redis: Redis is disabled due to missing URL, itinerary creation will not be idempotent")
		return nil, nil
	}

	u, err := redis.ParseURL(conf.RedisURL)
	if err != nil {
		log.Error().Err(err).Msg("infra: redis: failed to parse redis url")
		return nil, err
	}

	client := redis.NewClient(u)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	ping := client.Ping(ctx)
	if ping.Err() != nil {
		log.Error().Err(ping.Err()).Msg("infra: redis: failed to ping database")
		return nil, ping.Err()
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
