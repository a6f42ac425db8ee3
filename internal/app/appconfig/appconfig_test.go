package appconfig_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmates/itinerary-backend/internal/app/appconfig"
	"github.com/tripmates/itinerary-backend/internal/app/appcontext"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("ITINERARY_DATABASE_DSN", "file::memory:")
	t.Setenv("ITINERARY_DATABASE_DRIVER", "sqlite")

	conf, err := appconfig.Parse(appcontext.Declare(appcontext.EnvCLI))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", conf.DatabaseDriver)
	assert.Equal(t, 60*time.Second, conf.GenerationTimeout)
	assert.EqualValues(t, 3, conf.GenerationAttempts)
	assert.Equal(t, 24*time.Hour, conf.IdempotencyTTL)
	assert.Empty(t, conf.NatsURL)
	assert.Equal(t, "redis://127.0.0.1:6379/0", conf.RedisURL)
	assert.Equal(t, appcontext.EnvCLI, conf.AppContext.Env)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("ITINERARY_DATABASE_DSN", "postgres://localhost/itinerary")
	t.Setenv("ITINERARY_GENERATION_TIMEOUT", "15s")
	t.Setenv("ITINERARY_TRUSTED_PROXIES", "10.1.0.0/16")

	conf, err := appconfig.Parse(appcontext.Declare(appcontext.EnvServer))
	require.NoError(t, err)

	assert.Equal(t, "postgres", conf.DatabaseDriver)
	assert.Equal(t, 15*time.Second, conf.GenerationTimeout)
	assert.Equal(t, []string{"10.1.0.0/16"}, conf.TrustedProxies)
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	t.Setenv("ITINERARY_DATABASE_DSN", "whatever")
	t.Setenv("ITINERARY_DATABASE_DRIVER", "mysql")

	_, err := appconfig.Parse(appcontext.Declare(appcontext.EnvServer))
	assert.Error(t, err)
}

func TestParseRequiresDSN(t *testing.T) {
	t.Setenv("ITINERARY_DATABASE_DSN", "")
	require.NoError(t, os.Unsetenv("ITINERARY_DATABASE_DSN"))

	_, err := appconfig.Parse(appcontext.Declare(appcontext.EnvServer))
	assert.Error(t, err)
}

func TestParseEmptyRedisURL(t *testing.T) {
	t.Setenv("ITINERARY_DATABASE_DSN", "file::memory:")
	t.Setenv("ITINERARY_DATABASE_DRIVER", "sqlite")
	t.Setenv("ITINERARY_REDIS_URL", "")

	conf, err := appconfig.Parse(appcontext.Declare(appcontext.EnvServer))
	require.NoError(t, err)
	assert.Empty(t, conf.RedisURL)
}
