package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/tripmates/itinerary-backend/internal/app/appconfig"
)

func TestRedisDisabledWithoutURL(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	client, err := Redis(lc, &appconfig.Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.Nil(t, RedSync(client))

	lc.RequireStart().RequireStop()
}

func TestRedisRejectsMalformedURL(t *testing.T) {
	_, err := Redis(fxtest.NewLifecycle(t), &appconfig.Config{ConfigSpec: appconfig.ConfigSpec{RedisURL: "not-a-redis-url"}})
	assert.Error(t, err)
}
