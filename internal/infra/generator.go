package infra

import (
	"github.com/tripmates/itinerary-backend/internal/app/appconfig"
	"github.com/tripmates/itinerary-backend/internal/pkg/chatgen"
)

func Generator(conf *appconfig.Config) *chatgen.Client {
	return chatgen.New(chatgen.Config{
		BaseURL:    conf.GenerationBaseURL,
		APIKey:     conf.GenerationAPIKey,
		Model:      conf.GenerationModel,
		Timeout:    conf.GenerationTimeout,
		Attempts:   conf.GenerationAttempts,
		RetryDelay: conf.GenerationRetryDelay,
	})
}
