package appconfig

import (
	"time"

	"github.com/tripmates/itinerary-backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9020"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of the rotated JSON log file. Leaving this empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic.
	DevMode bool `split_words:"true"`

	// infrastructure components connection instructions

	// DatabaseDriver selects the SQL backend. Valid values are: postgres, sqlite.
	DatabaseDriver string `required:"true" split_words:"true" default:"postgres"`

	// DatabaseDSN is the data source name of the database. For postgres, see
	// https://bun.uptrace.dev/postgres/#pgdriver on how to construct it; for sqlite, it is
	// passed to modernc.org/sqlite as-is, e.g. "file:itinerary.db".
	DatabaseDSN string `required:"true" split_words:"true"`

	DatabaseMaxOpenConns    int           `split_words:"true" default:"10"`
	DatabaseMaxIdleConns    int           `split_words:"true" default:"2"`
	DatabaseConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	DatabaseConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	// DatabaseAutoMigrate creates missing tables and indexes on start.
	DatabaseAutoMigrate bool `split_words:"true" default:"false"`

	BunDebugVerbose bool `split_words:"true"`

	// NatsURL is the URL of the NATS server. See https://pkg.go.dev/github.com/nats-io/nats.go#Connect
	// for more information on how to construct a NATS URL. Leaving this empty disables itinerary events.
	NatsURL string `split_words:"true"`

	// EventPublishTimeout bounds how long a lifecycle event publish waits for the JetStream ack.
	EventPublishTimeout time.Duration `split_words:"true" default:"500ms"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL. Setting it to an empty value disables
	// idempotent itinerary creation.
	RedisURL string `split_words:"true" default:"redis://127.0.0.1:6379/0"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// GenerationBaseURL is the base URL of the OpenAI-compatible chat completions API.
	GenerationBaseURL string `required:"true" split_words:"true" default:"https://api.openai.com/v1"`

	// GenerationAPIKey is sent as a bearer token to the generation service.
	GenerationAPIKey string `split_words:"true"`

	// GenerationModel is the chat model used to generate activities.
	GenerationModel string `required:"true" split_words:"true" default:"gpt-4o-mini"`

	// GenerationTimeout bounds the whole generation call, retries included.
	GenerationTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// GenerationAttempts is the number of tries on transport errors and 5xx responses.
	GenerationAttempts uint `split_words:"true" default:"3"`

	// GenerationRetryDelay is the base delay of the exponential backoff in-between tries.
	GenerationRetryDelay time.Duration `split_words:"true" default:"500ms"`

	// IdempotencyTTL is how long a response is remembered for an idempotency key.
	IdempotencyTTL time.Duration `split_words:"true" default:"24h"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
