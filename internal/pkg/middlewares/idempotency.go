package middlewares

import (
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tripmates/itinerary-backend/internal/constant"
	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
	"github.com/tripmates/itinerary-backend/internal/util/rekuest"
)

type IdempotencyConfig struct {
	// Lifetime is the maximum lifetime of an idempotency key.
	Lifetime time.Duration

	// KeyHeader is the name of the header that contains the idempotency key.
	KeyHeader string

	// KeepResponseHeaders is a list of headers that should be kept from the original response.
	// By default, all headers are kept.
	KeepResponseHeaders []string

	keepResponseHeadersMap map[string]struct{}

	// Storage is the storage backend for the idempotency key & its response data.
	Storage fiber.Storage

	// RedSync serializes concurrent requests carrying the same key.
	RedSync *redsync.Redsync

	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool
}

type idempotencyResponse struct {
	StatusCode int
	Headers    map[string][]string
	Body       []byte
}

// Idempotency replays the stored response of a previous successful request
// carrying the same key on the same route, instead of running the handler again.
func Idempotency(config *IdempotencyConfig) fiber.Handler {
	config.keepResponseHeadersMap = make(map[string]struct{})
	for _, header := range config.KeepResponseHeaders {
		config.keepResponseHeadersMap[strings.ToLower(header)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if config.Next != nil && config.Next(c) {
			return c.Next()
		}

		key := c.Get(config.KeyHeader)
		if key == "" {
			return c.Next()
		}

		if err := rekuest.Validate.Var(key, "max=128,uuid|alphanum"); err != nil {
			return apperr.ErrInvalidReq.Msg("invalid idempotency key: idempotency key can only be at most %d characters, and must be an UUID or consist of only alphanumeric characters", constant.IdempotencyKeyLengthLimit)
		}

		c.Locals(constant.IdempotencyKeyLocalsKey, key)
		storageKey := c.Method() + ":" + c.Path() + ":" + key

		// first pass: return the stored response without locking
		if exist, err := writeCachedResponse(c, config, storageKey); exist {
			return err
		}

		mutex := config.RedSync.NewMutex("mutex:idempotency-request:"+storageKey,
			redsync.WithExpiry(time.Minute*2), redsync.WithTries(5), redsync.WithRetryDelay(time.Millisecond*250))

		if err := mutex.Lock(); err != nil {
			log.Err(err).
				Str("evt.name", "http.idempotency.lock.failed").
				Str("key", key).
				Msg("failed to lock idempotency key. Returning error.")
			return apperr.ErrInternalError.Msg("failed to lock idempotency key: idempotency key is locked by another request; are you sending the same request concurrently or retrying with little or no backoff?")
		}

		defer func() {
			if _, err := mutex.Unlock(); err != nil {
				log.Err(err).
					Str("evt.name", "http.idempotency.unlock.failed").
					Str("key", key).
					Msg("failed to unlock idempotency key.")
			}
		}()

		// the request holding the lock before us may have stored a response meanwhile
		if exist, err := writeCachedResponse(c, config, storageKey); exist {
			return err
		}

		if err := c.Next(); err != nil {
			// failed requests are not remembered so that the client can retry
			return err
		}

		responseBytes, err := marshalResponse(c, config)
		if err != nil {
			log.Error().
				Str("evt.name", "http.idempotency.response.marshal.failed").
				Err(err).
				Msg("error marshaling response to bytes. Skipping saving the idempotency response.")
			return err
		}

		if err := config.Storage.Set(storageKey, responseBytes, config.Lifetime); err != nil {
			log.Error().
				Str("evt.name", "http.idempotency.response.save.failed").
				Err(err).
				Msg("error saving the idempotency response. Skipping saving the idempotency response.")
			return err
		}

		c.Set(constant.IdempotencyHeader, "saved")

		if l := log.Debug(); l.Enabled() {
			l.
				Str("evt.name", "http.idempotency.saved").
				Str("key", key).
				Msg("idempotency response saved")
		}

		return nil
	}
}

func marshalResponse(c *fiber.Ctx, conf *IdempotencyConfig) ([]byte, error) {
	response := idempotencyResponse{
		StatusCode: c.Response().StatusCode(),
		Body:       c.Response().Body(),
	}

	headers := c.GetRespHeaders()
	if conf.KeepResponseHeaders == nil {
		response.Headers = headers
	} else {
		response.Headers = make(map[string][]string)
		for header, values := range headers {
			if _, ok := conf.keepResponseHeadersMap[strings.ToLower(header)]; ok {
				response.Headers[header] = values
			}
		}
	}

	return msgpack.Marshal(response)
}

func writeCachedResponse(c *fiber.Ctx, conf *IdempotencyConfig, storageKey string) (bool, error) {
	raw, err := conf.Storage.Get(storageKey)
	if err != nil || raw == nil {
		return false, nil
	}

	var response idempotencyResponse
	if err := msgpack.Unmarshal(raw, &response); err != nil {
		return true, err
	}

	if l := log.Debug(); l.Enabled() {
		l.
			Str("evt.name", "http.idempotency.hit").
			Str("key", storageKey).
			Msg("idempotency key found in storage")
	}

	c.Status(response.StatusCode)
	for header, values := range response.Headers {
		c.Response().Header.Del(header)
		for _, value := range values {
			c.Response().Header.Add(header, value)
		}
	}
	c.Set(constant.IdempotencyHeader, "hit")

	if len(response.Body) > 0 {
		return true, c.Send(response.Body)
	}
	return true, nil
}
