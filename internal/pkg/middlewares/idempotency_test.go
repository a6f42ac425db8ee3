package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tripmates/itinerary-backend/internal/constant"
	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
)

type memoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string][]byte)}
}

func (s *memoryStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memoryStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = val
	return nil
}

func (s *memoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memoryStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

func (s *memoryStorage) Close() error { return nil }

func newIdempotentApp(storage fiber.Storage, calls *int) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := apperr.From(err); ok {
				return c.Status(e.StatusCode).JSON(e)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Post("/itineraries", Idempotency(&IdempotencyConfig{
		Lifetime:            time.Hour,
		KeyHeader:           constant.IdempotencyKeyHeader,
		KeepResponseHeaders: []string{fiber.HeaderContentType},
		Storage:             storage,
	}), func(c *fiber.Ctx) error {
		*calls++
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": *calls})
	})
	return app
}

func post(t *testing.T, app *fiber.App, key string) (*http.Response, string) {
	req := httptest.NewRequest(http.MethodPost, "/itineraries", nil)
	if key != "" {
		req.Header.Set(constant.IdempotencyKeyHeader, key)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIdempotencyWithoutKey(t *testing.T) {
	calls := 0
	app := newIdempotentApp(newMemoryStorage(), &calls)

	resp, body := post(t, app, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"id":1}`, body)
	assert.Empty(t, resp.Header.Get(constant.IdempotencyHeader))

	post(t, app, "")
	assert.Equal(t, 2, calls)
}

func TestIdempotencyInvalidKey(t *testing.T) {
	calls := 0
	app := newIdempotentApp(newMemoryStorage(), &calls)

	for _, key := range []string{"not a valid key!", strings.Repeat("a", 200)} {
		resp, _ := post(t, app, key)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, key)
	}
	assert.Zero(t, calls)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	storage := newMemoryStorage()
	stored, err := msgpack.Marshal(idempotencyResponse{
		StatusCode: fiber.StatusCreated,
		Headers:    map[string][]string{fiber.HeaderContentType: {fiber.MIMEApplicationJSON}},
		Body:       []byte(`{"id":42}`),
	})
	require.NoError(t, err)
	require.NoError(t, storage.Set("POST:/itineraries:abc123", stored, 0))

	calls := 0
	app := newIdempotentApp(storage, &calls)

	resp, body := post(t, app, "abc123")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "hit", resp.Header.Get(constant.IdempotencyHeader))
	assert.JSONEq(t, `{"id":42}`, body)
	assert.Zero(t, calls)
}

func TestMarshalResponseKeepsOnlyListedHeaders(t *testing.T) {
	app := fiber.New()
	conf := &IdempotencyConfig{KeepResponseHeaders: []string{fiber.HeaderContentType}}
	conf.keepResponseHeadersMap = map[string]struct{}{"content-type": {}}

	var raw []byte
	app.Get("/", func(c *fiber.Ctx) error {
		c.Set("X-Secret", "1")
		if err := c.Status(fiber.StatusAccepted).JSON(fiber.Map{"ok": true}); err != nil {
			return err
		}
		var err error
		raw, err = marshalResponse(c, conf)
		return err
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded idempotencyResponse
	require.NoError(t, msgpack.Unmarshal(raw, &decoded))
	assert.Equal(t, fiber.StatusAccepted, decoded.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(decoded.Body))
	assert.Contains(t, decoded.Headers, fiber.HeaderContentType)
	assert.NotContains(t, decoded.Headers, "X-Secret")
}
