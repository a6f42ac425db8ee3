package chatgen_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tripmates/itinerary-backend/internal/model"
	"github.com/tripmates/itinerary-backend/internal/pkg/chatgen"
)

var prompts = &model.ItineraryPrompts{
	StartDate: "2024-05-01",
	EndDate:   "2024-05-03",
	Country:   "Japan",
	Category:  "food",
}

func newClient(url string) *chatgen.Client {
	return chatgen.New(chatgen.Config{
		BaseURL:  url,
		APIKey:   "sk-test",
		Model:    "gpt-test",
		Timeout:  time.Second,
		Attempts: 3,
	})
}

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-test", gjson.GetBytes(body, "model").String())
		assert.Contains(t, gjson.GetBytes(body, "messages.1.content").String(), "Japan")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"[{\"name\":\"Museum\"}]"}}]}`)
	})

	got, err := newClient(srv.URL).Generate(context.Background(), prompts)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Museum"}]`, got)
}

func TestGenerateStripsCodeFence(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"`+"```json\\n[]\\n```"+`"}}]}`)
	})

	got, err := newClient(srv.URL).Generate(context.Background(), prompts)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"[]"}}]}`)
	})

	got, err := newClient(srv.URL).Generate(context.Background(), prompts)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
	assert.EqualValues(t, 3, calls.Load())
}

func TestGenerateGivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := newClient(srv.URL).Generate(context.Background(), prompts)
	require.Error(t, err)

	var statusErr *chatgen.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.EqualValues(t, 3, calls.Load())
}

func TestGenerateDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := newClient(srv.URL).Generate(context.Background(), prompts)

	var statusErr *chatgen.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGenerateEmptyCompletion(t *testing.T) {
	for _, body := range []string{
		`{"choices":[{"message":{"content":"   "}}]}`,
		`{"choices":[]}`,
	} {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})

		_, err := newClient(srv.URL).Generate(context.Background(), prompts)
		assert.ErrorIs(t, err, chatgen.ErrEmptyCompletion, body)
	}
}

func TestGenerateHonoursContext(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := newClient(srv.URL).Generate(ctx, prompts)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[1]", chatgen.StripCodeFence("[1]"))
	assert.Equal(t, "[1]", chatgen.StripCodeFence("  ```\n[1]\n```  "))
	assert.Equal(t, `[{"a":1}]`, chatgen.StripCodeFence("```json\n[{\"a\":1}]```"))
	assert.Equal(t, "", chatgen.StripCodeFence("```"))
}

func TestBuildPrompt(t *testing.T) {
	p := chatgen.BuildPrompt(prompts)
	assert.Contains(t, p, "Japan")
	assert.Contains(t, p, "2024-05-01")
	assert.Contains(t, p, "food")
	assert.Contains(t, p, "activity_order")
}
