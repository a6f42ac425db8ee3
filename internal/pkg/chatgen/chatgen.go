// Package chatgen is a client for an OpenAI-compatible chat completions endpoint,
// used to generate the activity list of a new itinerary.
package chatgen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/tripmates/itinerary-backend/internal/model"
)

var ErrEmptyCompletion = errors.New("chatgen: completion has no content")

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chatgen: unexpected status %d: %s", e.StatusCode, e.Body)
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string

	// Timeout bounds a single attempt. The caller's context bounds the whole call.
	Timeout time.Duration

	// Attempts is the total number of tries for transport errors and 5xx responses.
	Attempts   uint
	RetryDelay time.Duration
}

type Client struct {
	client *resty.Client
	conf   Config
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

func New(conf Config) *Client {
	if conf.Attempts == 0 {
		conf.Attempts = 1
	}

	c := resty.New().
		SetBaseURL(strings.TrimRight(conf.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(conf.Timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if conf.APIKey != "" {
		c.SetAuthToken(conf.APIKey)
	}

	return &Client{client: c, conf: conf}
}

// Generate asks the model for the activities of the trip described by prompts and
// returns the raw completion text, expected to be a JSON array of activity records.
func (c *Client) Generate(ctx context.Context, prompts *model.ItineraryPrompts) (string, error) {
	body := completionRequest{
		Model: c.conf.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(prompts)},
		},
		Temperature: 0.7,
	}

	var content string
	err := retry.Do(
		func() error {
			resp, err := c.client.R().
				SetContext(ctx).
				SetBody(&body).
				Post("/chat/completions")
			if err != nil {
				return err
			}
			if resp.StatusCode() >= http.StatusInternalServerError {
				return &StatusError{StatusCode: resp.StatusCode(), Body: resp.String()}
			}
			if resp.IsError() {
				return retry.Unrecoverable(&StatusError{StatusCode: resp.StatusCode(), Body: resp.String()})
			}

			content = gjson.GetBytes(resp.Body(), "choices.0.message.content").String()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.conf.Attempts),
		retry.Delay(c.conf.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Str("evt.name", "chatgen.retry").
				Uint("attempt", n+1).
				Err(err).
				Msg("generation request failed, retrying")
		}),
	)
	if err != nil {
		return "", err
	}

	content = StripCodeFence(content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

// StripCodeFence removes a surrounding Markdown code fence, which chat models tend
// to add around JSON even when asked not to.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	_, rest, found := strings.Cut(s, "\n")
	if !found {
		return ""
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}
