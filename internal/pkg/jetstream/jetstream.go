package jetstream

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

var ErrPublishTimeout = errors.New("jetstream: timeout waiting for publish ack")

// Publisher publishes JSON-encoded messages onto a JetStream subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, msgID string, v any) error
}

type JetStreamPublisher struct {
	js         nats.JetStreamContext
	ackTimeout time.Duration
}

func NewPublisher(js nats.JetStreamContext, ackTimeout time.Duration) *JetStreamPublisher {
	return &JetStreamPublisher{js: js, ackTimeout: ackTimeout}
}

// Publish waits for the server ack. msgID feeds the stream's duplicate window.
func (p *JetStreamPublisher) Publish(ctx context.Context, subject string, msgID string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var opts []nats.PubOpt
	if msgID != "" {
		opts = append(opts, nats.MsgId(msgID))
	}

	pub, err := p.js.PublishAsync(subject, b, opts...)
	if err != nil {
		return err
	}

	select {
	case err := <-pub.Err():
		return err
	case <-pub.Ok():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.ackTimeout):
		return ErrPublishTimeout
	}
}

// NopPublisher drops every message. Used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error {
	return nil
}
