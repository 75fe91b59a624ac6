package events

import (
	"context"
	"encoding/json"
	"roaddogs/config"
	"roaddogs/internal/database"
	"roaddogs/internal/logger"
	"time"

	"github.com/valkey-io/valkey-go"
)

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventBus fans events out over valkey pub/sub so the websocket layer (and
// any future worker) can react without coupling to the publishers.
type EventBus struct {
	client database.CacheClient
	log    logger.Logger
	cancel context.CancelFunc
}

func New(client database.CacheClient, config config.Config) *EventBus {
	return &EventBus{
		client: client,
		log:    logger.New("events"),
	}
}

func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	if b.client == nil {
		return log.Error("no event bus client configured", "channel", channel)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "channel", channel, "type", event.Type)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.client.Do(ctx, b.client.B().Publish().
		Channel(channel).Message(string(payload)).Build()).Error(); err != nil {
		return log.Err("failed to publish event", err, "channel", channel, "type", event.Type)
	}

	return nil
}

// Subscribe blocks, invoking handler for every event on the channel until
// the context is cancelled. Malformed payloads are logged and skipped.
func (b *EventBus) Subscribe(ctx context.Context, channel string, handler func(Event)) error {
	log := b.log.Function("Subscribe")

	if b.client == nil {
		return log.Error("no event bus client configured", "channel", channel)
	}

	ctx, b.cancel = context.WithCancel(ctx)

	err := b.client.Receive(ctx, b.client.B().Subscribe().Channel(channel).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err, "channel", channel)
				return
			}
			handler(event)
		})
	if err != nil && ctx.Err() == nil {
		return log.Err("subscription ended", err, "channel", channel)
	}

	return nil
}

func (b *EventBus) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}
