package infra_redis_notifier

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/mkrogh/reelmatch/internal/model"
)

// Driver is the realtime notifier: one pub/sub channel per session carrying
// the row-change events the usecases publish after store writes. The store
// remains the source of truth; a dropped event only delays subscribers until
// their poll fallback.
type Driver struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func New(client *redis.Client, prefix string) *Driver {
	if prefix == "" {
		prefix = "session_events"
	}
	return &Driver{
		client: client,
		prefix: prefix,
		logger: slog.Default(),
	}
}

func (d *Driver) channel(sessionID uuid.UUID) string {
	return d.prefix + ":" + sessionID.String()
}

func (d *Driver) Publish(_ context.Context, event model.SessionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return d.client.Publish(d.channel(event.SessionID), payload).Err()
}

// Subscribe streams the session's events until cancel is called. Slow
// consumers lose events rather than block the pump.
func (d *Driver) Subscribe(_ context.Context, sessionID uuid.UUID) (<-chan model.SessionEvent, func(), error) {
	pubsub := d.client.Subscribe(d.channel(sessionID))
	if _, err := pubsub.Receive(); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan model.SessionEvent, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event model.SessionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				d.logger.Error("failed to decode session event",
					slog.String("channel", msg.Channel),
					slog.String("error", err.Error()))
				continue
			}
			select {
			case out <- event:
			default:
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return out, cancel, nil
}
