// Package notifications delivers live content events to admin dashboard clients.
package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"runtime/debug"
	"time"

	"khabri/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const eventsChannel = "events:content"

// Event describes a content change or reader interaction. The admin
// dashboard subscribes to these to update its numbers without polling.
type Event struct {
	Type   string    `json:"type"` // post_created, post_updated, post_deleted, post_viewed, interaction, comment_created
	PostID uint      `json:"post_id,omitempty"`
	Slug   string    `json:"slug,omitempty"`
	Kind   string    `json:"kind,omitempty"` // interaction kind: like, share, click
	At     time.Time `json:"at"`
}

// Notifier publishes content events into Redis so every server instance can
// fan them out to its connected dashboard clients.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends an event to the shared channel. A nil Redis client makes this
// a no-op; the event feed is best-effort and never blocks request handling.
func (n *Notifier) Publish(ctx context.Context, ev Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, eventsChannel, payload).Err()
}

// StartSubscriber subscribes to the event channel and calls onMessage for
// each payload until ctx is cancelled.
func (n *Notifier) StartSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in event subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())))
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
