// Package notifications provides realtime direct-message delivery over Redis
// pub/sub and websockets.
package notifications

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strconv"

	"atelier/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const directMessagePattern = "dm:user:*"

// Notifier publishes direct-message events into per-user Redis channels so
// every server instance can fan them out to its local websocket connections.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier using the provided Redis client. A nil client
// turns every operation into a no-op, matching the degraded cache mode.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishDirectMessage sends a payload to one user's channel.
func (n *Notifier) PublishDirectMessage(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// StartDirectSubscriber subscribes to every per-user channel and calls
// onMessage for each incoming event. The handler runs on a dedicated
// goroutine until ctx is cancelled; a panicking handler is logged and the
// loop keeps going.
func (n *Notifier) StartDirectSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, directMessagePattern)
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
							middleware.Logger.Error("panic in direct subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "dm:user:" + strconv.FormatUint(uint64(userID), 10)
}
