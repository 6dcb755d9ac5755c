package providers

import (
	"context"

	"github.com/bananaflix/backend/internal/domain/entities"
)

// EventBus distributes watchlist events to subscribers
type EventBus interface {
	// Publish publishes an event to all subscribers of a channel
	Publish(ctx context.Context, channel string, event *entities.WatchlistEvent) error

	// Subscribe subscribes to events on a channel; the returned channel is
	// closed when ctx is cancelled.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.WatchlistEvent, error)

	// Close shuts down the bus and all subscriptions
	Close() error
}

// UserChannel returns the per-user watchlist channel name
func UserChannel(userID string) string {
	return "watchlist:" + userID
}
