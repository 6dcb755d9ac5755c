package entities

import "time"

// WatchlistEventType identifies the kind of watchlist change
type WatchlistEventType string

const (
	EventMovieSaved    WatchlistEventType = "movie_saved"
	EventStatusChanged WatchlistEventType = "status_changed"
	EventMovieRemoved  WatchlistEventType = "movie_removed"
)

// WatchlistEvent is published on every successful watchlist mutation so
// interested screens can refresh without polling.
type WatchlistEvent struct {
	ID         string             `json:"id"`
	Type       WatchlistEventType `json:"type"`
	UserID     string             `json:"user_id"`
	DocumentID string             `json:"document_id"`
	MovieID    string             `json:"movie_id"`
	Title      string             `json:"title,omitempty"`
	Status     WatchStatus        `json:"status,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
}
