package entities

import (
	"strconv"
	"time"
)

// WatchStatus is the watch state of a saved movie
type WatchStatus string

const (
	StatusWatching  WatchStatus = "watching"
	StatusWatched   WatchStatus = "watched"
	StatusUnwatched WatchStatus = "unwatched"
)

// IsValid reports whether s is one of the three known statuses
func (s WatchStatus) IsValid() bool {
	switch s {
	case StatusWatching, StatusWatched, StatusUnwatched:
		return true
	}
	return false
}

// SavedMovie is a user's persisted association with a movie plus watch status.
// MovieID is the string form of the catalog's integer id: the store cannot
// filter a numeric field against the catalog id without casting, so the
// relation is string-matched.
type SavedMovie struct {
	DocumentID string      `json:"document_id"`
	UserID     string      `json:"user_id"`
	MovieID    string      `json:"movie_id"`
	Title      string      `json:"title"`
	PosterPath string      `json:"poster_path,omitempty"`
	Status     WatchStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// MovieKey returns the string form of a catalog movie id as stored on
// SavedMovie.MovieID.
func MovieKey(catalogID int) string {
	return strconv.Itoa(catalogID)
}
