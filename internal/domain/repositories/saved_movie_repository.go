package repositories

import (
	"context"

	"github.com/bananaflix/backend/internal/domain/entities"
)

// SavedMovieFilter narrows List results
type SavedMovieFilter struct {
	// Status filters to a single watch status when non-empty
	Status entities.WatchStatus
}

// SavedMovieRepository is the port for the user watchlist collection in the
// document store. Implementations do not enforce (user, movie) uniqueness;
// callers that need it must serialize their own check-then-create.
type SavedMovieRepository interface {
	// Save creates a new record with owner-only permissions and returns it
	// with store-assigned identity and timestamps.
	Save(ctx context.Context, record *entities.SavedMovie) (*entities.SavedMovie, error)

	// UpdateStatus partially updates the status field of a record. Ownership
	// is enforced by the store's document permissions, not checked here.
	UpdateStatus(ctx context.Context, documentID string, status entities.WatchStatus) (*entities.SavedMovie, error)

	// Delete hard-deletes a record.
	Delete(ctx context.Context, documentID string) error

	// List returns all of a user's records, newest-created first, optionally
	// filtered by status. Unbounded: the full result set comes back in one call.
	List(ctx context.Context, userID string, filter SavedMovieFilter) ([]*entities.SavedMovie, error)

	// GetByUserAndMovie returns the user's record for a movie, or (nil, nil)
	// when none exists.
	GetByUserAndMovie(ctx context.Context, userID, movieID string) (*entities.SavedMovie, error)
}
