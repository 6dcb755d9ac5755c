package providers

import (
	"context"

	"github.com/bananaflix/backend/internal/domain/entities"
)

// CatalogProvider is the port for the third-party movie catalog. All calls are
// read-only, stateless HTTP round trips.
type CatalogProvider interface {
	// SearchMovies runs a text search. Callers must special-case blank
	// queries before invoking this; an empty query is not a discover call.
	SearchMovies(ctx context.Context, query string) ([]entities.MovieSummary, error)

	// DiscoverMovies fetches the current popularity-ranked discovery list.
	DiscoverMovies(ctx context.Context) ([]entities.MovieSummary, error)

	// GetMovieDetails fetches the full detail record for one movie.
	GetMovieDetails(ctx context.Context, movieID int) (*entities.MovieDetails, error)
}
