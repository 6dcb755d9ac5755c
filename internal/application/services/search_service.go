package services

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bananaflix/backend/internal/domain/entities"
	"github.com/bananaflix/backend/internal/domain/providers"
	"github.com/bananaflix/backend/internal/infrastructure/observability"
)

// MetricsRecorder records one search occurrence for a term
type MetricsRecorder interface {
	RecordSearch(ctx context.Context, term string, representative entities.MovieSummary) error
}

// SearchService is the search pipeline: blank queries route to the discovery
// list, non-blank queries hit catalog search and count toward the term's
// popularity metric in the background.
type SearchService struct {
	catalog  providers.CatalogProvider
	recorder MetricsRecorder
	metrics  *observability.Metrics

	// generation guards SearchLatest against stale responses overwriting
	// fresher ones when in-flight searches resolve out of order.
	generation atomic.Uint64
}

// NewSearchService creates a new search service
func NewSearchService(catalog providers.CatalogProvider, recorder MetricsRecorder) *SearchService {
	return &SearchService{
		catalog:  catalog,
		recorder: recorder,
	}
}

// SetMetrics attaches the metrics recorder. Without it searches are
// simply not counted.
func (s *SearchService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Search runs one search. A blank query means "show the popularity-ranked
// discovery list", not a literal empty search. Successful non-blank searches
// with at least one result are counted fire-and-forget; a metrics failure
// never surfaces to the caller.
func (s *SearchService) Search(ctx context.Context, query string) ([]entities.MovieSummary, error) {
	query = strings.TrimSpace(query)
	if s.metrics != nil {
		observability.RecordSearchMetric(ctx, s.metrics, query == "")
	}
	if query == "" {
		return s.catalog.DiscoverMovies(ctx)
	}

	results, err := s.catalog.SearchMovies(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(results) > 0 && s.recorder != nil {
		top := results[0]
		// Count in the background on a fresh context; the request context
		// may be cancelled as soon as results render.
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := s.recorder.RecordSearch(bgCtx, query, top); err != nil {
				log.Printf("Warning: failed to record search %q: %v", query, err)
			}
		}()
	}

	return results, nil
}

// SearchLatest behaves like Search but marks the result stale when a newer
// SearchLatest call started while this one was in flight. Stale results must
// be discarded by the caller instead of rendered.
func (s *SearchService) SearchLatest(ctx context.Context, query string) (results []entities.MovieSummary, stale bool, err error) {
	gen := s.generation.Add(1)

	results, err = s.Search(ctx, query)
	if err != nil {
		return nil, false, err
	}

	if s.generation.Load() != gen {
		return nil, true, nil
	}
	return results, false, nil
}

// Details fetches the full detail record for one movie. Never cached.
func (s *SearchService) Details(ctx context.Context, movieID int) (*entities.MovieDetails, error) {
	return s.catalog.GetMovieDetails(ctx, movieID)
}
