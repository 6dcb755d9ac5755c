package repositories

import (
	"context"

	"github.com/bananaflix/backend/internal/domain/entities"
)

// SearchMetricRepository is the port for the search metrics collection.
// IncrementCount is read-then-write, not atomic; the service layer serializes
// concurrent increments per term.
type SearchMetricRepository interface {
	// GetByTerm returns the metric record for an exact term, or (nil, nil)
	// when the term has never been searched.
	GetByTerm(ctx context.Context, term string) (*entities.SearchMetric, error)

	// Create inserts a new metric record with count = 1.
	Create(ctx context.Context, metric *entities.SearchMetric) (*entities.SearchMetric, error)

	// IncrementCount bumps an existing record's count by one.
	IncrementCount(ctx context.Context, documentID string, currentCount int) error

	// TopByCount returns the most-searched terms, highest count first.
	TopByCount(ctx context.Context, limit int) ([]*entities.SearchMetric, error)
}
