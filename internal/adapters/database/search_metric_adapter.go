package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/bananaflix/backend/internal/domain/entities"
	"github.com/bananaflix/backend/internal/domain/repositories"
	"github.com/bananaflix/backend/internal/infrastructure/clients/appwrite"
	"github.com/bananaflix/backend/pkg/config"
	apperrors "github.com/bananaflix/backend/pkg/errors"
)

// SearchMetricAdapter implements SearchMetricRepository over the metrics
// collection. The store has no atomic increment, so IncrementCount writes the
// caller-observed count + 1; concurrent increments for the same term must be
// serialized by the caller.
type SearchMetricAdapter struct {
	client     *appwrite.Client
	databaseID string
	collection string
}

// NewSearchMetricAdapter creates a new search metric adapter
func NewSearchMetricAdapter(client *appwrite.Client, cfg *config.AppwriteConfig) repositories.SearchMetricRepository {
	return &SearchMetricAdapter{
		client:     client,
		databaseID: cfg.DatabaseID,
		collection: cfg.MetricsCollection,
	}
}

type searchMetricDoc struct {
	SearchTerm string `json:"searchTerm"`
	MovieID    int    `json:"movie_id"`
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url,omitempty"`
	Count      int    `json:"count"`
}

func searchMetricFromDocument(doc *appwrite.Document) (*entities.SearchMetric, error) {
	payload := searchMetricDoc{}
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		return nil, apperrors.NewInternalError("failed to decode search metric document", err)
	}

	return &entities.SearchMetric{
		DocumentID: doc.ID,
		SearchTerm: payload.SearchTerm,
		MovieID:    payload.MovieID,
		Title:      payload.Title,
		PosterURL:  payload.PosterURL,
		Count:      payload.Count,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// GetByTerm returns the metric record for an exact term, or (nil, nil)
func (a *SearchMetricAdapter) GetByTerm(ctx context.Context, term string) (*entities.SearchMetric, error) {
	list, err := a.client.Databases().ListDocuments(ctx, a.databaseID, a.collection, []string{
		appwrite.QueryEqual("searchTerm", term),
		appwrite.QueryLimit(1),
	})
	if err != nil {
		return nil, apperrors.Domain("failed to fetch search metric", err)
	}
	if len(list.Documents) == 0 {
		return nil, nil
	}
	return searchMetricFromDocument(&list.Documents[0])
}

// Create inserts a new metric record. Metrics are process-wide, not per-user,
// so no per-document permissions are attached.
func (a *SearchMetricAdapter) Create(ctx context.Context, metric *entities.SearchMetric) (*entities.SearchMetric, error) {
	doc, err := a.client.Databases().CreateDocument(ctx, a.databaseID, a.collection, uuid.New().String(),
		searchMetricDoc{
			SearchTerm: metric.SearchTerm,
			MovieID:    metric.MovieID,
			Title:      metric.Title,
			PosterURL:  metric.PosterURL,
			Count:      metric.Count,
		},
		nil,
	)
	if err != nil {
		return nil, apperrors.Domain("failed to create search metric", err)
	}
	return searchMetricFromDocument(doc)
}

// IncrementCount bumps the count by one, based on the count the caller read
func (a *SearchMetricAdapter) IncrementCount(ctx context.Context, documentID string, currentCount int) error {
	_, err := a.client.Databases().UpdateDocument(ctx, a.databaseID, a.collection, documentID,
		map[string]int{"count": currentCount + 1},
	)
	if err != nil {
		return apperrors.Domain("failed to increment search metric", err)
	}
	return nil
}

// TopByCount returns the most-searched terms, highest count first
func (a *SearchMetricAdapter) TopByCount(ctx context.Context, limit int) ([]*entities.SearchMetric, error) {
	list, err := a.client.Databases().ListDocuments(ctx, a.databaseID, a.collection, []string{
		appwrite.QueryLimit(limit),
		appwrite.QueryOrderDesc("count"),
	})
	if err != nil {
		return nil, apperrors.Domain("failed to fetch trending metrics", err)
	}

	metrics := make([]*entities.SearchMetric, 0, len(list.Documents))
	for i := range list.Documents {
		metric, err := searchMetricFromDocument(&list.Documents[i])
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, metric)
	}
	return metrics, nil
}
