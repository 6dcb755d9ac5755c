package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/bananaflix/backend/internal/domain/entities"
	"github.com/bananaflix/backend/internal/domain/providers"
	"github.com/bananaflix/backend/internal/domain/repositories"
	apperrors "github.com/bananaflix/backend/pkg/errors"
)

const (
	defaultTrendingLimit = 5
	trendingCacheTTL     = 30 // seconds
)

// SearchMetricsService maintains the per-term popularity counters behind the
// trending list. Increments are get-then-write because the store has no
// atomic counter; concurrent calls for the same term are serialized per key
// so no update is lost.
type SearchMetricsService struct {
	repo         repositories.SearchMetricRepository
	cache        providers.CacheProvider
	locks        *keyedMutex
	defaultLimit int
}

// NewSearchMetricsService creates a new search metrics service
func NewSearchMetricsService(repo repositories.SearchMetricRepository) *SearchMetricsService {
	return &SearchMetricsService{
		repo:         repo,
		locks:        newKeyedMutex(),
		defaultLimit: defaultTrendingLimit,
	}
}

// SetCache enables trending-list caching
func (s *SearchMetricsService) SetCache(cache providers.CacheProvider) {
	s.cache = cache
}

// SetTrendingLimit overrides the default trending list size
func (s *SearchMetricsService) SetTrendingLimit(limit int) {
	if limit > 0 {
		s.defaultLimit = limit
	}
}

// RecordSearch counts one search for term. On a term's first search a record
// is created with the top-ranked result as its representative movie; repeats
// only bump the count, so the representative can lag the current top result.
func (s *SearchMetricsService) RecordSearch(ctx context.Context, term string, representative entities.MovieSummary) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return apperrors.NewValidationError("search term is required")
	}

	unlock := s.locks.Lock(term)
	defer unlock()

	existing, err := s.repo.GetByTerm(ctx, term)
	if err != nil {
		return err
	}

	if existing != nil {
		return s.repo.IncrementCount(ctx, existing.DocumentID, existing.Count)
	}

	_, err = s.repo.Create(ctx, &entities.SearchMetric{
		SearchTerm: term,
		MovieID:    representative.ID,
		Title:      representative.Title,
		PosterURL:  representative.PosterURL(),
		Count:      1,
	})
	return err
}

// Trending returns the most-searched terms, highest count first. Served from
// cache for a short window when a cache is configured.
func (s *SearchMetricsService) Trending(ctx context.Context, limit int) ([]*entities.SearchMetric, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	cacheKey := fmt.Sprintf("trending:%d", limit)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var metrics []*entities.SearchMetric
			if err := json.Unmarshal(cached, &metrics); err == nil {
				return metrics, nil
			}
		}
	}

	metrics, err := s.repo.TopByCount(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Populate the cache off the request path
		go func() {
			bgCtx := context.Background()
			if data, err := json.Marshal(metrics); err == nil {
				if err := s.cache.Set(bgCtx, cacheKey, data, trendingCacheTTL); err != nil {
					log.Printf("Warning: failed to cache trending metrics: %v", err)
				}
			}
		}()
	}

	return metrics, nil
}
