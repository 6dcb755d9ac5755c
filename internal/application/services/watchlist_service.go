package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bananaflix/backend/internal/domain/entities"
	"github.com/bananaflix/backend/internal/domain/providers"
	"github.com/bananaflix/backend/internal/domain/repositories"
	apperrors "github.com/bananaflix/backend/pkg/errors"
)

// WatchlistService orchestrates the saved-movie workflow: save, change
// status, remove, list, and the best-effort saved-status check.
type WatchlistService struct {
	repo  repositories.SavedMovieRepository
	bus   providers.EventBus
	locks *keyedMutex
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(repo repositories.SavedMovieRepository) *WatchlistService {
	return &WatchlistService{
		repo:  repo,
		locks: newKeyedMutex(),
	}
}

// SetEventBus enables change events for real-time list updates
func (s *WatchlistService) SetEventBus(bus providers.EventBus) {
	s.bus = bus
}

// Save persists a movie on the user's watchlist. One record per (user, movie)
// pair: the check-then-create is serialized per pair, and an already-saved
// movie returns its existing record instead of a duplicate.
func (s *WatchlistService) Save(ctx context.Context, userID string, movie entities.MovieSummary, initialStatus entities.WatchStatus) (*entities.SavedMovie, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if initialStatus == "" {
		initialStatus = entities.StatusUnwatched
	}
	if !initialStatus.IsValid() {
		return nil, apperrors.NewValidationError("invalid watch status: " + string(initialStatus))
	}

	movieID := entities.MovieKey(movie.ID)
	unlock := s.locks.Lock(userID + "|" + movieID)
	defer unlock()

	existing, err := s.repo.GetByUserAndMovie(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	record, err := s.repo.Save(ctx, &entities.SavedMovie{
		UserID:     userID,
		MovieID:    movieID,
		Title:      movie.Title,
		PosterPath: movie.PosterPath,
		Status:     initialStatus,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(&entities.WatchlistEvent{
		Type:       entities.EventMovieSaved,
		UserID:     userID,
		DocumentID: record.DocumentID,
		MovieID:    record.MovieID,
		Title:      record.Title,
		Status:     record.Status,
	})

	return record, nil
}

// ChangeStatus updates only the status field of a record. Ownership is not
// checked here; the store's document permissions reject foreign updates.
func (s *WatchlistService) ChangeStatus(ctx context.Context, userID, documentID string, status entities.WatchStatus) (*entities.SavedMovie, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid watch status: " + string(status))
	}

	record, err := s.repo.UpdateStatus(ctx, documentID, status)
	if err != nil {
		return nil, err
	}

	s.publishEvent(&entities.WatchlistEvent{
		Type:       entities.EventStatusChanged,
		UserID:     userID,
		DocumentID: record.DocumentID,
		MovieID:    record.MovieID,
		Status:     record.Status,
	})

	return record, nil
}

// Remove hard-deletes a record from the user's watchlist
func (s *WatchlistService) Remove(ctx context.Context, userID, documentID string) error {
	if err := s.repo.Delete(ctx, documentID); err != nil {
		return err
	}

	s.publishEvent(&entities.WatchlistEvent{
		Type:       entities.EventMovieRemoved,
		UserID:     userID,
		DocumentID: documentID,
	})

	return nil
}

// List returns the user's watchlist newest-first, optionally filtered to a
// single status. Unbounded by design: no pagination.
func (s *WatchlistService) List(ctx context.Context, userID string, status entities.WatchStatus) ([]*entities.SavedMovie, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if status != "" && !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid watch status: " + string(status))
	}

	return s.repo.List(ctx, userID, repositories.SavedMovieFilter{Status: status})
}

// GetStatus reports whether the user has saved a movie and with what status.
// Best-effort: backend failures come back as (nil, nil), never as an error.
func (s *WatchlistService) GetStatus(ctx context.Context, userID string, catalogMovieID int) (*entities.SavedMovie, error) {
	record, err := s.repo.GetByUserAndMovie(ctx, userID, entities.MovieKey(catalogMovieID))
	if err != nil {
		log.Printf("Warning: failed to check saved status for movie %d: %v", catalogMovieID, err)
		return nil, nil
	}
	return record, nil
}

// publishEvent emits a change event in the background. Event delivery never
// blocks or fails a mutation.
func (s *WatchlistService) publishEvent(event *entities.WatchlistEvent) {
	if s.bus == nil {
		return
	}

	event.ID = uuid.New().String()
	event.Timestamp = time.Now()

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		channel := providers.UserChannel(event.UserID)
		if err := s.bus.Publish(bgCtx, channel, event); err != nil {
			log.Printf("Warning: failed to publish watchlist event %s: %v", event.Type, err)
		}
	}()
}
