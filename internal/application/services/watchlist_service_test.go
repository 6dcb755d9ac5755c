package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bananaflix/backend/internal/application/services"
	"github.com/bananaflix/backend/internal/domain/entities"
	"github.com/bananaflix/backend/internal/domain/repositories"
	apperrors "github.com/bananaflix/backend/pkg/errors"
)

type stubSavedMovieRepo struct {
	mu      sync.Mutex
	docs    map[string]*entities.SavedMovie
	nextID  int
	failAll bool
}

func newStubSavedMovieRepo() *stubSavedMovieRepo {
	return &stubSavedMovieRepo{docs: map[string]*entities.SavedMovie{}}
}

func (r *stubSavedMovieRepo) Save(ctx context.Context, movie *entities.SavedMovie) (*entities.SavedMovie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return nil, apperrors.NewExternalError("store down", nil)
	}
	r.nextID++
	stored := *movie
	stored.DocumentID = fmt.Sprintf("doc-%d", r.nextID)
	stored.CreatedAt = time.Now().Add(time.Duration(r.nextID) * time.Millisecond)
	stored.UpdatedAt = stored.CreatedAt
	r.docs[stored.DocumentID] = &stored
	out := stored
	return &out, nil
}

func (r *stubSavedMovieRepo) UpdateStatus(ctx context.Context, documentID string, status entities.WatchStatus) (*entities.SavedMovie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("Document with the requested ID could not be found")
	}
	doc.Status = status
	doc.UpdatedAt = time.Now()
	out := *doc
	return &out, nil
}

func (r *stubSavedMovieRepo) Delete(ctx context.Context, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[documentID]; !ok {
		return apperrors.NewNotFoundError("Document with the requested ID could not be found")
	}
	delete(r.docs, documentID)
	return nil
}

func (r *stubSavedMovieRepo) List(ctx context.Context, userID string, filter repositories.SavedMovieFilter) ([]*entities.SavedMovie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.SavedMovie
	for _, doc := range r.docs {
		if doc.UserID != userID {
			continue
		}
		if filter.Status != "" && doc.Status != filter.Status {
			continue
		}
		cp := *doc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubSavedMovieRepo) GetByUserAndMovie(ctx context.Context, userID, movieID string) (*entities.SavedMovie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return nil, apperrors.NewExternalError("store down", nil)
	}
	for _, doc := range r.docs {
		if doc.UserID == userID && doc.MovieID == movieID {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, nil
}

// stubEventBus records published events and signals each publish on a channel
// so tests can wait for the background goroutine.
type stubEventBus struct {
	mu        sync.Mutex
	published []*entities.WatchlistEvent
	notify    chan struct{}
}

func newStubEventBus() *stubEventBus {
	return &stubEventBus{notify: make(chan struct{}, 16)}
}

func (b *stubEventBus) Publish(ctx context.Context, channel string, event *entities.WatchlistEvent) error {
	b.mu.Lock()
	b.published = append(b.published, event)
	b.mu.Unlock()
	b.notify <- struct{}{}
	return nil
}

func (b *stubEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.WatchlistEvent, error) {
	return nil, nil
}

func (b *stubEventBus) Close() error { return nil }

func (b *stubEventBus) waitForEvent(t *testing.T) *entities.WatchlistEvent {
	t.Helper()
	select {
	case <-b.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event publish")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published[len(b.published)-1]
}

func sampleMovie() entities.MovieSummary {
	return entities.MovieSummary{ID: 550, Title: "Fight Club", PosterPath: "/fc.jpg"}
}

func TestWatchlistService_SaveThenGetStatus(t *testing.T) {
	svc := services.NewWatchlistService(newStubSavedMovieRepo())

	saved, err := svc.Save(context.Background(), "user-1", sampleMovie(), "")
	require.NoError(t, err)
	assert.Equal(t, "550", saved.MovieID)
	assert.Equal(t, entities.StatusUnwatched, saved.Status)

	status, err := svc.GetStatus(context.Background(), "user-1", 550)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, saved.DocumentID, status.DocumentID)
}

func TestWatchlistService_SaveIsIdempotentPerMovie(t *testing.T) {
	repo := newStubSavedMovieRepo()
	svc := services.NewWatchlistService(repo)

	first, err := svc.Save(context.Background(), "user-1", sampleMovie(), entities.StatusWatching)
	require.NoError(t, err)

	second, err := svc.Save(context.Background(), "user-1", sampleMovie(), entities.StatusWatched)
	require.NoError(t, err)

	// The existing record wins; the second status is ignored
	assert.Equal(t, first.DocumentID, second.DocumentID)
	assert.Equal(t, entities.StatusWatching, second.Status)
	assert.Len(t, repo.docs, 1)
}

func TestWatchlistService_SaveConcurrentSameMovie(t *testing.T) {
	repo := newStubSavedMovieRepo()
	svc := services.NewWatchlistService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Save(context.Background(), "user-1", sampleMovie(), "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, repo.docs, 1)
}

func TestWatchlistService_SaveInvalidStatus(t *testing.T) {
	svc := services.NewWatchlistService(newStubSavedMovieRepo())

	_, err := svc.Save(context.Background(), "user-1", sampleMovie(), "binged")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestWatchlistService_ChangeStatus(t *testing.T) {
	svc := services.NewWatchlistService(newStubSavedMovieRepo())

	saved, err := svc.Save(context.Background(), "user-1", sampleMovie(), "")
	require.NoError(t, err)

	other, err := svc.Save(context.Background(), "user-1", entities.MovieSummary{ID: 603, Title: "The Matrix"}, "")
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(context.Background(), "user-1", saved.DocumentID, entities.StatusWatched)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusWatched, updated.Status)

	// Only the targeted record changed
	list, err := svc.List(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, m := range list {
		if m.DocumentID == other.DocumentID {
			assert.Equal(t, entities.StatusUnwatched, m.Status)
		}
	}
}

func TestWatchlistService_RemoveExcludesFromList(t *testing.T) {
	svc := services.NewWatchlistService(newStubSavedMovieRepo())

	saved, err := svc.Save(context.Background(), "user-1", sampleMovie(), "")
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), "user-1", entities.MovieSummary{ID: 603, Title: "The Matrix"}, "")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), "user-1", saved.DocumentID))

	list, err := svc.List(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "603", list[0].MovieID)
}

func TestWatchlistService_ListFilteredAndOrdered(t *testing.T) {
	svc := services.NewWatchlistService(newStubSavedMovieRepo())

	_, err := svc.Save(context.Background(), "user-1", entities.MovieSummary{ID: 1, Title: "A"}, entities.StatusWatched)
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), "user-1", entities.MovieSummary{ID: 2, Title: "B"}, entities.StatusWatching)
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), "user-1", entities.MovieSummary{ID: 3, Title: "C"}, entities.StatusWatched)
	require.NoError(t, err)

	watched, err := svc.List(context.Background(), "user-1", entities.StatusWatched)
	require.NoError(t, err)
	require.Len(t, watched, 2)
	// Newest first
	assert.Equal(t, "3", watched[0].MovieID)
	assert.Equal(t, "1", watched[1].MovieID)
}

func TestWatchlistService_ListInvalidStatus(t *testing.T) {
	svc := services.NewWatchlistService(newStubSavedMovieRepo())

	_, err := svc.List(context.Background(), "user-1", "binged")
	require.Error(t, err)
}

func TestWatchlistService_GetStatusSwallowsBackendErrors(t *testing.T) {
	repo := newStubSavedMovieRepo()
	repo.failAll = true
	svc := services.NewWatchlistService(repo)

	status, err := svc.GetStatus(context.Background(), "user-1", 550)
	assert.NoError(t, err)
	assert.Nil(t, status)
}

func TestWatchlistService_PublishesEvents(t *testing.T) {
	svc := services.NewWatchlistService(newStubSavedMovieRepo())
	bus := newStubEventBus()
	svc.SetEventBus(bus)

	saved, err := svc.Save(context.Background(), "user-1", sampleMovie(), "")
	require.NoError(t, err)

	event := bus.waitForEvent(t)
	assert.Equal(t, entities.EventMovieSaved, event.Type)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, saved.DocumentID, event.DocumentID)
	assert.NotEmpty(t, event.ID)

	_, err = svc.ChangeStatus(context.Background(), "user-1", saved.DocumentID, entities.StatusWatched)
	require.NoError(t, err)
	event = bus.waitForEvent(t)
	assert.Equal(t, entities.EventStatusChanged, event.Type)
	assert.Equal(t, entities.StatusWatched, event.Status)

	require.NoError(t, svc.Remove(context.Background(), "user-1", saved.DocumentID))
	event = bus.waitForEvent(t)
	assert.Equal(t, entities.EventMovieRemoved, event.Type)
}
