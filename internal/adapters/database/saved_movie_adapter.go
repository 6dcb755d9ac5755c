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

// SavedMovieAdapter implements SavedMovieRepository over the document store's
// saved-movies collection.
type SavedMovieAdapter struct {
	client     *appwrite.Client
	databaseID string
	collection string
}

// NewSavedMovieAdapter creates a new saved movie adapter
func NewSavedMovieAdapter(client *appwrite.Client, cfg *config.AppwriteConfig) repositories.SavedMovieRepository {
	return &SavedMovieAdapter{
		client:     client,
		databaseID: cfg.DatabaseID,
		collection: cfg.SavedMoviesCollection,
	}
}

type savedMovieDoc struct {
	UserID     string `json:"user_id"`
	MovieID    string `json:"movie_id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path,omitempty"`
	Status     string `json:"status"`
}

func savedMovieFromDocument(doc *appwrite.Document) (*entities.SavedMovie, error) {
	payload := savedMovieDoc{}
	if err := json.Unmarshal(doc.Data, &payload); err != nil {
		return nil, apperrors.NewInternalError("failed to decode saved movie document", err)
	}

	return &entities.SavedMovie{
		DocumentID: doc.ID,
		UserID:     payload.UserID,
		MovieID:    payload.MovieID,
		Title:      payload.Title,
		PosterPath: payload.PosterPath,
		Status:     entities.WatchStatus(payload.Status),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// Save creates a record readable, updatable, and deletable only by its owner
func (a *SavedMovieAdapter) Save(ctx context.Context, record *entities.SavedMovie) (*entities.SavedMovie, error) {
	owner := appwrite.RoleUser(record.UserID)
	doc, err := a.client.Databases().CreateDocument(ctx, a.databaseID, a.collection, uuid.New().String(),
		savedMovieDoc{
			UserID:     record.UserID,
			MovieID:    record.MovieID,
			Title:      record.Title,
			PosterPath: record.PosterPath,
			Status:     string(record.Status),
		},
		[]string{
			appwrite.PermissionRead(owner),
			appwrite.PermissionUpdate(owner),
			appwrite.PermissionDelete(owner),
		},
	)
	if err != nil {
		return nil, apperrors.Domain("failed to save movie", err)
	}
	return savedMovieFromDocument(doc)
}

// UpdateStatus patches only the status attribute. Ownership is left to the
// store's document permissions.
func (a *SavedMovieAdapter) UpdateStatus(ctx context.Context, documentID string, status entities.WatchStatus) (*entities.SavedMovie, error) {
	doc, err := a.client.Databases().UpdateDocument(ctx, a.databaseID, a.collection, documentID,
		map[string]string{"status": string(status)},
	)
	if err != nil {
		return nil, apperrors.Domain("failed to update movie status", err)
	}
	return savedMovieFromDocument(doc)
}

// Delete hard-deletes a record
func (a *SavedMovieAdapter) Delete(ctx context.Context, documentID string) error {
	if err := a.client.Databases().DeleteDocument(ctx, a.databaseID, a.collection, documentID); err != nil {
		return apperrors.Domain("failed to delete movie", err)
	}
	return nil
}

// List returns the user's records newest-created first, optionally filtered
// by status. No pagination: the store returns the whole set.
func (a *SavedMovieAdapter) List(ctx context.Context, userID string, filter repositories.SavedMovieFilter) ([]*entities.SavedMovie, error) {
	queries := []string{appwrite.QueryEqual("user_id", userID)}
	if filter.Status != "" {
		queries = append(queries, appwrite.QueryEqual("status", string(filter.Status)))
	}
	queries = append(queries, appwrite.QueryOrderDesc("$createdAt"))

	list, err := a.client.Databases().ListDocuments(ctx, a.databaseID, a.collection, queries)
	if err != nil {
		return nil, apperrors.Domain("failed to fetch saved movies", err)
	}

	records := make([]*entities.SavedMovie, 0, len(list.Documents))
	for i := range list.Documents {
		record, err := savedMovieFromDocument(&list.Documents[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// GetByUserAndMovie returns the user's record for one movie, or (nil, nil)
// when the movie was never saved.
func (a *SavedMovieAdapter) GetByUserAndMovie(ctx context.Context, userID, movieID string) (*entities.SavedMovie, error) {
	list, err := a.client.Databases().ListDocuments(ctx, a.databaseID, a.collection, []string{
		appwrite.QueryEqual("user_id", userID),
		appwrite.QueryEqual("movie_id", movieID),
		appwrite.QueryLimit(1),
	})
	if err != nil {
		return nil, apperrors.Domain("failed to fetch saved movie", err)
	}
	if len(list.Documents) == 0 {
		return nil, nil
	}
	return savedMovieFromDocument(&list.Documents[0])
}
