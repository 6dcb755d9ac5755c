package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bananaflix/backend/internal/domain/entities"
)

// WatchlistService defines the saved-movie operations used by the handler.
type WatchlistService interface {
	Save(ctx context.Context, userID string, movie entities.MovieSummary, initialStatus entities.WatchStatus) (*entities.SavedMovie, error)
	ChangeStatus(ctx context.Context, userID, documentID string, status entities.WatchStatus) (*entities.SavedMovie, error)
	Remove(ctx context.Context, userID, documentID string) error
	List(ctx context.Context, userID string, status entities.WatchStatus) ([]*entities.SavedMovie, error)
	GetStatus(ctx context.Context, userID string, catalogMovieID int) (*entities.SavedMovie, error)
}

// WatchlistHandler handles saved-movie HTTP requests
type WatchlistHandler struct {
	service WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(service WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

type saveMovieRequest struct {
	Movie  entities.MovieSummary `json:"movie"`
	Status entities.WatchStatus  `json:"status"`
}

type changeStatusRequest struct {
	Status entities.WatchStatus `json:"status"`
}

// SaveMovie handles POST /api/users/{id}/watchlist
func (h *WatchlistHandler) SaveMovie(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var payload saveMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Movie.ID == 0 {
		respondWithError(w, http.StatusBadRequest, "movie id is required")
		return
	}

	saved, err := h.service.Save(r.Context(), userID, payload.Movie, payload.Status)
	if err != nil {
		respondWithAppError(w, err, "failed to save movie")
		return
	}

	respondWithJSON(w, http.StatusCreated, saved)
}

// ListMovies handles GET /api/users/{id}/watchlist
func (h *WatchlistHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	status := entities.WatchStatus(r.URL.Query().Get("status"))

	movies, err := h.service.List(r.Context(), userID, status)
	if err != nil {
		respondWithAppError(w, err, "failed to fetch watchlist")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"movies": movies,
		"count":  len(movies),
	})
}

// UpdateStatus handles PATCH /api/users/{id}/watchlist/{docId}
func (h *WatchlistHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	documentID := r.PathValue("docId")
	if userID == "" || documentID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID and document ID are required")
		return
	}

	var payload changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, err := h.service.ChangeStatus(r.Context(), userID, documentID, payload.Status)
	if err != nil {
		respondWithAppError(w, err, "failed to update movie status")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// RemoveMovie handles DELETE /api/users/{id}/watchlist/{docId}
func (h *WatchlistHandler) RemoveMovie(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	documentID := r.PathValue("docId")
	if userID == "" || documentID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID and document ID are required")
		return
	}

	if err := h.service.Remove(r.Context(), userID, documentID); err != nil {
		respondWithAppError(w, err, "failed to remove movie")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "removed",
	})
}

// GetMovieStatus handles GET /api/users/{id}/watchlist/status/{movieId}.
// Always 200: a movie that is not saved, or whose status could not be
// checked, reports saved=false.
func (h *WatchlistHandler) GetMovieStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	movieID, err := strconv.Atoi(r.PathValue("movieId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "movie ID must be numeric")
		return
	}

	saved, _ := h.service.GetStatus(r.Context(), userID, movieID)
	if saved == nil {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"saved": false,
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"saved":  true,
		"record": saved,
	})
}
