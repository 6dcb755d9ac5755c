package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bananaflix/backend/internal/domain/entities"
)

// MovieService defines the catalog operations used by the handler.
type MovieService interface {
	Search(ctx context.Context, query string) ([]entities.MovieSummary, error)
	Details(ctx context.Context, movieID int) (*entities.MovieDetails, error)
}

// TrendingService defines the trending-terms operation used by the handler.
type TrendingService interface {
	Trending(ctx context.Context, limit int) ([]*entities.SearchMetric, error)
}

// MovieHandler handles movie catalog HTTP requests
type MovieHandler struct {
	movies   MovieService
	trending TrendingService
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(movies MovieService, trending TrendingService) *MovieHandler {
	return &MovieHandler{
		movies:   movies,
		trending: trending,
	}
}

// SearchMovies handles GET /api/movies. An absent or blank q parameter
// returns the popularity-ranked discovery list.
func (h *MovieHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	movies, err := h.movies.Search(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err, "failed to fetch movies")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"movies": movies,
		"count":  len(movies),
	})
}

// GetMovie handles GET /api/movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "movie ID must be numeric")
		return
	}

	details, err := h.movies.Details(r.Context(), movieID)
	if err != nil {
		respondWithAppError(w, err, "failed to fetch movie details")
		return
	}

	respondWithJSON(w, http.StatusOK, details)
}

// GetTrending handles GET /api/movies/trending
func (h *MovieHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	metrics, err := h.trending.Trending(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err, "failed to fetch trending searches")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"trending": metrics,
		"count":    len(metrics),
	})
}
