package routes

import (
	"net/http"

	"github.com/bananaflix/backend/internal/api/handlers"
	"github.com/bananaflix/backend/internal/api/middleware"
	"github.com/bananaflix/backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	authHandler *handlers.AuthHandler

	movieHandler *handlers.MovieHandler

	watchlistHandler *handlers.WatchlistHandler

	sseHandler *handlers.SSEHandler

	clientConfigHandler *handlers.ClientConfigHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(

	authHandler *handlers.AuthHandler,

	movieHandler *handlers.MovieHandler,

	watchlistHandler *handlers.WatchlistHandler,

	sseHandler *handlers.SSEHandler,

	clientConfigHandler *handlers.ClientConfigHandler,

	cacheMiddleware *middleware.CacheMiddleware,

	metrics *observability.Metrics,

) *Router {

	return &Router{

		mux: http.NewServeMux(),

		authHandler: authHandler,

		movieHandler: movieHandler,

		watchlistHandler: watchlistHandler,

		sseHandler: sseHandler,

		clientConfigHandler: clientConfigHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}

}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}

	})

	// Client tuning endpoint

	r.mux.HandleFunc("GET /api/client-config", r.clientConfigHandler.GetClientConfig)

	// Auth endpoints

	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)

	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)

	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)

	r.mux.HandleFunc("GET /api/auth/me", r.authHandler.Me)

	// Movie catalog endpoints

	r.mux.HandleFunc("GET /api/movies", r.movieHandler.SearchMovies)

	r.mux.HandleFunc("GET /api/movies/trending", r.movieHandler.GetTrending)

	r.mux.HandleFunc("GET /api/movies/{id}", r.movieHandler.GetMovie)

	// Watchlist endpoints

	r.mux.HandleFunc("POST /api/users/{id}/watchlist", r.watchlistHandler.SaveMovie)

	r.mux.HandleFunc("GET /api/users/{id}/watchlist", r.watchlistHandler.ListMovies)

	r.mux.HandleFunc("PATCH /api/users/{id}/watchlist/{docId}", r.watchlistHandler.UpdateStatus)

	r.mux.HandleFunc("DELETE /api/users/{id}/watchlist/{docId}", r.watchlistHandler.RemoveMovie)

	r.mux.HandleFunc("GET /api/users/{id}/watchlist/status/{movieId}", r.watchlistHandler.GetMovieStatus)

	// Watchlist event stream
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/users/{id}/watchlist", r.sseHandler.StreamWatchlistUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
