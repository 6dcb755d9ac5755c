package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bananaflix/backend/internal/adapters/cache"
	"github.com/bananaflix/backend/internal/adapters/database"
	"github.com/bananaflix/backend/internal/adapters/events"
	"github.com/bananaflix/backend/internal/api/handlers"
	"github.com/bananaflix/backend/internal/api/middleware"
	"github.com/bananaflix/backend/internal/api/routes"
	"github.com/bananaflix/backend/internal/application/services"
	"github.com/bananaflix/backend/internal/domain/providers"
	"github.com/bananaflix/backend/internal/infrastructure/clients/appwrite"
	"github.com/bananaflix/backend/internal/infrastructure/clients/redisclient"
	"github.com/bananaflix/backend/internal/infrastructure/clients/tmdb"
	"github.com/bananaflix/backend/internal/infrastructure/observability"
	"github.com/bananaflix/backend/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var metrics *observability.Metrics
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")

			metrics, err = observability.InitMetrics()
			if err != nil {
				log.Fatalf("Failed to initialize metrics: %v", err)
			}
		}
	}

	// Initialize document store client
	if err := cfg.Appwrite.Validate(); err != nil {
		log.Fatalf("Invalid document store configuration: %v", err)
	}
	storeClient, err := appwrite.NewClient(&cfg.Appwrite)
	if err != nil {
		log.Fatalf("Failed to initialize document store client: %v", err)
	}
	log.Println("Document store client initialized successfully")

	// Initialize movie catalog client
	catalogClient, err := tmdb.NewClient(&cfg.Catalog)
	if err != nil {
		log.Fatalf("Failed to initialize catalog client: %v", err)
	}
	log.Println("Catalog client initialized successfully")

	if metrics != nil {
		catalogClient.SetMetrics(metrics)
		storeClient.SetMetrics(metrics)
	}

	// Initialize Redis client
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without it
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize adapters

	savedMovieAdapter := database.NewSavedMovieAdapter(storeClient, &cfg.Appwrite)
	searchMetricAdapter := database.NewSearchMetricAdapter(storeClient, &cfg.Appwrite)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	} else {
		// In-process fallback keeps trending and catalog caching working
		cacheProvider = cache.NewMemoryAdapter(0)
		log.Println("Using in-process cache (Redis unavailable)")
	}

	// Initialize event bus for real-time watchlist updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize services

	authService := services.NewAuthService(storeClient.Account())
	authService.Initialize(ctx)

	metricsService := services.NewSearchMetricsService(searchMetricAdapter)
	metricsService.SetCache(cacheProvider)
	metricsService.SetTrendingLimit(cfg.Search.TrendingLimit)

	searchService := services.NewSearchService(catalogClient, metricsService)
	if metrics != nil {
		searchService.SetMetrics(metrics)
	}

	watchlistService := services.NewWatchlistService(savedMovieAdapter)
	if eventBus != nil {
		watchlistService.SetEventBus(eventBus)
		log.Println("Event bus configured for watchlist service")
	}

	// Initialize handlers

	authHandler := handlers.NewAuthHandler(authService)

	movieHandler := handlers.NewMovieHandler(searchService, metricsService)

	watchlistHandler := handlers.NewWatchlistHandler(watchlistService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	clientConfigHandler := handlers.NewClientConfigHandler(cfg.Search)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		authHandler,
		movieHandler,
		watchlistHandler,
		sseHandler,
		clientConfigHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
