package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Appwrite AppwriteConfig
	Redis    RedisConfig
	Search   SearchConfig
	OTEL     OTELConfig
	Env      string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// CatalogConfig holds movie catalog (TMDB) configuration
type CatalogConfig struct {
	BaseURL     string
	BearerToken string
	ImageBase   string
}

// AppwriteConfig holds document store configuration
type AppwriteConfig struct {
	Endpoint              string
	ProjectID             string
	APIKey                string
	DatabaseID            string
	MetricsCollection     string
	SavedMoviesCollection string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SearchConfig holds search pipeline tuning
type SearchConfig struct {
	DebounceDelay time.Duration
	TrendingLimit int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Catalog: CatalogConfig{
			BaseURL:     getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			BearerToken: getEnv("TMDB_BEARER_TOKEN", ""),
			ImageBase:   getEnv("TMDB_IMAGE_BASE", "https://image.tmdb.org/t/p/w500"),
		},
		Appwrite: AppwriteConfig{
			Endpoint:              getEnv("APPWRITE_ENDPOINT", "https://cloud.appwrite.io/v1"),
			ProjectID:             getEnv("APPWRITE_PROJECT_ID", ""),
			APIKey:                getEnv("APPWRITE_API_KEY", ""),
			DatabaseID:            getEnv("MOVIE_DATABASE_ID", ""),
			MetricsCollection:     getEnv("METRICS_COLLECTION_ID", ""),
			SavedMoviesCollection: getEnv("SAVED_MOVIES_COLLECTION_ID", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Search: SearchConfig{
			DebounceDelay: time.Duration(getEnvAsInt("SEARCH_DEBOUNCE_MS", 500)) * time.Millisecond,
			TrendingLimit: getEnvAsInt("TRENDING_LIMIT", 5),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "movie-discovery"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Env: getEnv("APP_ENV", "development"),
	}, nil
}

// Validate checks that the configuration required for the document store is present
func (c *AppwriteConfig) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("APPWRITE_PROJECT_ID is required")
	}
	if c.DatabaseID == "" {
		return fmt.Errorf("MOVIE_DATABASE_ID is required")
	}
	if c.MetricsCollection == "" || c.SavedMoviesCollection == "" {
		return fmt.Errorf("METRICS_COLLECTION_ID and SAVED_MOVIES_COLLECTION_ID are required")
	}
	return nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
