package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bananaflix/backend/internal/domain/entities"
	"github.com/bananaflix/backend/internal/domain/providers"
	"github.com/bananaflix/backend/internal/infrastructure/observability"
	"github.com/bananaflix/backend/pkg/config"
	apperrors "github.com/bananaflix/backend/pkg/errors"
)

// Client is the movie catalog HTTP client. All endpoints are read-only GETs
// authenticated with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewClient creates a new catalog client
func NewClient(cfg *config.CatalogConfig) (*Client, error) {
	if cfg == nil || cfg.BearerToken == "" {
		return nil, fmt.Errorf("catalog bearer token is required")
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.BearerToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SetMetrics attaches the metrics recorder. Without it catalog call
// durations are simply not recorded.
func (c *Client) SetMetrics(metrics *observability.Metrics) {
	c.metrics = metrics
}

type listResponse struct {
	Results []entities.MovieSummary `json:"results"`
}

// SearchMovies runs a text search against the catalog. Blank queries are the
// caller's responsibility; the catalog treats them as a literal empty search.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]entities.MovieSummary, error) {
	endpoint := fmt.Sprintf("%s/search/movie?query=%s", c.baseURL, url.QueryEscape(query))

	out := &listResponse{}
	if err := c.doJSON(ctx, "search", endpoint, out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// DiscoverMovies fetches the current popularity-ranked discovery list
func (c *Client) DiscoverMovies(ctx context.Context) ([]entities.MovieSummary, error) {
	endpoint := fmt.Sprintf("%s/discover/movie?sort_by=popularity.desc&language=en-US&page=1", c.baseURL)

	out := &listResponse{}
	if err := c.doJSON(ctx, "discover", endpoint, out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GetMovieDetails fetches the full detail record for one movie
func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (*entities.MovieDetails, error) {
	endpoint := fmt.Sprintf("%s/movie/%d", c.baseURL, movieID)

	out := &entities.MovieDetails{}
	if err := c.doJSON(ctx, "details", endpoint, out); err != nil {
		return nil, err
	}
	return out, nil
}

// operation is a fixed label, never the raw URL, to keep metric
// cardinality bounded.
func (c *Client) doJSON(ctx context.Context, operation, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	if c.metrics != nil {
		start := time.Now()
		defer func() {
			observability.RecordCatalogMetric(ctx, c.metrics, operation, time.Since(start))
		}()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Status text only; the catalog's error bodies are not parsed.
		if resp.StatusCode == http.StatusNotFound {
			return apperrors.NewNotFoundError(fmt.Sprintf("catalog returned %s", resp.Status))
		}
		return apperrors.NewExternalError(fmt.Sprintf("catalog returned %s", resp.Status), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}

	return nil
}

var _ providers.CatalogProvider = (*Client)(nil)
