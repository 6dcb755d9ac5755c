package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bananaflix/backend/internal/infrastructure/observability"
	"github.com/bananaflix/backend/pkg/config"
	apperrors "github.com/bananaflix/backend/pkg/errors"
)

// Client is a thin REST client for the document store. It exposes two
// sub-clients mirroring the store's API surface: Databases for document CRUD
// and queries, Account for authentication.
//
// The client holds at most one session secret at a time. Every request after
// CreateEmailPasswordSession carries it, which is what scopes document
// permissions to the signed-in user.
type Client struct {
	endpoint   string
	projectID  string
	apiKey     string
	httpClient *http.Client
	metrics    *observability.Metrics

	mu      sync.RWMutex
	session string
}

// NewClient creates a new document store client
func NewClient(cfg *config.AppwriteConfig) (*Client, error) {
	if cfg == nil || cfg.ProjectID == "" {
		return nil, fmt.Errorf("document store project id is required")
	}

	return &Client{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		projectID: cfg.ProjectID,
		apiKey:    cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SetMetrics attaches the metrics recorder. Without it store call
// durations are simply not recorded.
func (c *Client) SetMetrics(metrics *observability.Metrics) {
	c.metrics = metrics
}

// Databases returns the document CRUD sub-client
func (c *Client) Databases() *Databases {
	return &Databases{client: c}
}

// Account returns the authentication sub-client
func (c *Client) Account() *Account {
	return &Account{client: c}
}

// SetSession replaces the held session secret. An empty secret clears it.
func (c *Client) SetSession(secret string) {
	c.mu.Lock()
	c.session = secret
	c.mu.Unlock()
}

// Session returns the held session secret, or "" when signed out
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

type storeError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.projectID)
	if c.apiKey != "" {
		req.Header.Set("X-Appwrite-Key", c.apiKey)
	}
	if session := c.Session(); session != "" {
		req.Header.Set("X-Appwrite-Session", session)
	}

	if c.metrics != nil {
		start := time.Now()
		defer func() {
			observability.RecordStoreMetric(ctx, c.metrics, method, time.Since(start))
		}()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeStoreError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}

	return nil
}

func decodeStoreError(resp *http.Response) error {
	storeErr := storeError{}
	if err := json.NewDecoder(resp.Body).Decode(&storeErr); err != nil || storeErr.Message == "" {
		storeErr.Message = fmt.Sprintf("document store returned %s", resp.Status)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.NewUnauthorizedError(storeErr.Message)
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(storeErr.Message)
	case http.StatusConflict:
		return apperrors.NewConflictError(storeErr.Message)
	default:
		return apperrors.NewExternalError(storeErr.Message, nil)
	}
}
