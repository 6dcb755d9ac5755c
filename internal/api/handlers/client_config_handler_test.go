package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bananaflix/backend/internal/api/handlers"
	"github.com/bananaflix/backend/pkg/config"
)

func TestGetClientConfig(t *testing.T) {
	handler := handlers.NewClientConfigHandler(config.SearchConfig{
		DebounceDelay: 300 * time.Millisecond,
		TrendingLimit: 8,
	})

	req := httptest.NewRequest("GET", "/api/client-config", nil)
	w := httptest.NewRecorder()

	handler.GetClientConfig(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SearchDebounceMS int64 `json:"search_debounce_ms"`
		TrendingLimit    int   `json:"trending_limit"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, int64(300), body.SearchDebounceMS)
	assert.Equal(t, 8, body.TrendingLimit)
}
