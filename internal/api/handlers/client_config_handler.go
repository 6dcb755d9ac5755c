package handlers

import (
	"net/http"

	"github.com/bananaflix/backend/pkg/config"
)

// ClientConfigHandler serves the search tuning values frontends read at
// startup. Debouncing runs client-side; the server is the single source for
// the delay so every client uses the same one.
type ClientConfigHandler struct {
	search config.SearchConfig
}

// NewClientConfigHandler creates a new client config handler
func NewClientConfigHandler(search config.SearchConfig) *ClientConfigHandler {
	return &ClientConfigHandler{search: search}
}

type clientConfigResponse struct {
	SearchDebounceMS int64 `json:"search_debounce_ms"`
	TrendingLimit    int   `json:"trending_limit"`
}

// GetClientConfig handles GET /api/client-config
func (h *ClientConfigHandler) GetClientConfig(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, clientConfigResponse{
		SearchDebounceMS: h.search.DebounceDelay.Milliseconds(),
		TrendingLimit:    h.search.TrendingLimit,
	})
}
