package entities

import "time"

// SearchMetric is the aggregate popularity counter for one distinct search
// term. The term is the stable key; the movie fields are a snapshot of the
// top-ranked result captured when the record was created, so they can drift
// across searches while the count keeps accumulating.
type SearchMetric struct {
	DocumentID string    `json:"document_id"`
	SearchTerm string    `json:"search_term"`
	MovieID    int       `json:"movie_id"`
	Title      string    `json:"title"`
	PosterURL  string    `json:"poster_url,omitempty"`
	Count      int       `json:"count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
