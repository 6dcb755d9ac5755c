package entities

import "time"

// User is the authenticated identity held for the process lifetime. It is
// never persisted locally; session continuity relies on the document store's
// own session handling.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
