package appwrite

import (
	"context"
	"net/http"
	"time"

	"github.com/bananaflix/backend/internal/domain/entities"
	"github.com/bananaflix/backend/internal/domain/providers"
)

// Account is the authentication sub-client. It implements
// providers.AccountProvider over the store's account endpoints and keeps the
// session secret on the shared Client.
type Account struct {
	client *Client
}

type accountUser struct {
	ID        string    `json:"$id"`
	CreatedAt time.Time `json:"$createdAt"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
}

func (u accountUser) toEntity() *entities.User {
	return &entities.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

type createAccountRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

// Register creates a new account with a store-generated user id. No session
// is opened; callers sign in separately.
func (a *Account) Register(ctx context.Context, email, password, name string) (*entities.User, error) {
	body := createAccountRequest{
		UserID:   "unique()",
		Email:    email,
		Password: password,
		Name:     name,
	}

	user := accountUser{}
	if err := a.client.doJSON(ctx, http.MethodPost, "/account", body, &user); err != nil {
		return nil, err
	}
	return user.toEntity(), nil
}

// CreateSession opens an email/password session and stores its secret on the
// client so subsequent calls run as that user.
func (a *Account) CreateSession(ctx context.Context, email, password string) error {
	session := sessionResponse{}
	err := a.client.doJSON(ctx, http.MethodPost, "/account/sessions/email", createSessionRequest{
		Email:    email,
		Password: password,
	}, &session)
	if err != nil {
		return err
	}

	a.client.SetSession(session.Secret)
	return nil
}

// CurrentUser returns the identity bound to the active session
func (a *Account) CurrentUser(ctx context.Context) (*entities.User, error) {
	user := accountUser{}
	if err := a.client.doJSON(ctx, http.MethodGet, "/account", nil, &user); err != nil {
		return nil, err
	}
	return user.toEntity(), nil
}

// DeleteSession tears down the current session. The held secret is cleared
// even when the remote delete fails, so a retry does not reuse a dead secret.
func (a *Account) DeleteSession(ctx context.Context) error {
	err := a.client.doJSON(ctx, http.MethodDelete, "/account/sessions/current", nil, nil)
	a.client.SetSession("")
	return err
}

var _ providers.AccountProvider = (*Account)(nil)
