package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bananaflix/backend/internal/domain/entities"
)

// AuthService defines the session operations used by the handler.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*entities.User, error)
	SignIn(ctx context.Context, email, password string) (*entities.User, error)
	SignOut(ctx context.Context) error
	CurrentUser() *entities.User
	Initialized() bool
}

// AuthHandler handles session-related HTTP requests
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Email = strings.TrimSpace(payload.Email)
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Email == "" || payload.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.service.SignUp(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		respondWithAppError(w, err, "failed to register")
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.service.SignIn(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondWithAppError(w, err, "failed to sign in")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SignOut(r.Context()); err != nil {
		// The local session is already cleared at this point
		respondWithAppError(w, err, "failed to sign out")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "signed_out",
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if !h.service.Initialized() {
		respondWithError(w, http.StatusServiceUnavailable, "session state not ready")
		return
	}

	user := h.service.CurrentUser()
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
