package services

import (
	"context"
	"sync"

	"github.com/bananaflix/backend/internal/domain/entities"
	"github.com/bananaflix/backend/internal/domain/providers"
	apperrors "github.com/bananaflix/backend/pkg/errors"
)

// AuthState is the session manager's lifecycle state
type AuthState string

const (
	// StateUninitialized means the cold-start session probe has not finished
	StateUninitialized AuthState = "uninitialized"
	// StateAnonymous means no session exists (or the probe failed)
	StateAnonymous AuthState = "anonymous"
	// StateAuthenticated means an identity is held
	StateAuthenticated AuthState = "authenticated"
)

// AuthService holds the single authenticated identity for the process
// lifetime. The identity slot is the only shared mutable state in the system;
// it has one writer path guarded by mu. Concurrent sign-in/out calls are not
// serialized against each other beyond that, callers disable concurrent
// triggers.
type AuthService struct {
	accounts providers.AccountProvider

	mu          sync.RWMutex
	user        *entities.User
	initialized bool
}

// NewAuthService creates a new auth session manager
func NewAuthService(accounts providers.AccountProvider) *AuthService {
	return &AuthService{accounts: accounts}
}

// Initialize probes the store for an existing session on cold start. Any
// failure, "no session" and real errors alike, lands in anonymous; both
// outcomes mark the manager initialized so dependents can tell "still
// loading" from "confirmed anonymous".
func (s *AuthService) Initialize(ctx context.Context) {
	user, err := s.accounts.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.user = nil
	} else {
		s.user = user
	}
	s.initialized = true
}

// SignIn opens an email/password session and returns the identity. When a
// session already exists the existing identity comes back unchanged instead
// of an "already logged in" error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*entities.User, error) {
	if user, err := s.accounts.CurrentUser(ctx); err == nil {
		s.setUser(user)
		return user, nil
	}

	if err := s.accounts.CreateSession(ctx, email, password); err != nil {
		return nil, apperrors.Domain("Sign-in failed. Please check your credentials.", err)
	}

	user, err := s.accounts.CurrentUser(ctx)
	if err != nil {
		return nil, apperrors.Domain("Sign-in failed. Please check your credentials.", err)
	}

	s.setUser(user)
	return user, nil
}

// SignUp creates an account and signs it in. On failure (for example a
// duplicate email) local state is left untouched.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (*entities.User, error) {
	if _, err := s.accounts.Register(ctx, email, password, name); err != nil {
		return nil, apperrors.Domain("Sign-up failed. User might already exist or invalid data.", err)
	}

	// Some stores open a session on account creation; only create one when
	// the account probe says there is none.
	user, err := s.accounts.CurrentUser(ctx)
	if err != nil {
		if err := s.accounts.CreateSession(ctx, email, password); err != nil {
			return nil, apperrors.Domain("Sign-up failed. User might already exist or invalid data.", err)
		}
		user, err = s.accounts.CurrentUser(ctx)
		if err != nil {
			return nil, apperrors.Domain("Sign-up failed. User might already exist or invalid data.", err)
		}
	}

	s.setUser(user)
	return user, nil
}

// SignOut deletes the remote session. The local identity is cleared
// unconditionally, then a delete failure is re-raised, so local and remote
// state can diverge when the delete call fails.
func (s *AuthService) SignOut(ctx context.Context) error {
	err := s.accounts.DeleteSession(ctx)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err != nil {
		return apperrors.Domain("Sign-out failed.", err)
	}
	return nil
}

// CurrentUser returns the held identity, or nil when anonymous
func (s *AuthService) CurrentUser() *entities.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Initialized reports whether the cold-start probe has completed
func (s *AuthService) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// State returns the tri-state session state
func (s *AuthService) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case !s.initialized:
		return StateUninitialized
	case s.user == nil:
		return StateAnonymous
	default:
		return StateAuthenticated
	}
}

func (s *AuthService) setUser(user *entities.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}
