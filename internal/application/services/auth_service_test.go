package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bananaflix/backend/internal/application/services"
	"github.com/bananaflix/backend/internal/domain/entities"
	apperrors "github.com/bananaflix/backend/pkg/errors"
)

// stubAccounts simulates the store's account sub-client with an explicit
// session flag, mirroring how a held session secret changes CurrentUser.
type stubAccounts struct {
	users          map[string]string // email -> password
	sessionFor     string            // email of the active session, "" when none
	currentErr     error
	registerErr    error
	sessionCalls   int
	deleteErr      error
	deleteCalls    int
	sessionOnSetup bool // store opens a session on Register
}

func newStubAccounts() *stubAccounts {
	return &stubAccounts{users: map[string]string{}}
}

func (s *stubAccounts) Register(ctx context.Context, email, password, name string) (*entities.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	if _, exists := s.users[email]; exists {
		return nil, apperrors.NewConflictError("A user with the same email already exists")
	}
	s.users[email] = password
	if s.sessionOnSetup {
		s.sessionFor = email
	}
	return &entities.User{ID: "u-" + email, Email: email, Name: name}, nil
}

func (s *stubAccounts) CreateSession(ctx context.Context, email, password string) error {
	s.sessionCalls++
	if pw, ok := s.users[email]; !ok || pw != password {
		return apperrors.NewUnauthorizedError("Invalid credentials")
	}
	s.sessionFor = email
	return nil
}

func (s *stubAccounts) CurrentUser(ctx context.Context) (*entities.User, error) {
	if s.currentErr != nil {
		return nil, s.currentErr
	}
	if s.sessionFor == "" {
		return nil, apperrors.NewUnauthorizedError("missing scope (account)")
	}
	return &entities.User{ID: "u-" + s.sessionFor, Email: s.sessionFor}, nil
}

func (s *stubAccounts) DeleteSession(ctx context.Context) error {
	s.deleteCalls++
	s.sessionFor = ""
	return s.deleteErr
}

func TestAuthService_Initialize_NoSession(t *testing.T) {
	accounts := newStubAccounts()
	auth := services.NewAuthService(accounts)

	assert.Equal(t, services.StateUninitialized, auth.State())
	assert.False(t, auth.Initialized())

	auth.Initialize(context.Background())

	assert.True(t, auth.Initialized())
	assert.Nil(t, auth.CurrentUser())
	assert.Equal(t, services.StateAnonymous, auth.State())
}

func TestAuthService_Initialize_RestoresSession(t *testing.T) {
	accounts := newStubAccounts()
	accounts.users["ada@example.com"] = "pw"
	accounts.sessionFor = "ada@example.com"
	auth := services.NewAuthService(accounts)

	auth.Initialize(context.Background())

	require.NotNil(t, auth.CurrentUser())
	assert.Equal(t, "ada@example.com", auth.CurrentUser().Email)
	assert.Equal(t, services.StateAuthenticated, auth.State())
}

func TestAuthService_Initialize_BackendErrorMeansAnonymous(t *testing.T) {
	accounts := newStubAccounts()
	accounts.currentErr = apperrors.NewExternalError("store unreachable", nil)
	auth := services.NewAuthService(accounts)

	auth.Initialize(context.Background())

	// Real errors and "no session" are deliberately not distinguished
	assert.True(t, auth.Initialized())
	assert.Nil(t, auth.CurrentUser())
}

func TestAuthService_SignIn(t *testing.T) {
	accounts := newStubAccounts()
	accounts.users["ada@example.com"] = "pw"
	auth := services.NewAuthService(accounts)

	user, err := auth.SignIn(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, services.StateAuthenticated, auth.State())
	assert.Equal(t, 1, accounts.sessionCalls)
}

func TestAuthService_SignIn_IdempotentWithActiveSession(t *testing.T) {
	accounts := newStubAccounts()
	accounts.users["ada@example.com"] = "pw"
	accounts.sessionFor = "ada@example.com"
	auth := services.NewAuthService(accounts)

	user, err := auth.SignIn(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	// No second session was created
	assert.Equal(t, 0, accounts.sessionCalls)
}

func TestAuthService_SignIn_BadCredentials(t *testing.T) {
	accounts := newStubAccounts()
	accounts.users["ada@example.com"] = "pw"
	auth := services.NewAuthService(accounts)

	_, err := auth.SignIn(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.Nil(t, auth.CurrentUser())
}

func TestAuthService_SignUp(t *testing.T) {
	accounts := newStubAccounts()
	auth := services.NewAuthService(accounts)

	user, err := auth.SignUp(context.Background(), "new@example.com", "pw", "New User")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, services.StateAuthenticated, auth.State())
	// Register did not open a session, so one was created explicitly
	assert.Equal(t, 1, accounts.sessionCalls)
}

func TestAuthService_SignUp_SessionOpenedByStore(t *testing.T) {
	accounts := newStubAccounts()
	accounts.sessionOnSetup = true
	auth := services.NewAuthService(accounts)

	_, err := auth.SignUp(context.Background(), "new@example.com", "pw", "New User")
	require.NoError(t, err)
	assert.Equal(t, 0, accounts.sessionCalls)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	accounts := newStubAccounts()
	accounts.users["taken@example.com"] = "pw"
	auth := services.NewAuthService(accounts)

	_, err := auth.SignUp(context.Background(), "taken@example.com", "pw", "Dup")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "A user with the same email already exists", appErr.Message)
	// Local state untouched
	assert.Nil(t, auth.CurrentUser())
}

func TestAuthService_SignUp_GenericMessageWhenBackendSilent(t *testing.T) {
	accounts := newStubAccounts()
	accounts.registerErr = assert.AnError
	auth := services.NewAuthService(accounts)

	_, err := auth.SignUp(context.Background(), "x@example.com", "pw", "X")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Sign-up failed. User might already exist or invalid data.", appErr.Message)
}

func TestAuthService_SignOut(t *testing.T) {
	accounts := newStubAccounts()
	accounts.users["ada@example.com"] = "pw"
	auth := services.NewAuthService(accounts)
	_, err := auth.SignIn(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, auth.SignOut(context.Background()))
	assert.Nil(t, auth.CurrentUser())
	assert.Equal(t, services.StateAnonymous, auth.State())
}

func TestAuthService_SignOut_ClearsIdentityEvenOnDeleteFailure(t *testing.T) {
	accounts := newStubAccounts()
	accounts.users["ada@example.com"] = "pw"
	accounts.deleteErr = apperrors.NewExternalError("session delete failed", nil)
	auth := services.NewAuthService(accounts)
	_, err := auth.SignIn(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)

	err = auth.SignOut(context.Background())
	require.Error(t, err)
	// Local identity is gone regardless of the remote failure
	assert.Nil(t, auth.CurrentUser())
}
