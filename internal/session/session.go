// Package session owns the "who is logged in" state and its persistence.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/marqueehq/marquee/internal/store"
	"github.com/marqueehq/marquee/internal/types"
)

// Status is the session lifecycle state.
type Status string

const (
	StatusChecking        Status = "checking"
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// API is the slice of the backend client the session needs.
type API interface {
	Login(ctx context.Context, email, password string) (types.LoginResponse, error)
	Register(ctx context.Context, email, userName, password string) (types.User, error)
}

// Store is the single source of truth for the current session. State moves
// only through CheckStatus, Login, Register, and Logout; the persisted token
// lives in the device key-value store under a fixed key.
type Store struct {
	mu     sync.Mutex
	status Status
	token  string
	user   *types.User

	kv     *store.Store
	api    API
	logger *log.Logger
}

// New creates a session store in the checking state. logger may be nil.
func New(kv *store.Store, api API, logger *log.Logger) *Store {
	return &Store{
		status: StatusChecking,
		kv:     kv,
		api:    api,
		logger: logger,
	}
}

// Status returns the current lifecycle state.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Token returns the current access token, empty when not authenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the logged-in account, nil when unknown. The session restore
// path authenticates from the persisted token alone, so an authenticated
// session may still have a nil user.
func (s *Store) User() *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// CheckStatus resolves the initial checking state from the persisted token.
// A present token is trusted without server validation; there is no expiry
// check on restore.
func (s *Store) CheckStatus() {
	token, ok, err := s.kv.Get(store.KeyAuthToken)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logf("session: read token: %v", err)
		s.setLocked(StatusUnauthenticated, "", nil)
		return
	}
	if !ok || token == "" {
		s.setLocked(StatusUnauthenticated, "", nil)
		return
	}
	s.setLocked(StatusAuthenticated, token, nil)
}

// Login authenticates with the backend, persists the token, and reports
// success as a boolean. Errors are logged, not returned; a failed login
// leaves the session unauthenticated. A login attempted while another
// mutation is in flight is rejected.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	if !s.enterLoading() {
		return false
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logf("session: login: %v", err)
		s.set(StatusUnauthenticated, "", nil)
		return false
	}

	if err := s.kv.Set(store.KeyAuthToken, resp.AccessToken); err != nil {
		s.logf("session: persist token: %v", err)
		s.set(StatusUnauthenticated, "", nil)
		return false
	}

	user := resp.User
	s.set(StatusAuthenticated, resp.AccessToken, &user)
	return true
}

// Register creates an account. The backend does not issue a token on
// signup, so the session returns to unauthenticated either way; the caller
// logs in afterwards.
func (s *Store) Register(ctx context.Context, email, userName, password string) bool {
	if !s.enterLoading() {
		return false
	}

	_, err := s.api.Register(ctx, email, userName, password)
	s.set(StatusUnauthenticated, "", nil)
	if err != nil {
		s.logf("session: register: %v", err)
		return false
	}
	return true
}

// Logout clears the persisted token and resets state. Failing to clear
// storage does not block the state reset.
func (s *Store) Logout() {
	if err := s.kv.Remove(store.KeyAuthToken); err != nil {
		s.logf("session: clear token: %v", err)
	}
	s.set(StatusUnauthenticated, "", nil)
}

// InstallID returns the per-device identifier, generating and persisting
// one on first use.
func (s *Store) InstallID() (string, error) {
	id, ok, err := s.kv.Get(store.KeyInstallID)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := s.kv.Set(store.KeyInstallID, id); err != nil {
		return "", err
	}
	return id, nil
}

// enterLoading moves into loading unless a mutation is already in flight.
func (s *Store) enterLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusLoading {
		return false
	}
	s.setLocked(StatusLoading, s.token, s.user)
	return true
}

func (s *Store) set(status Status, token string, user *types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(status, token, user)
}

func (s *Store) setLocked(status Status, token string, user *types.User) {
	s.status = status
	s.token = token
	s.user = user
}

func (s *Store) logf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}
