// Package session holds the authenticated identity and bearer token, and
// owns their full lifecycle: login, restore from the durable token store,
// account claiming, password reset and logout.
package session

import (
	"context"
	"errors"
	"fmt"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/domain"
)

// MinPasswordLength is enforced client-side before any network call.
const MinPasswordLength = 6

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrNotBound         = errors.New("session store has no API client bound")
)

// State describes where session resolution stands. Role-gated surfaces
// must not render until the state leaves StateResolving.
type State int

const (
	// StateResolving means restore has not settled yet.
	StateResolving State = iota
	// StateAnonymous means no session is held.
	StateAnonymous
	// StateAuthenticated means an identity and token are held.
	StateAuthenticated
)

// TokenStore persists the single opaque session token across runs.
type TokenStore interface {
	Token() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// Store holds the process-wide session. Exactly one identity is held at a
// time; a later login overwrites the previous one. All access is
// single-threaded, so no locking is needed.
type Store struct {
	persist  TokenStore
	client   *api.Client
	token    string
	identity *domain.Identity
	state    State
}

// NewStore creates a store in StateResolving. Bind an API client built
// with WithTokenSource(store.Token) before using it.
func NewStore(persist TokenStore) *Store {
	return &Store{persist: persist, state: StateResolving}
}

// Bind attaches the API client the store authenticates through. Split
// from NewStore because the client needs the store's token source first.
func (s *Store) Bind(client *api.Client) {
	s.client = client
}

// Token is the api.TokenSource for the bound client. It returns "" while
// no session is held.
func (s *Store) Token() string {
	return s.token
}

func (s *Store) State() State {
	return s.state
}

// Identity returns the current identity, or nil when unauthenticated.
func (s *Store) Identity() *domain.Identity {
	return s.identity
}

// Current returns the active session, or nil.
func (s *Store) Current() *domain.Session {
	if s.state != StateAuthenticated || s.identity == nil {
		return nil
	}
	return &domain.Session{Identity: *s.identity, Token: s.token}
}

// Login exchanges credentials for a session and persists its token. On
// failure the returned error carries the server's user-displayable
// message.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if s.client == nil {
		return nil, ErrNotBound
	}
	result, err := s.client.Auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(result)
}

// Restore resolves a previously persisted session at startup. With no
// stored token it settles to anonymous immediately, without issuing a
// "who am I" call. A token the server rejects is purged, forcing
// re-authentication; transient failures keep the token for the next run.
func (s *Store) Restore(ctx context.Context) (*domain.Session, error) {
	if s.client == nil {
		return nil, ErrNotBound
	}
	s.state = StateResolving

	token, err := s.persist.Token()
	if err != nil {
		s.state = StateAnonymous
		return nil, err
	}
	if token == "" {
		s.state = StateAnonymous
		return nil, nil
	}

	s.token = token
	identity, err := s.client.Auth.Me(ctx)
	if err != nil {
		s.token = ""
		s.state = StateAnonymous
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrForbidden) {
			_ = s.persist.ClearToken()
			return nil, nil
		}
		return nil, err
	}

	s.identity = identity
	s.state = StateAuthenticated
	return s.Current(), nil
}

// Logout clears the persisted token and the held identity. Purely local;
// no network call.
func (s *Store) Logout() error {
	s.token = ""
	s.identity = nil
	s.state = StateAnonymous
	if err := s.persist.ClearToken(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ClaimAccount exchanges a one-time invite code and a new password for a
// session, with the same token persistence side effects as Login.
func (s *Store) ClaimAccount(ctx context.Context, email, code, password string) (*domain.Session, error) {
	if s.client == nil {
		return nil, ErrNotBound
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	result, err := s.client.Auth.ClaimAccount(ctx, email, code, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(result)
}

// ResetPassword sets a new password using a recovery code. It does not
// create a session.
func (s *Store) ResetPassword(ctx context.Context, email, code, password string) error {
	if s.client == nil {
		return ErrNotBound
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return s.client.Auth.ResetPassword(ctx, email, code, password)
}

func (s *Store) adopt(result *api.LoginResult) (*domain.Session, error) {
	s.token = result.Token
	identity := result.User
	s.identity = &identity
	s.state = StateAuthenticated
	if err := s.persist.SaveToken(result.Token); err != nil {
		return nil, fmt.Errorf("persist session token: %w", err)
	}
	return s.Current(), nil
}
