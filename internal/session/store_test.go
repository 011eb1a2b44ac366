package session

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"calibra/coach-app/internal/api"
	"calibra/coach-app/internal/domain"
	"calibra/coach-app/internal/testserver"
)

// memoryTokens is an in-memory TokenStore for tests.
type memoryTokens struct {
	token string
}

func (m *memoryTokens) Token() (string, error)   { return m.token, nil }
func (m *memoryTokens) SaveToken(t string) error { m.token = t; return nil }
func (m *memoryTokens) ClearToken() error        { m.token = ""; return nil }

// startBackend mounts the seeded double and returns its base URL.
func startBackend(t *testing.T, backend *testserver.Server) string {
	t.Helper()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// newSession wires a store against the backend the way the app does:
// store first, client with the store's token source, then bind.
func newSession(baseURL string, persist TokenStore) *Store {
	store := NewStore(persist)
	client := api.New(baseURL, api.WithTokenSource(store.Token))
	store.Bind(client)
	return store
}

func TestLoginPersistsToken(t *testing.T) {
	backend := testserver.New()
	backend.SeedCoach("Marta", "marta@example.com", "secret123")
	persist := &memoryTokens{}
	store := newSession(startBackend(t, backend), persist)

	sess, err := store.Login(context.Background(), "marta@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Identity.Email != "marta@example.com" || sess.Identity.Role != domain.RoleAdmin {
		t.Fatalf("session identity = %+v", sess.Identity)
	}
	if persist.token == "" {
		t.Fatal("login did not persist the token")
	}
	if store.State() != StateAuthenticated {
		t.Fatalf("state = %v, want StateAuthenticated", store.State())
	}
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	backend := testserver.New()
	backend.SeedCoach("Marta", "marta@example.com", "secret123")
	store := newSession(startBackend(t, backend), &memoryTokens{})

	_, err := store.Login(context.Background(), "marta@example.com", "wrong")
	if err == nil {
		t.Fatal("login with a wrong password must fail")
	}
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("error = %v, want api.ErrUnauthorized", err)
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Message == "" {
		t.Errorf("error %v carries no displayable server message", err)
	}
}

func TestRestoreWithoutTokenIssuesNoRequest(t *testing.T) {
	backend := testserver.New()
	store := newSession(startBackend(t, backend), &memoryTokens{})

	sess, err := store.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if sess != nil {
		t.Fatalf("restore without token returned a session: %+v", sess)
	}
	if store.State() != StateAnonymous {
		t.Fatalf("state = %v, want StateAnonymous", store.State())
	}
	if n := backend.Requests("GET /api/auth/me"); n != 0 {
		t.Fatalf("restore without token issued %d identity requests, want 0", n)
	}
}

func TestRestoreResolvesStoredToken(t *testing.T) {
	backend := testserver.New()
	backend.SeedClient("Lucía", "lucia@example.com", "secret123")
	baseURL := startBackend(t, backend)
	persist := &memoryTokens{}

	first := newSession(baseURL, persist)
	if _, err := first.Login(context.Background(), "lucia@example.com", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A fresh store over the same persisted token simulates the next
	// process start.
	second := newSession(baseURL, persist)
	sess, err := second.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if sess == nil {
		t.Fatal("restore with a valid token returned no session")
	}
	if sess.Identity.Email != "lucia@example.com" || sess.Identity.Role != domain.RoleClient {
		t.Fatalf("restored identity = %+v", sess.Identity)
	}
	if second.State() != StateAuthenticated {
		t.Fatalf("state = %v, want StateAuthenticated", second.State())
	}
}

func TestRestorePurgesRejectedToken(t *testing.T) {
	backend := testserver.New()
	persist := &memoryTokens{token: "stale-token"}
	store := newSession(startBackend(t, backend), persist)

	sess, err := store.Restore(context.Background())
	if err != nil {
		t.Fatalf("a rejected token settles to anonymous, got error: %v", err)
	}
	if sess != nil {
		t.Fatalf("rejected token produced a session: %+v", sess)
	}
	if persist.token != "" {
		t.Fatalf("rejected token %q was not purged", persist.token)
	}
	if store.State() != StateAnonymous {
		t.Fatalf("state = %v, want StateAnonymous", store.State())
	}
}

func TestClaimAccountValidatesPasswordLocally(t *testing.T) {
	backend := testserver.New()
	backend.SeedPendingClient("Lucía", "lucia@example.com", "AB12CD")
	store := newSession(startBackend(t, backend), &memoryTokens{})

	_, err := store.ClaimAccount(context.Background(), "lucia@example.com", "AB12CD", "short")
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short password error = %v, want ErrPasswordTooShort", err)
	}
	if n := backend.Requests("POST /api/auth/claim-account"); n != 0 {
		t.Fatalf("short password reached the server %d times, want 0", n)
	}
}

func TestClaimAccountNormalizesCode(t *testing.T) {
	backend := testserver.New()
	backend.SeedPendingClient("Lucía", "lucia@example.com", "AB12CD")
	baseURL := startBackend(t, backend)
	persist := &memoryTokens{}
	store := newSession(baseURL, persist)

	// Codes are case-insensitive; whitespace is trimmed.
	sess, err := store.ClaimAccount(context.Background(), "lucia@example.com", "  ab12cd ", "secret123")
	if err != nil {
		t.Fatalf("ClaimAccount: %v", err)
	}
	if sess.Identity.Role != domain.RoleClient {
		t.Fatalf("claimed role = %q, want client", sess.Identity.Role)
	}
	if persist.token == "" {
		t.Fatal("claim did not persist the token")
	}

	// The invite code is one-time.
	next := newSession(baseURL, &memoryTokens{})
	if _, err := next.ClaimAccount(context.Background(), "lucia@example.com", "AB12CD", "secret123"); err == nil {
		t.Fatal("reusing a consumed invite code must fail")
	}
}

func TestLogoutIsLocal(t *testing.T) {
	backend := testserver.New()
	backend.SeedCoach("Marta", "marta@example.com", "secret123")
	persist := &memoryTokens{}
	store := newSession(startBackend(t, backend), persist)

	if _, err := store.Login(context.Background(), "marta@example.com", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if store.State() != StateAnonymous || store.Identity() != nil {
		t.Fatal("logout did not clear the session")
	}
	if persist.token != "" {
		t.Fatal("logout did not clear the persisted token")
	}
}

func TestResetPasswordCreatesNoSession(t *testing.T) {
	backend := testserver.New()
	backend.SeedCoach("Marta", "marta@example.com", "secret123")
	store := newSession(startBackend(t, backend), &memoryTokens{})

	err := store.ResetPassword(context.Background(), "marta@example.com", "NOPE99", "newpass123")
	if err == nil {
		t.Fatal("reset with an unknown code must fail")
	}
	if store.State() == StateAuthenticated {
		t.Fatal("reset must not authenticate")
	}
}
