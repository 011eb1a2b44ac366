package cli

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"calibra/coach-app/internal/config"
	"calibra/coach-app/internal/domain"
	"calibra/coach-app/internal/testserver"
)

// testApp runs the command tree against a seeded backend, with scripted
// stdin and captured stdout.
type testApp struct {
	app     *App
	out     *bytes.Buffer
	backend *httptest.Server
}

func newTestApp(t *testing.T, backend *testserver.Server, dataDir, input string) *testApp {
	t.Helper()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	cfg := config.Config{}
	cfg.API.BaseURL = srv.URL
	cfg.Data.Dir = dataDir

	out := &bytes.Buffer{}
	app, err := NewApp(cfg, strings.NewReader(input), out)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return &testApp{app: app, out: out, backend: srv}
}

func (ta *testApp) run(args ...string) error {
	root := NewRootCmd(ta.app)
	root.SetArgs(args)
	root.SetOut(ta.out)
	root.SetErr(ta.out)
	return root.Execute()
}

func TestLoginCommand(t *testing.T) {
	backend := testserver.New()
	backend.SeedCoach("Marta", "marta@example.com", "secret123")
	ta := newTestApp(t, backend, t.TempDir(), "")

	if err := ta.run("login", "-e", "marta@example.com", "-p", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(ta.out.String(), "marta@example.com") {
		t.Fatalf("login output missing identity:\n%s", ta.out.String())
	}
	if ta.app.session.Identity().Role != domain.RoleAdmin {
		t.Fatalf("session role = %q", ta.app.session.Identity().Role)
	}
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	backend := testserver.New()
	backend.SeedCoach("Marta", "marta@example.com", "secret123")
	ta := newTestApp(t, backend, t.TempDir(), "")

	if err := ta.run("login", "-e", "marta@example.com", "-p", "wrong"); err == nil {
		t.Fatal("wrong password must fail the command")
	}
	if !strings.Contains(ta.out.String(), "Credenciales inválidas") {
		t.Fatalf("output does not surface the server message:\n%s", ta.out.String())
	}
}

func TestGatedCommandWithoutSession(t *testing.T) {
	backend := testserver.New()
	ta := newTestApp(t, backend, t.TempDir(), "")

	err := ta.run("plan")
	if !errors.Is(err, errSignInFirst) {
		t.Fatalf("anonymous gated command = %v, want errSignInFirst", err)
	}
	// The gated fetch must never have been attempted.
	if n := backend.Requests("GET /api/client/workouts"); n != 0 {
		t.Fatalf("anonymous dispatch fetched the plan %d times, want 0", n)
	}
}

func TestRoleMismatchIsDenied(t *testing.T) {
	backend := testserver.New()
	backend.SeedClient("Lucía", "lucia@example.com", "secret123")
	dir := t.TempDir()

	ta := newTestApp(t, backend, dir, "")
	if err := ta.run("login", "-e", "lucia@example.com", "-p", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	err := ta.run("clients", "list")
	if !errors.Is(err, errAccessDenied) {
		t.Fatalf("client on coach surface = %v, want errAccessDenied", err)
	}
	if n := backend.Requests("GET /api/admin/users"); n != 0 {
		t.Fatalf("denied dispatch reached the server %d times, want 0", n)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	backend := testserver.New()
	client := backend.SeedClient("Lucía", "lucia@example.com", "secret123")
	backend.SeedWorkout(client.ID, "Semana 1")
	dir := t.TempDir()

	first := newTestApp(t, backend, dir, "")
	if err := first.run("login", "-e", "lucia@example.com", "-p", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	// Release the store lock, as process exit would.
	if err := first.app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := newTestApp(t, backend, dir, "")
	if err := second.run("plan"); err != nil {
		t.Fatalf("plan after restart: %v", err)
	}
	if !strings.Contains(second.out.String(), "Semana 1") {
		t.Fatalf("restored session did not load the plan:\n%s", second.out.String())
	}
}

func TestClientDeleteNeedsTypedConfirmation(t *testing.T) {
	backend := testserver.New()
	backend.SeedCoach("Marta", "marta@example.com", "secret123")
	victim := backend.SeedClient("Lucía", "lucia@example.com", "secret123")

	// The scripted answer does not match the required email.
	ta := newTestApp(t, backend, t.TempDir(), "nope\n")
	if err := ta.run("login", "-e", "marta@example.com", "-p", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := ta.run("clients", "delete", victim.ID); err != nil {
		t.Fatalf("delete command: %v", err)
	}
	if n := backend.Requests("DELETE /api/admin/users/" + victim.ID); n != 0 {
		t.Fatalf("mistyped confirmation still issued %d delete calls, want 0", n)
	}
}

func TestClientDeleteWithTypedConfirmation(t *testing.T) {
	backend := testserver.New()
	backend.SeedCoach("Marta", "marta@example.com", "secret123")
	victim := backend.SeedClient("Lucía", "lucia@example.com", "secret123")

	ta := newTestApp(t, backend, t.TempDir(), "lucia@example.com\n")
	if err := ta.run("login", "-e", "marta@example.com", "-p", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := ta.run("clients", "delete", victim.ID); err != nil {
		t.Fatalf("delete command: %v", err)
	}
	if n := backend.Requests("DELETE /api/admin/users/" + victim.ID); n != 1 {
		t.Fatalf("confirmed delete issued %d calls, want 1", n)
	}
}

func TestPlanRendersPlaceholderForDeletedExercise(t *testing.T) {
	backend := testserver.New()
	client := backend.SeedClient("Lucía", "lucia@example.com", "secret123")
	backend.SeedWorkout(client.ID, "Semana 1", domain.WorkoutExercise{
		// The referenced exercise was never seeded, as if deleted.
		Exercise: domain.ExerciseRef{ID: "gone000000000000000000ff"},
		Sets:     "3", Reps: "10", Rest: "60s",
	})

	ta := newTestApp(t, backend, t.TempDir(), "")
	if err := ta.run("login", "-e", "lucia@example.com", "-p", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := ta.run("plan"); err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(ta.out.String(), DanglingExerciseLabel) {
		t.Fatalf("plan output missing the %q placeholder:\n%s", DanglingExerciseLabel, ta.out.String())
	}
}

func TestActivateRejectsMismatchedPasswords(t *testing.T) {
	backend := testserver.New()
	backend.SeedPendingClient("Lucía", "lucia@example.com", "AB12CD")
	ta := newTestApp(t, backend, t.TempDir(), "")

	err := ta.run("activate",
		"-e", "lucia@example.com", "-c", "AB12CD",
		"-p", "secret123", "--confirm", "different")
	if err == nil {
		t.Fatal("mismatched passwords must fail before the network call")
	}
	if n := backend.Requests("POST /api/auth/claim-account"); n != 0 {
		t.Fatalf("mismatched passwords reached the server %d times, want 0", n)
	}
}

func TestListServesCachedCopyWhenBackendUnreachable(t *testing.T) {
	backend := testserver.New()
	backend.SeedCoach("Marta", "marta@example.com", "secret123")
	backend.SeedExercise("Sentadilla", domain.CategoryFuerza, "piernas")
	ta := newTestApp(t, backend, t.TempDir(), "")

	if err := ta.run("login", "-e", "marta@example.com", "-p", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := ta.run("exercises", "list"); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if strings.Contains(ta.out.String(), "last fetched") {
		t.Fatalf("online list must come from the server:\n%s", ta.out.String())
	}

	ta.backend.Close()
	ta.out.Reset()

	if err := ta.run("exercises", "list"); err != nil {
		t.Fatalf("offline list with a warm cache: %v", err)
	}
	if !strings.Contains(ta.out.String(), "Sentadilla") {
		t.Fatalf("cached exercise missing from offline output:\n%s", ta.out.String())
	}
	if !strings.Contains(ta.out.String(), "last fetched") {
		t.Fatalf("offline output must say the copy is cached:\n%s", ta.out.String())
	}

	ta.out.Reset()
	if err := ta.run("clients", "list"); err == nil {
		t.Fatal("offline list without a cached copy must fail")
	}
}
