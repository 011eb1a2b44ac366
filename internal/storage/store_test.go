package storage

import (
	"testing"

	"calibra/coach-app/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTokenRoundTrip(t *testing.T) {
	store := openTestStore(t)

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token on empty store: %v", err)
	}
	if token != "" {
		t.Fatalf("empty store token = %q, want empty", token)
	}

	if err := store.SaveToken("tok-123"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	token, err = store.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("token = %q, want tok-123", token)
	}

	// A later save overwrites; only one token is ever held.
	if err := store.SaveToken("tok-456"); err != nil {
		t.Fatalf("SaveToken overwrite: %v", err)
	}
	token, _ = store.Token()
	if token != "tok-456" {
		t.Fatalf("token after overwrite = %q, want tok-456", token)
	}

	if err := store.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	token, _ = store.Token()
	if token != "" {
		t.Fatalf("token after clear = %q, want empty", token)
	}

	// Clearing again is a no-op, not an error.
	if err := store.ClearToken(); err != nil {
		t.Fatalf("ClearToken on empty store: %v", err)
	}
}

func TestCollectionCache(t *testing.T) {
	store := openTestStore(t)

	var out []domain.Exercise
	ok, err := store.List("exercises", &out)
	if err != nil {
		t.Fatalf("List on empty cache: %v", err)
	}
	if ok {
		t.Fatal("empty cache reported a hit")
	}

	exercises := []domain.Exercise{
		{ID: "ex1", Name: "Sentadilla", Category: domain.CategoryFuerza, Tags: []string{"pierna"}},
		{ID: "ex2", Name: "Gato", Category: domain.CategoryMovilidad},
	}
	if err := store.PutList("exercises", exercises); err != nil {
		t.Fatalf("PutList: %v", err)
	}

	ok, err = store.List("exercises", &out)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !ok {
		t.Fatal("cached collection reported a miss")
	}
	if len(out) != 2 || out[0].Name != "Sentadilla" || out[1].Category != domain.CategoryMovilidad {
		t.Fatalf("cached exercises = %+v", out)
	}
}

func TestInvalidateDropsOnlyNamedCollections(t *testing.T) {
	store := openTestStore(t)

	if err := store.PutList("exercises", []domain.Exercise{{ID: "ex1"}}); err != nil {
		t.Fatalf("PutList exercises: %v", err)
	}
	if err := store.PutList("templates", []domain.Template{{ID: "t1"}}); err != nil {
		t.Fatalf("PutList templates: %v", err)
	}

	if err := store.Invalidate("exercises", "workouts"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	var exercises []domain.Exercise
	ok, err := store.List("exercises", &exercises)
	if err != nil {
		t.Fatalf("List exercises: %v", err)
	}
	if ok {
		t.Error("invalidated collection still cached")
	}

	var templates []domain.Template
	ok, err = store.List("templates", &templates)
	if err != nil {
		t.Fatalf("List templates: %v", err)
	}
	if !ok {
		t.Error("untouched collection was dropped")
	}
}
