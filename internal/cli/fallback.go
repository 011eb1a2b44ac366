package cli

import (
	"errors"

	"calibra/coach-app/internal/api"
)

// listWithFallback serves the last cached copy of a collection when the
// backend cannot be reached. Auth failures still surface: stale data
// must never mask a revoked session or a role mismatch. Mutations
// invalidate cache entries, so a hit is always the most recent list the
// server returned.
func listWithFallback[T any](app *App, collection string, fetch func() ([]T, error)) ([]T, error) {
	items, err := fetch()
	if err == nil {
		return items, nil
	}
	if errors.Is(err, api.ErrNoSession) || errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrForbidden) {
		return nil, err
	}
	var cached []T
	ok, cacheErr := app.local.List(collection, &cached)
	if cacheErr != nil || !ok {
		return nil, err
	}
	warn(app.out, "Could not reach the backend; showing the last fetched %s", collection)
	return cached, nil
}
