package guard

import (
	"testing"

	"calibra/coach-app/internal/domain"
	"calibra/coach-app/internal/session"
)

func TestEvaluate(t *testing.T) {
	coach := &domain.Identity{ID: "u1", Role: domain.RoleAdmin}
	client := &domain.Identity{ID: "u2", Role: domain.RoleClient}

	tests := []struct {
		name     string
		state    session.State
		identity *domain.Identity
		required domain.Role
		want     Outcome
	}{
		{"resolving shows loading", session.StateResolving, nil, domain.RoleAdmin, Loading},
		{"resolving never renders even with identity", session.StateResolving, coach, domain.RoleAdmin, Loading},
		{"anonymous redirects", session.StateAnonymous, nil, domain.RoleAdmin, Redirect},
		{"matching role renders", session.StateAuthenticated, coach, domain.RoleAdmin, Render},
		{"client on client surface renders", session.StateAuthenticated, client, domain.RoleClient, Render},
		{"role mismatch redirects", session.StateAuthenticated, client, domain.RoleAdmin, Redirect},
		{"coach on client surface redirects", session.StateAuthenticated, coach, domain.RoleClient, Redirect},
		{"no required role gates on auth only", session.StateAuthenticated, client, "", Render},
		{"no required role still needs a session", session.StateAnonymous, nil, "", Redirect},
		{"authenticated without identity redirects", session.StateAuthenticated, nil, domain.RoleAdmin, Redirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.state, tt.identity, tt.required); got != tt.want {
				t.Errorf("Evaluate(%v, %v, %q) = %v, want %v",
					tt.state, tt.identity, tt.required, got, tt.want)
			}
		})
	}
}
