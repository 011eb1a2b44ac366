// Package guard gates access to role-scoped surfaces. It is evaluated on
// every command dispatch, not once at startup.
package guard

import (
	"calibra/coach-app/internal/domain"
	"calibra/coach-app/internal/session"
)

// Outcome is the guard's decision for a role-scoped surface.
type Outcome int

const (
	// Render the surface: a session is held and the role matches (or no
	// role is required).
	Render Outcome = iota
	// Loading: session resolution is still in flight; show a placeholder
	// and never the gated content.
	Loading
	// Redirect to the public entry point: no session, or the role does
	// not match. A mismatch must never render the gated surface, even
	// transiently.
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// Evaluate decides the outcome for a surface requiring the given role.
// An empty required role gates on authentication only.
func Evaluate(state session.State, identity *domain.Identity, required domain.Role) Outcome {
	switch state {
	case session.StateResolving:
		return Loading
	case session.StateAuthenticated:
		if identity == nil {
			return Redirect
		}
		if required != "" && identity.Role != required {
			return Redirect
		}
		return Render
	default:
		return Redirect
	}
}
