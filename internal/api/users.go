package api

import (
	"context"
	"fmt"
	"net/http"

	"calibra/coach-app/internal/domain"
)

// UsersService manages client accounts. Coach-scoped.
type UsersService struct {
	c *Client
}

// UserPayload is the writable subset of a user. Only non-nil profile
// fields are sent so partial updates leave the rest untouched.
type UserPayload struct {
	Name        string   `json:"name,omitempty"`
	Surname     string   `json:"surname,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Objectives  []string `json:"objectives,omitempty"`
	Limitations []string `json:"limitations,omitempty"`
	Status      string   `json:"status,omitempty"`
}

func (s *UsersService) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	s.c.cacheList("users", users)
	return users, nil
}

func (s *UsersService) Get(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create registers a new, not-yet-activated client. The response carries
// the generated invite code the coach hands to the client.
func (s *UsersService) Create(ctx context.Context, payload UserPayload) (*domain.User, error) {
	var user domain.User
	if err := s.c.doAuthed(ctx, http.MethodPost, "/api/admin/users", payload, &user); err != nil {
		return nil, err
	}
	s.c.invalidate("users")
	return &user, nil
}

func (s *UsersService) Update(ctx context.Context, id string, payload UserPayload) (*domain.User, error) {
	var user domain.User
	if err := s.c.doAuthed(ctx, http.MethodPut, "/api/admin/users/"+id, payload, &user); err != nil {
		return nil, err
	}
	s.c.invalidate("users")
	return &user, nil
}

// Delete removes a client account. Irreversible and second-party, so
// callers must have obtained a typed-name confirmation first; this method
// only performs the call.
func (s *UsersService) Delete(ctx context.Context, id string) error {
	if err := s.c.doAuthed(ctx, http.MethodDelete, "/api/admin/users/"+id, nil, nil); err != nil {
		return err
	}
	s.c.invalidate("users", "workouts", "feedback", "evaluations", "notes")
	return nil
}

// RecoveryCode regenerates the invite/recovery code of a client who lost
// theirs.
func (s *UsersService) RecoveryCode(ctx context.Context, id string) (string, error) {
	var resp struct {
		Code string `json:"code"`
	}
	path := fmt.Sprintf("/api/admin/users/%s/recovery-code", id)
	if err := s.c.doAuthed(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	s.c.invalidate("users")
	return resp.Code, nil
}
