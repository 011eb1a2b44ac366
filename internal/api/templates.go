package api

import (
	"context"
	"net/http"

	"calibra/coach-app/internal/domain"
)

// TemplatesService manages reusable workout blueprints. Coach-scoped.
type TemplatesService struct {
	c *Client
}

// TemplatePayload is the writable shape of a template. Exercise entries
// serialize their reference as a bare id.
type TemplatePayload struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description,omitempty"`
	Exercises   []domain.WorkoutExercise `json:"exercises"`
}

func (s *TemplatesService) List(ctx context.Context) ([]domain.Template, error) {
	var templates []domain.Template
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/templates", nil, &templates); err != nil {
		return nil, err
	}
	s.c.cacheList("templates", templates)
	return templates, nil
}

func (s *TemplatesService) Create(ctx context.Context, payload TemplatePayload) (*domain.Template, error) {
	var template domain.Template
	if err := s.c.doAuthed(ctx, http.MethodPost, "/api/admin/templates", payload, &template); err != nil {
		return nil, err
	}
	s.c.invalidate("templates")
	return &template, nil
}

// Update edits a blueprint. Workouts already instantiated from it are
// copies and stay as they were.
func (s *TemplatesService) Update(ctx context.Context, id string, payload TemplatePayload) (*domain.Template, error) {
	var template domain.Template
	if err := s.c.doAuthed(ctx, http.MethodPut, "/api/admin/templates/"+id, payload, &template); err != nil {
		return nil, err
	}
	s.c.invalidate("templates")
	return &template, nil
}

func (s *TemplatesService) Delete(ctx context.Context, id string) error {
	if err := s.c.doAuthed(ctx, http.MethodDelete, "/api/admin/templates/"+id, nil, nil); err != nil {
		return err
	}
	s.c.invalidate("templates")
	return nil
}
