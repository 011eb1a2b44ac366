package api

import (
	"context"
	"net/http"

	"calibra/coach-app/internal/domain"
)

// WorkoutsService manages assigned workouts. Creation, editing and
// deletion are coach-scoped; ListMine is the client's read-only view.
type WorkoutsService struct {
	c *Client
}

// WorkoutPayload is the writable shape of an assigned workout.
type WorkoutPayload struct {
	ClientID  string                   `json:"clientId"`
	Title     string                   `json:"title"`
	Exercises []domain.WorkoutExercise `json:"exercises"`
}

// ListForClient returns the workouts assigned to one client, for the
// coach's detail view.
func (s *WorkoutsService) ListForClient(ctx context.Context, clientID string) ([]domain.Workout, error) {
	var workouts []domain.Workout
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/workouts/client/"+clientID, nil, &workouts); err != nil {
		return nil, err
	}
	s.c.cacheList("workouts", workouts)
	return workouts, nil
}

// ListMine returns the authenticated client's own assigned workouts.
func (s *WorkoutsService) ListMine(ctx context.Context) ([]domain.Workout, error) {
	var workouts []domain.Workout
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/client/workouts", nil, &workouts); err != nil {
		return nil, err
	}
	s.c.cacheList("workouts", workouts)
	return workouts, nil
}

func (s *WorkoutsService) Create(ctx context.Context, payload WorkoutPayload) (*domain.Workout, error) {
	var workout domain.Workout
	if err := s.c.doAuthed(ctx, http.MethodPost, "/api/admin/workouts", payload, &workout); err != nil {
		return nil, err
	}
	s.c.invalidate("workouts")
	return &workout, nil
}

func (s *WorkoutsService) Update(ctx context.Context, id string, payload WorkoutPayload) (*domain.Workout, error) {
	var workout domain.Workout
	if err := s.c.doAuthed(ctx, http.MethodPut, "/api/admin/workouts/"+id, payload, &workout); err != nil {
		return nil, err
	}
	s.c.invalidate("workouts")
	return &workout, nil
}

func (s *WorkoutsService) Delete(ctx context.Context, id string) error {
	if err := s.c.doAuthed(ctx, http.MethodDelete, "/api/admin/workouts/"+id, nil, nil); err != nil {
		return err
	}
	s.c.invalidate("workouts")
	return nil
}
