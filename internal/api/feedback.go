package api

import (
	"context"
	"fmt"
	"net/http"

	"calibra/coach-app/internal/domain"
)

// FeedbackService handles session feedback: clients create and read their
// own reports, the coach reads any client's history. Feedback is
// create-only; there is no update or delete path.
type FeedbackService struct {
	c *Client
}

// FeedbackPayload is the report a client submits after finishing a
// workout.
type FeedbackPayload struct {
	WorkoutID string               `json:"workoutId"`
	RPE       int                  `json:"rpe"`
	Comments  string               `json:"comments,omitempty"`
	Exercises []domain.ExerciseLog `json:"exercisesData,omitempty"`
}

// ListMine returns the authenticated client's own progress log.
func (s *FeedbackService) ListMine(ctx context.Context) ([]domain.Feedback, error) {
	var logs []domain.Feedback
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/client/feedback", nil, &logs); err != nil {
		return nil, err
	}
	s.c.cacheList("feedback", logs)
	return logs, nil
}

// ListForClient returns one client's feedback history for the coach.
func (s *FeedbackService) ListForClient(ctx context.Context, clientID string) ([]domain.Feedback, error) {
	var logs []domain.Feedback
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/feedback/"+clientID, nil, &logs); err != nil {
		return nil, err
	}
	s.c.cacheList("feedback", logs)
	return logs, nil
}

// Create files a workout-finished report. RPE is validated client-side so
// an out-of-range value never reaches the network.
func (s *FeedbackService) Create(ctx context.Context, payload FeedbackPayload) (*domain.Feedback, error) {
	if payload.RPE < domain.RPEMin || payload.RPE > domain.RPEMax {
		return nil, fmt.Errorf("rpe must be between %d and %d", domain.RPEMin, domain.RPEMax)
	}
	var report domain.Feedback
	if err := s.c.doAuthed(ctx, http.MethodPost, "/api/client/feedback", payload, &report); err != nil {
		return nil, err
	}
	s.c.invalidate("feedback")
	return &report, nil
}
