package api

import (
	"context"
	"net/http"

	"calibra/coach-app/internal/domain"
)

// EvaluationsService manages the append-only assessment history of a
// client. Coach-scoped.
type EvaluationsService struct {
	c *Client
}

type EvaluationPayload struct {
	ClientID      string                `json:"clientId"`
	Type          domain.EvaluationType `json:"type"`
	PriorityZones []string              `json:"priorityZones,omitempty"`
	Focus         string                `json:"focus,omitempty"`
	Notes         string                `json:"notes,omitempty"`
}

func (s *EvaluationsService) ListForClient(ctx context.Context, clientID string) ([]domain.Evaluation, error) {
	var evaluations []domain.Evaluation
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/evaluations/"+clientID, nil, &evaluations); err != nil {
		return nil, err
	}
	s.c.cacheList("evaluations", evaluations)
	return evaluations, nil
}

func (s *EvaluationsService) Create(ctx context.Context, payload EvaluationPayload) (*domain.Evaluation, error) {
	var evaluation domain.Evaluation
	if err := s.c.doAuthed(ctx, http.MethodPost, "/api/admin/evaluations", payload, &evaluation); err != nil {
		return nil, err
	}
	s.c.invalidate("evaluations")
	return &evaluation, nil
}
