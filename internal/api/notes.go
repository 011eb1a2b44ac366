package api

import (
	"context"
	"net/http"

	"calibra/coach-app/internal/domain"
)

// NotesService manages the coach's internal annotations on a client.
type NotesService struct {
	c *Client
}

type NotePayload struct {
	ClientID string `json:"clientId,omitempty"`
	Content  string `json:"content"`
}

func (s *NotesService) ListForClient(ctx context.Context, clientID string) ([]domain.Note, error) {
	var notes []domain.Note
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/notes/"+clientID, nil, &notes); err != nil {
		return nil, err
	}
	s.c.cacheList("notes", notes)
	return notes, nil
}

func (s *NotesService) Create(ctx context.Context, payload NotePayload) (*domain.Note, error) {
	var note domain.Note
	if err := s.c.doAuthed(ctx, http.MethodPost, "/api/admin/notes", payload, &note); err != nil {
		return nil, err
	}
	s.c.invalidate("notes")
	return &note, nil
}

func (s *NotesService) Update(ctx context.Context, id, content string) (*domain.Note, error) {
	var note domain.Note
	if err := s.c.doAuthed(ctx, http.MethodPut, "/api/admin/notes/"+id, NotePayload{Content: content}, &note); err != nil {
		return nil, err
	}
	s.c.invalidate("notes")
	return &note, nil
}

func (s *NotesService) Delete(ctx context.Context, id string) error {
	if err := s.c.doAuthed(ctx, http.MethodDelete, "/api/admin/notes/"+id, nil, nil); err != nil {
		return err
	}
	s.c.invalidate("notes")
	return nil
}
