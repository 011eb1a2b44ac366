package api

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"calibra/coach-app/internal/domain"
)

// StatsService serves the coach dashboard's server-computed numbers.
type StatsService struct {
	c *Client
}

func (s *StatsService) Summary(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *StatsService) Activity(ctx context.Context) (*domain.Activity, error) {
	var activity domain.Activity
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/stats/activity", nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// AvatarsService uploads profile photos. Each role has its own endpoint
// but the multipart layout ("avatar" file field) is the same.
type AvatarsService struct {
	c *Client
}

func (s *AvatarsService) UploadMine(ctx context.Context, upload ImageUpload) (string, error) {
	return s.upload(ctx, "/api/client/avatar", upload)
}

func (s *AvatarsService) UploadAdmin(ctx context.Context, upload ImageUpload) (string, error) {
	return s.upload(ctx, "/api/admin/avatar", upload)
}

func (s *AvatarsService) upload(ctx context.Context, path string, upload ImageUpload) (string, error) {
	var resp struct {
		Avatar string `json:"avatar"`
	}
	err := s.c.doMultipart(ctx, http.MethodPost, path, func(form *multipart.Writer) error {
		part, err := form.CreateFormFile("avatar", filepath.Base(upload.Filename))
		if err != nil {
			return err
		}
		_, err = io.Copy(part, upload.Content)
		return err
	}, &resp)
	if err != nil {
		return "", err
	}
	s.c.invalidate("users")
	return resp.Avatar, nil
}
