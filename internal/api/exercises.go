package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"calibra/coach-app/internal/domain"
)

// ExercisesService manages the exercise library. Coach-scoped.
type ExercisesService struct {
	c *Client
}

// ExercisePayload is the writable shape of an exercise. Image is an
// optional binary attachment; when present the create/update goes out as
// a multipart form instead of a JSON body.
type ExercisePayload struct {
	Name         string          `json:"name"`
	Category     domain.Category `json:"category"`
	VideoURL     string          `json:"videoUrl,omitempty"`
	Instructions string          `json:"instructions,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Image        *ImageUpload    `json:"-"`
}

// ImageUpload is a named binary attachment.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

func (s *ExercisesService) List(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	if err := s.c.doAuthed(ctx, http.MethodGet, "/api/admin/exercises", nil, &exercises); err != nil {
		return nil, err
	}
	s.c.cacheList("exercises", exercises)
	return exercises, nil
}

// Library returns the exercises indexed by id, for resolving the
// exercise references inside workouts and templates.
func (s *ExercisesService) Library(ctx context.Context) (map[string]domain.Exercise, error) {
	exercises, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	library := make(map[string]domain.Exercise, len(exercises))
	for _, ex := range exercises {
		library[ex.ID] = ex
	}
	return library, nil
}

func (s *ExercisesService) Create(ctx context.Context, payload ExercisePayload) (*domain.Exercise, error) {
	return s.submit(ctx, http.MethodPost, "/api/admin/exercises", payload)
}

func (s *ExercisesService) Update(ctx context.Context, id string, payload ExercisePayload) (*domain.Exercise, error) {
	return s.submit(ctx, http.MethodPut, "/api/admin/exercises/"+id, payload)
}

func (s *ExercisesService) submit(ctx context.Context, method, path string, payload ExercisePayload) (*domain.Exercise, error) {
	// An empty category on update means "leave it as it is".
	if payload.Category != "" && !payload.Category.Valid() {
		return nil, fmt.Errorf("unknown exercise category %q", payload.Category)
	}

	var exercise domain.Exercise
	var err error
	if payload.Image != nil {
		err = s.c.doMultipart(ctx, method, path, func(form *multipart.Writer) error {
			return writeExerciseForm(form, payload)
		}, &exercise)
	} else {
		err = s.c.doAuthed(ctx, method, path, payload, &exercise)
	}
	if err != nil {
		return nil, err
	}
	s.c.invalidate("exercises")
	return &exercise, nil
}

// Delete removes an exercise from the library. Workouts and templates
// referencing it keep their entries; those references become dangling and
// render as placeholders.
func (s *ExercisesService) Delete(ctx context.Context, id string) error {
	if err := s.c.doAuthed(ctx, http.MethodDelete, "/api/admin/exercises/"+id, nil, nil); err != nil {
		return err
	}
	s.c.invalidate("exercises")
	return nil
}

// writeExerciseForm lays out the multipart fields the backend expects:
// scalar fields by name, one repeated "tags" field per tag, and the
// attachment under "image".
func writeExerciseForm(form *multipart.Writer, payload ExercisePayload) error {
	fields := map[string]string{
		"name":         payload.Name,
		"category":     string(payload.Category),
		"videoUrl":     payload.VideoURL,
		"instructions": payload.Instructions,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := form.WriteField(name, value); err != nil {
			return err
		}
	}
	for _, tag := range payload.Tags {
		if err := form.WriteField("tags", tag); err != nil {
			return err
		}
	}

	part, err := form.CreateFormFile("image", filepath.Base(payload.Image.Filename))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, payload.Image.Content)
	return err
}
