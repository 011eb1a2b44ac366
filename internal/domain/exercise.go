package domain

import (
	"bytes"
	"encoding/json"
)

// Category classifies an exercise in the library.
type Category string

const (
	CategoryMovilidad    Category = "Movilidad"
	CategoryFuerza       Category = "Fuerza"
	CategoryRespiracion  Category = "Respiración"
	CategoryActivacion   Category = "Activación"
	CategoryEstiramiento Category = "Estiramiento"
	CategoryCardio       Category = "Cardio"
)

// Categories lists every valid exercise category, in display order.
var Categories = []Category{
	CategoryMovilidad,
	CategoryFuerza,
	CategoryRespiracion,
	CategoryActivacion,
	CategoryEstiramiento,
	CategoryCardio,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Exercise represents a single exercise definition in the library.
// Owned and mutated solely by the coach; workouts and templates reference
// it by id and never duplicate it.
type Exercise struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	VideoURL     string   `json:"videoUrl,omitempty"`
	Image        string   `json:"image,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// ExerciseRef is a reference to an Exercise as it appears inside workout
// and template entries. The backend serves it either as a bare id string
// or as a populated {_id, name} object; outgoing payloads always send the
// bare id.
type ExerciseRef struct {
	ID   string
	Name string
}

// Ref returns a populated reference to the exercise.
func (e *Exercise) Ref() ExerciseRef {
	return ExerciseRef{ID: e.ID, Name: e.Name}
}

// Dangling reports whether the reference no longer resolves against the
// given library. Callers must render a placeholder for dangling refs
// rather than fail.
func (r ExerciseRef) Dangling(library map[string]Exercise) bool {
	_, ok := library[r.ID]
	return !ok
}

func (r ExerciseRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

func (r *ExerciseRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var populated struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &populated); err != nil {
		return err
	}
	r.ID = populated.ID
	r.Name = populated.Name
	return nil
}
