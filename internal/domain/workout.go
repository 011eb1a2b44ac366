package domain

import "time"

// WorkoutExercise is one configured entry of a workout or template.
// Sets, reps and rest are display strings on purpose ("10-12", "AMRAP",
// "90s"); no numeric validation is imposed anywhere.
type WorkoutExercise struct {
	Exercise ExerciseRef `json:"exercise"`
	Sets     string      `json:"sets"`
	Reps     string      `json:"reps"`
	Rest     string      `json:"rest"`
	Notes    string      `json:"notes,omitempty"`
}

// Template is a reusable workout blueprint not tied to any client.
// Assigning it to a client copies its entries; later template edits never
// propagate to workouts created from it.
type Template struct {
	ID          string            `json:"_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Exercises   []WorkoutExercise `json:"exercises"`
}

// Workout is a dated, client-specific routine assigned by the coach.
// Clients consume it read-only.
type Workout struct {
	ID           string            `json:"_id"`
	ClientID     string            `json:"clientId"`
	Title        string            `json:"title"`
	DateAssigned time.Time         `json:"dateAssigned"`
	Exercises    []WorkoutExercise `json:"exercises"`
}
