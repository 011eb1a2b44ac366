package domain

import "time"

// RPE bounds for session feedback.
const (
	RPEMin = 1
	RPEMax = 10
)

// ExerciseLog is a per-exercise weight entry inside a feedback report.
// ExerciseName is denormalized at submission time so the log survives a
// later deletion of the exercise.
type ExerciseLog struct {
	Exercise   ExerciseRef `json:"exercise"`
	Name       string      `json:"exerciseName"`
	WeightUsed string      `json:"weightUsed,omitempty"`
}

// Feedback is the report a client files exactly once after finishing a
// workout. It is immutable afterwards; there is no edit or delete path.
type Feedback struct {
	ID        string        `json:"_id"`
	ClientID  string        `json:"clientId"`
	WorkoutID string        `json:"workoutId"`
	Date      time.Time     `json:"date"`
	RPE       int           `json:"rpe"`
	Comments  string        `json:"comments,omitempty"`
	Exercises []ExerciseLog `json:"exercisesData,omitempty"`
}
