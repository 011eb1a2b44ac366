package domain

import (
	"encoding/json"
	"testing"
)

func TestExerciseRefAcceptsBothWireShapes(t *testing.T) {
	// The backend serves entries either with a bare id or with a
	// populated object, depending on the endpoint.
	var bare WorkoutExercise
	if err := json.Unmarshal([]byte(`{"exercise":"abc123","sets":"3","reps":"10","rest":"60s"}`), &bare); err != nil {
		t.Fatalf("unmarshal bare id: %v", err)
	}
	if bare.Exercise.ID != "abc123" || bare.Exercise.Name != "" {
		t.Fatalf("bare ref = %+v", bare.Exercise)
	}

	var populated WorkoutExercise
	if err := json.Unmarshal([]byte(`{"exercise":{"_id":"abc123","name":"Sentadilla"},"sets":"3","reps":"10","rest":"60s"}`), &populated); err != nil {
		t.Fatalf("unmarshal populated ref: %v", err)
	}
	if populated.Exercise.ID != "abc123" || populated.Exercise.Name != "Sentadilla" {
		t.Fatalf("populated ref = %+v", populated.Exercise)
	}
}

func TestExerciseRefMarshalsAsBareID(t *testing.T) {
	entry := WorkoutExercise{
		Exercise: ExerciseRef{ID: "abc123", Name: "Sentadilla"},
		Sets:     "3", Reps: "10", Rest: "60s",
	}
	buf, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if id, ok := decoded["exercise"].(string); !ok || id != "abc123" {
		t.Fatalf("outgoing exercise field = %v, want the bare id string", decoded["exercise"])
	}
}

func TestDangling(t *testing.T) {
	library := map[string]Exercise{"abc123": {ID: "abc123", Name: "Sentadilla"}}
	if (ExerciseRef{ID: "abc123"}).Dangling(library) {
		t.Error("resolvable ref reported dangling")
	}
	if !(ExerciseRef{ID: "gone"}).Dangling(library) {
		t.Error("unresolvable ref reported resolvable")
	}
}
