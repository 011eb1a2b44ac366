package builder

import (
	"context"
	"errors"
	"testing"

	"calibra/coach-app/internal/domain"
)

func sampleExercise(id, name string) domain.Exercise {
	return domain.Exercise{ID: id, Name: name, Category: domain.CategoryFuerza}
}

func TestAddExerciseDefaults(t *testing.T) {
	b := New()
	if err := b.AddExercise(sampleExercise("ex1", "Sentadilla")); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}

	entries := b.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Sets != DefaultSets || entry.Reps != DefaultReps || entry.Rest != DefaultRest {
		t.Errorf("entry defaults = %q/%q/%q, want %q/%q/%q",
			entry.Sets, entry.Reps, entry.Rest, DefaultSets, DefaultReps, DefaultRest)
	}
	if entry.Notes != "" {
		t.Errorf("notes default = %q, want empty", entry.Notes)
	}
	if entry.Exercise.ID != "ex1" || entry.Exercise.Name != "Sentadilla" {
		t.Errorf("entry ref = %+v", entry.Exercise)
	}
}

func TestAddDuplicateRefusedAndListUnchanged(t *testing.T) {
	b := New()
	if err := b.AddExercise(sampleExercise("ex1", "Sentadilla")); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := b.UpdateField(0, FieldSets, "5"); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}

	err := b.AddExercise(sampleExercise("ex1", "Sentadilla"))
	if !errors.Is(err, ErrDuplicateExercise) {
		t.Fatalf("duplicate add error = %v, want ErrDuplicateExercise", err)
	}

	entries := b.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries after refused add, want 1", len(entries))
	}
	if entries[0].Sets != "5" {
		t.Errorf("sets = %q, refused add must not touch existing entries", entries[0].Sets)
	}
}

func TestRemoveShiftsPositions(t *testing.T) {
	b := New()
	for i, name := range []string{"A", "B", "C"} {
		if err := b.AddExercise(sampleExercise("ex"+string(rune('1'+i)), name)); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	if err := b.RemoveExercise(0); err != nil {
		t.Fatalf("RemoveExercise: %v", err)
	}

	entries := b.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Exercise.Name != "B" || entries[1].Exercise.Name != "C" {
		t.Errorf("entries after remove = %s, %s; want B, C",
			entries[0].Exercise.Name, entries[1].Exercise.Name)
	}

	if err := b.RemoveExercise(5); err == nil {
		t.Error("out-of-range remove must fail")
	}
}

func TestStateTransitions(t *testing.T) {
	b := New()
	if b.State() != StateEmpty {
		t.Fatalf("new builder state = %v, want StateEmpty", b.State())
	}

	b.SetTitle("Semana 1")
	if b.State() != StatePopulating {
		t.Fatalf("titled builder state = %v, want StatePopulating", b.State())
	}

	if err := b.AddExercise(sampleExercise("ex1", "Sentadilla")); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	if b.State() != StateReady {
		t.Fatalf("state = %v, want StateReady", b.State())
	}

	err := b.Submit(context.Background(), func(context.Context, string, string, []domain.WorkoutExercise) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if b.State() != StateClosed {
		t.Fatalf("state after submit = %v, want StateClosed", b.State())
	}
}

func TestSubmitFailureReturnsEditable(t *testing.T) {
	b := New()
	b.SetTitle("Semana 1")
	if err := b.AddExercise(sampleExercise("ex1", "Sentadilla")); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}

	boom := errors.New("server rejected")
	err := b.Submit(context.Background(), func(context.Context, string, string, []domain.WorkoutExercise) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Submit error = %v, want the delivery error", err)
	}
	if b.State() != StateReady {
		t.Fatalf("state after failed submit = %v, want StateReady", b.State())
	}

	// The builder stays editable for a retry.
	if err := b.UpdateField(0, FieldReps, "8"); err != nil {
		t.Fatalf("UpdateField after failed submit: %v", err)
	}
}

func TestValidateBlocksSubmission(t *testing.T) {
	b := New()
	if err := b.Validate(); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("empty builder Validate = %v, want ErrTitleRequired", err)
	}

	b.SetTitle("Semana 1")
	if err := b.Validate(); !errors.Is(err, ErrNoExercises) {
		t.Errorf("exercise-less Validate = %v, want ErrNoExercises", err)
	}

	err := b.Submit(context.Background(), func(context.Context, string, string, []domain.WorkoutExercise) error {
		t.Fatal("delivery must not run when validation fails")
		return nil
	})
	if !errors.Is(err, ErrNoExercises) {
		t.Errorf("Submit = %v, want ErrNoExercises", err)
	}
}

func TestLoadFromTemplateNeedsConfirmation(t *testing.T) {
	template := domain.Template{
		Title: "Movilidad básica",
		Exercises: []domain.WorkoutExercise{
			{Exercise: domain.ExerciseRef{ID: "ex2", Name: "Gato"}, Sets: "2", Reps: "12", Rest: "30s"},
		},
	}

	b := New()
	// An empty list loads without confirmation.
	if err := b.LoadFromTemplate(template, false); err != nil {
		t.Fatalf("load into empty builder: %v", err)
	}
	if b.Title() != "Movilidad básica" {
		t.Errorf("title = %q, want the template title", b.Title())
	}

	// With entries present, an unconfirmed load is refused and changes
	// nothing.
	if err := b.AddExercise(sampleExercise("ex3", "Plancha")); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	err := b.LoadFromTemplate(template, false)
	if !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("unconfirmed load = %v, want ErrNotConfirmed", err)
	}
	if len(b.Entries()) != 2 {
		t.Fatalf("refused load changed the entries: %d", len(b.Entries()))
	}

	if err := b.LoadFromTemplate(template, true); err != nil {
		t.Fatalf("confirmed load: %v", err)
	}
	if len(b.Entries()) != 1 {
		t.Fatalf("got %d entries after confirmed load, want the template's 1", len(b.Entries()))
	}
}

func TestLoadFromTemplateDeepCopies(t *testing.T) {
	template := domain.Template{
		Title: "Movilidad básica",
		Exercises: []domain.WorkoutExercise{
			{Exercise: domain.ExerciseRef{ID: "ex2", Name: "Gato"}, Sets: "2", Reps: "12", Rest: "30s"},
		},
	}

	b := New()
	if err := b.LoadFromTemplate(template, false); err != nil {
		t.Fatalf("LoadFromTemplate: %v", err)
	}
	if err := b.UpdateField(0, FieldSets, "4"); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	if template.Exercises[0].Sets != "2" {
		t.Errorf("template entry mutated to sets=%q; builder must copy", template.Exercises[0].Sets)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	b := New()
	if err := b.AddExercise(sampleExercise("ex1", "Sentadilla")); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	entries := b.Entries()
	entries[0].Sets = "99"
	if b.Entries()[0].Sets != DefaultSets {
		t.Error("mutating the returned slice must not reach the builder")
	}
}

func TestEditPrepopulates(t *testing.T) {
	workout := domain.Workout{
		Title: "Semana 2",
		Exercises: []domain.WorkoutExercise{
			{Exercise: domain.ExerciseRef{ID: "ex1", Name: "Sentadilla"}, Sets: "5", Reps: "5", Rest: "120s"},
		},
	}
	b := Edit(workout)
	if b.State() != StateReady {
		t.Fatalf("edit builder state = %v, want StateReady", b.State())
	}
	if b.Title() != "Semana 2" || len(b.Entries()) != 1 {
		t.Fatalf("edit builder = %q with %d entries", b.Title(), len(b.Entries()))
	}

	// Edits stay local to the builder until submitted.
	if err := b.UpdateField(0, FieldSets, "3"); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	if workout.Exercises[0].Sets != "5" {
		t.Errorf("source workout mutated to sets=%q", workout.Exercises[0].Sets)
	}
}
