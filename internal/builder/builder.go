// Package builder assembles the ordered exercise-configuration list of a
// workout or template, whether built fresh, copied from a template, or
// loaded for editing.
package builder

import (
	"context"
	"errors"
	"fmt"

	"calibra/coach-app/internal/domain"
)

// Default configuration for a freshly added entry.
const (
	DefaultSets  = "3"
	DefaultReps  = "10"
	DefaultRest  = "60s"
	DefaultNotes = ""
)

var (
	// ErrDuplicateExercise signals a refused add: the exercise is already
	// in the list. The list is left unchanged.
	ErrDuplicateExercise = errors.New("exercise is already in the routine")
	// ErrTitleRequired blocks submission of an untitled routine.
	ErrTitleRequired = errors.New("title must not be blank")
	// ErrNoExercises blocks submission of an empty routine.
	ErrNoExercises = errors.New("add at least one exercise")
	// ErrNotConfirmed means a template load would discard built entries
	// and the caller did not confirm the replacement.
	ErrNotConfirmed = errors.New("loading a template replaces the current exercises; confirmation required")
	// ErrSubmitting refuses re-entrant operations while a submission is
	// in flight.
	ErrSubmitting = errors.New("submission already in flight")
)

// State of the builder's lifecycle:
// Empty -> Populating -> Ready -> Submitting -> Closed, with a failed
// submission returning to Populating.
type State int

const (
	StateEmpty State = iota
	StatePopulating
	StateReady
	StateSubmitting
	StateClosed
)

// Field names a mutable entry attribute. Values are free-text display
// strings; no numeric validation applies.
type Field string

const (
	FieldSets  Field = "sets"
	FieldReps  Field = "reps"
	FieldRest  Field = "rest"
	FieldNotes Field = "notes"
)

// Builder holds the in-progress routine. Display numbering is always
// derived from current position and never stored.
type Builder struct {
	title       string
	description string
	entries     []domain.WorkoutExercise
	submitting  bool
	closed      bool
}

func New() *Builder {
	return &Builder{}
}

// Edit pre-populates a builder from an existing workout for edit flows.
func Edit(workout domain.Workout) *Builder {
	b := &Builder{title: workout.Title}
	b.entries = copyEntries(workout.Exercises)
	return b
}

func (b *Builder) Title() string       { return b.title }
func (b *Builder) Description() string { return b.description }

func (b *Builder) SetTitle(title string)      { b.title = title }
func (b *Builder) SetDescription(desc string) { b.description = desc }

// Entries returns a copy of the current list; callers cannot mutate the
// builder through it.
func (b *Builder) Entries() []domain.WorkoutExercise {
	return copyEntries(b.entries)
}

func (b *Builder) State() State {
	switch {
	case b.closed:
		return StateClosed
	case b.submitting:
		return StateSubmitting
	case b.title != "" && len(b.entries) > 0:
		return StateReady
	case b.title != "" || len(b.entries) > 0:
		return StatePopulating
	default:
		return StateEmpty
	}
}

// AddExercise appends an entry with default configuration. Adding an
// exercise already present is refused with ErrDuplicateExercise so the
// caller can surface a warning.
func (b *Builder) AddExercise(exercise domain.Exercise) error {
	if b.submitting {
		return ErrSubmitting
	}
	for _, entry := range b.entries {
		if entry.Exercise.ID == exercise.ID {
			return ErrDuplicateExercise
		}
	}
	b.entries = append(b.entries, domain.WorkoutExercise{
		Exercise: exercise.Ref(),
		Sets:     DefaultSets,
		Reps:     DefaultReps,
		Rest:     DefaultRest,
		Notes:    DefaultNotes,
	})
	return nil
}

// RemoveExercise drops the entry at index; later entries shift down.
func (b *Builder) RemoveExercise(index int) error {
	if b.submitting {
		return ErrSubmitting
	}
	if index < 0 || index >= len(b.entries) {
		return fmt.Errorf("no exercise at position %d", index+1)
	}
	b.entries = append(b.entries[:index], b.entries[index+1:]...)
	return nil
}

// UpdateField mutates one attribute of one entry.
func (b *Builder) UpdateField(index int, field Field, value string) error {
	if b.submitting {
		return ErrSubmitting
	}
	if index < 0 || index >= len(b.entries) {
		return fmt.Errorf("no exercise at position %d", index+1)
	}
	entry := &b.entries[index]
	switch field {
	case FieldSets:
		entry.Sets = value
	case FieldReps:
		entry.Reps = value
	case FieldRest:
		entry.Rest = value
	case FieldNotes:
		entry.Notes = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// LoadFromTemplate replaces the current list with a deep copy of the
// template's entries, and adopts its title. The replacement is
// irreversible within the editing session, so when entries would be
// discarded the caller must pass confirmed=true after asking the user.
func (b *Builder) LoadFromTemplate(template domain.Template, confirmed bool) error {
	if b.submitting {
		return ErrSubmitting
	}
	if len(b.entries) > 0 && !confirmed {
		return ErrNotConfirmed
	}
	b.title = template.Title
	b.entries = copyEntries(template.Exercises)
	return nil
}

// Validate reports the first field-level problem blocking submission.
func (b *Builder) Validate() error {
	if b.title == "" {
		return ErrTitleRequired
	}
	if len(b.entries) == 0 {
		return ErrNoExercises
	}
	return nil
}

// SubmitFunc delivers the assembled routine, typically to a resource
// fetcher's create or update.
type SubmitFunc func(ctx context.Context, title, description string, entries []domain.WorkoutExercise) error

// Submit validates and delivers the routine. On success the builder is
// closed and the caller must re-fetch the owning list; on failure it
// returns to an editable state.
func (b *Builder) Submit(ctx context.Context, deliver SubmitFunc) error {
	if b.submitting {
		return ErrSubmitting
	}
	if err := b.Validate(); err != nil {
		return err
	}
	b.submitting = true
	err := deliver(ctx, b.title, b.description, b.Entries())
	b.submitting = false
	if err != nil {
		return err
	}
	b.closed = true
	return nil
}

func copyEntries(entries []domain.WorkoutExercise) []domain.WorkoutExercise {
	out := make([]domain.WorkoutExercise, len(entries))
	copy(out, entries)
	return out
}
