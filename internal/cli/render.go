package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"calibra/coach-app/internal/domain"
)

// DanglingExerciseLabel is rendered when a workout or template entry
// references an exercise that no longer exists in the library.
const DanglingExerciseLabel = "Exercise removed"

var (
	headerStyle  = color.New(color.Bold)
	faintStyle   = color.New(color.Faint)
	successStyle = color.New(color.FgGreen)
	warnStyle    = color.New(color.FgYellow)
	errorStyle   = color.New(color.FgRed)
)

// step marks the start of a network call: the in-flight indication that
// replaces a disabled submit control.
func step(w io.Writer, format string, args ...any) {
	faintStyle.Fprintf(w, format+"...\n", args...)
}

func success(w io.Writer, format string, args ...any) {
	successStyle.Fprintf(w, "✔ "+format+"\n", args...)
}

func warn(w io.Writer, format string, args ...any) {
	warnStyle.Fprintf(w, "! "+format+"\n", args...)
}

func fail(w io.Writer, format string, args ...any) {
	errorStyle.Fprintf(w, "✘ "+format+"\n", args...)
}

func header(w io.Writer, format string, args ...any) {
	headerStyle.Fprintf(w, format+"\n", args...)
}

// emptyState renders an explicit empty collection message with a prompt
// for the first item, never a blank listing.
func emptyState(w io.Writer, what, hint string) {
	fmt.Fprintf(w, "No %s yet.\n", what)
	faintStyle.Fprintf(w, "  %s\n", hint)
}

// entryName resolves a workout/template entry against the library,
// degrading to a placeholder when the reference is dangling.
func entryName(ref domain.ExerciseRef, library map[string]domain.Exercise) string {
	if ex, ok := library[ref.ID]; ok {
		return ex.Name
	}
	if ref.Name != "" {
		return ref.Name
	}
	return DanglingExerciseLabel
}

// renderEntries prints the configured entries of a workout or template.
// Numbering is 1-based and derived from position.
func renderEntries(w io.Writer, entries []domain.WorkoutExercise, library map[string]domain.Exercise) {
	for i, entry := range entries {
		fmt.Fprintf(w, "  %d. %s\n", i+1, entryName(entry.Exercise, library))
		faintStyle.Fprintf(w, "     %s x %s, rest %s", entry.Sets, entry.Reps, entry.Rest)
		if entry.Notes != "" {
			faintStyle.Fprintf(w, " (%s)", entry.Notes)
		}
		fmt.Fprintln(w)
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

// truncate shortens s to at most max runes. Cutting on rune boundaries
// keeps accented text valid when it gets clipped.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
