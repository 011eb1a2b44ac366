package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"calibra/coach-app/internal/builder"
	"calibra/coach-app/internal/domain"
)

// errComposeCancelled ends a compose session without submitting.
var errComposeCancelled = errors.New("cancelled")

// composeSession is the interactive loop around a routine builder,
// shared by template and workout editing. It reads one directive per
// line until "done" triggers submission or "cancel" aborts.
type composeSession struct {
	app       *App
	b         *builder.Builder
	library   map[string]domain.Exercise
	templates []domain.Template
}

func newComposeSession(app *App, b *builder.Builder, library map[string]domain.Exercise, templates []domain.Template) *composeSession {
	return &composeSession{app: app, b: b, library: library, templates: templates}
}

// run drives the loop and delivers the finished routine through deliver.
// A failed submission keeps the session open for corrections.
func (s *composeSession) run(ctx context.Context, deliver builder.SubmitFunc) error {
	s.help()
	s.show()
	for {
		fmt.Fprint(s.app.out, "> ")
		line, err := readLine(s.app.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return errComposeCancelled
			}
			return err
		}
		verb, rest := splitDirective(line)
		switch verb {
		case "":
			continue
		case "help", "?":
			s.help()
		case "show", "ls":
			s.show()
		case "title":
			s.b.SetTitle(rest)
		case "desc", "description":
			s.b.SetDescription(rest)
		case "add":
			s.add(rest)
		case "remove", "rm":
			s.remove(rest)
		case "set":
			s.set(rest)
		case "template", "tpl":
			s.loadTemplate(rest)
		case "cancel", "quit", "q":
			return errComposeCancelled
		case "done", "save":
			err := s.b.Submit(ctx, deliver)
			if err == nil {
				return nil
			}
			fail(s.app.out, "%v", err)
			if errors.Is(err, builder.ErrTitleRequired) || errors.Is(err, builder.ErrNoExercises) {
				continue
			}
			warn(s.app.out, "Nothing was saved; fix the problem and run 'done' again, or 'cancel'")
		default:
			warn(s.app.out, "Unknown directive %q; type 'help'", verb)
		}
	}
}

func (s *composeSession) help() {
	faintStyle.Fprintln(s.app.out, "Directives: title <text> | desc <text> | add <exercise-id> | remove <n> |")
	faintStyle.Fprintln(s.app.out, "  set <n> sets|reps|rest|notes <value> | template <template-id> | show | done | cancel")
}

func (s *composeSession) show() {
	title := s.b.Title()
	if title == "" {
		title = faintStyle.Sprint("(untitled)")
	}
	header(s.app.out, "%s", title)
	if desc := s.b.Description(); desc != "" {
		faintStyle.Fprintf(s.app.out, "%s\n", desc)
	}
	entries := s.b.Entries()
	if len(entries) == 0 {
		faintStyle.Fprintln(s.app.out, "  (no exercises yet)")
		return
	}
	renderEntries(s.app.out, entries, s.library)
}

func (s *composeSession) add(id string) {
	exercise, ok := s.library[id]
	if !ok {
		exercise, ok = s.findByName(id)
	}
	if !ok {
		warn(s.app.out, "No exercise %q in the library; 'calibra exercises list' shows ids", id)
		return
	}
	if err := s.b.AddExercise(exercise); err != nil {
		warn(s.app.out, "%v", err)
		return
	}
	success(s.app.out, "Added %s", exercise.Name)
}

// findByName allows adding by exact name as a convenience; ids stay the
// canonical handle.
func (s *composeSession) findByName(name string) (domain.Exercise, bool) {
	for _, ex := range s.library {
		if strings.EqualFold(ex.Name, name) {
			return ex, true
		}
	}
	return domain.Exercise{}, false
}

func (s *composeSession) remove(arg string) {
	index, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		warn(s.app.out, "remove takes the position shown by 'show'")
		return
	}
	if err := s.b.RemoveExercise(index - 1); err != nil {
		warn(s.app.out, "%v", err)
		return
	}
	s.show()
}

func (s *composeSession) set(rest string) {
	parts := strings.SplitN(rest, " ", 3)
	if len(parts) < 3 {
		warn(s.app.out, "usage: set <n> sets|reps|rest|notes <value>")
		return
	}
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		warn(s.app.out, "set takes the position shown by 'show'")
		return
	}
	if err := s.b.UpdateField(index-1, builder.Field(parts[1]), parts[2]); err != nil {
		warn(s.app.out, "%v", err)
	}
}

func (s *composeSession) loadTemplate(id string) {
	template, ok := s.findTemplate(id)
	if !ok {
		warn(s.app.out, "No template %q; 'calibra templates list' shows ids", id)
		return
	}
	err := s.b.LoadFromTemplate(template, false)
	if errors.Is(err, builder.ErrNotConfirmed) {
		confirmed, cerr := confirmYes(s.app.in, s.app.out,
			fmt.Sprintf("Loading %q replaces the current exercises", template.Title))
		if cerr != nil {
			warn(s.app.out, "%v", cerr)
			return
		}
		if !confirmed {
			warn(s.app.out, "Kept the current exercises")
			return
		}
		err = s.b.LoadFromTemplate(template, true)
	}
	if err != nil {
		warn(s.app.out, "%v", err)
		return
	}
	s.show()
}

func (s *composeSession) findTemplate(id string) (domain.Template, bool) {
	for _, template := range s.templates {
		if template.ID == id || strings.EqualFold(template.Title, id) {
			return template, true
		}
	}
	return domain.Template{}, false
}

func splitDirective(line string) (verb, rest string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return strings.ToLower(line[:i]), strings.TrimSpace(line[i+1:])
	}
	return strings.ToLower(line), ""
}
