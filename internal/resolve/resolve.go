// Package resolve turns a free-form spoken identifier into exactly one task.
//
// Resolution order: plain integer, ordinal suffix, title substring. Numeric
// forms are checked first so a task literally titled "4" can never shadow
// positional intent. Every branch fetches a fresh task list immediately
// before validating, because API order defines what "the 2nd task" means.
package resolve

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"vtask/internal/service"
)

// NotFoundError indicates zero matches or an out-of-range position.
// Its message is a complete speakable sentence.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

// AmbiguousError indicates multiple title matches. Its message lists the
// candidates with their positions and asks the speaker to disambiguate.
type AmbiguousError struct {
	Matches []service.Task
	msg     string
}

func (e *AmbiguousError) Error() string { return e.msg }

var (
	plainIntRe = regexp.MustCompile(`^\d+$`)
	ordinalRe  = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)`)
)

// Resolve resolves identifier against the current task collection and
// returns the single matching task. It fails with *NotFoundError or
// *AmbiguousError; both carry speakable messages.
func Resolve(ctx context.Context, svc service.Service, identifier string) (service.Task, error) {
	identifier = strings.TrimSpace(identifier)

	// Plain integer: 1-based position in API order.
	if plainIntRe.MatchString(identifier) {
		n, err := strconv.Atoi(identifier)
		if err != nil {
			return service.Task{}, notFound(identifier)
		}
		return byPosition(ctx, svc, n)
	}

	// Ordinal suffix anywhere in the string, e.g. "the 2nd one".
	if m := ordinalRe.FindStringSubmatch(identifier); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return service.Task{}, notFound(identifier)
		}
		return byPosition(ctx, svc, n)
	}

	return byTitle(ctx, svc, identifier)
}

func byPosition(ctx context.Context, svc service.Service, n int) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx, service.Query{})
	if err != nil {
		return service.Task{}, err
	}
	if n < 1 || n > len(tasks) {
		return service.Task{}, &NotFoundError{
			msg: fmt.Sprintf("There is no task number %d. You have %d %s.", n, len(tasks), plural(len(tasks), "task")),
		}
	}
	return tasks[n-1], nil
}

func byTitle(ctx context.Context, svc service.Service, identifier string) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx, service.Query{})
	if err != nil {
		return service.Task{}, err
	}

	needle := strings.ToLower(identifier)
	var matches []service.Task
	var positions []int
	for i, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			matches = append(matches, t)
			positions = append(positions, i+1)
		}
	}

	switch len(matches) {
	case 0:
		return service.Task{}, notFound(identifier)
	case 1:
		return matches[0], nil
	default:
		var parts []string
		for i, t := range matches {
			parts = append(parts, fmt.Sprintf("number %d, %s", positions[i], t.Title))
		}
		return service.Task{}, &AmbiguousError{
			Matches: matches,
			msg: fmt.Sprintf("I found %d tasks matching %q: %s. Please say the task number or a more specific phrase.",
				len(matches), identifier, strings.Join(parts, "; ")),
		}
	}
}

func notFound(identifier string) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf("I couldn't find a task matching %q.", identifier)}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
