package tools

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"vtask/internal/dateparse"
	"vtask/internal/priority"
	"vtask/internal/resolve"
	"vtask/internal/service"
	"vtask/internal/speech"
)

func updateTaskDef(r *Registry) *Definition {
	return &Definition{
		Name:        "update_task",
		Description: "Update an existing task: rename it, reschedule it, change its priority, or mark it complete or incomplete.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"identifier": map[string]any{
					"type":        "string",
					"description": "Which task: a number, an ordinal like 2nd, or part of the title",
				},
				"title": map[string]any{
					"type":        "string",
					"description": "New title",
				},
				"scheduled_time": map[string]any{
					"type":        "string",
					"description": "New schedule, e.g. tomorrow or next Friday",
				},
				"priority": map[string]any{
					"type":        "string",
					"description": "New priority as a word or number 1-5",
				},
				"completed": map[string]any{
					"type":        "boolean",
					"description": "Mark the task complete or incomplete",
				},
			},
			"required": []string{"identifier"},
		},
		Handler: r.updateTask,
	}
}

func (r *Registry) updateTask(ctx context.Context, args map[string]any) string {
	identifier, _ := stringArg(args, "identifier")
	if strings.TrimSpace(identifier) == "" {
		return "Which task would you like to update? Say its number or part of its title."
	}

	task, err := resolve.Resolve(ctx, r.svc, identifier)
	if err != nil {
		return resolutionReply(err, "finding your task")
	}

	now := r.now()
	var p service.Patch
	changedCompleted := false
	changedOther := false

	if title, ok := stringArg(args, "title"); ok && strings.TrimSpace(title) != "" {
		title = strings.TrimSpace(title)
		if utf8.RuneCountInString(title) > maxTitleLen {
			return "That title is too long. Could you give me a shorter one?"
		}
		p.Title = &title
		changedOther = true
	}
	if phrase, ok := stringArg(args, "scheduled_time"); ok && strings.TrimSpace(phrase) != "" {
		when, err := dateparse.Parse(phrase, now)
		if err != nil {
			return err.Error()
		}
		p.ScheduledTime = &when
		changedOther = true
	}
	// A null priority means no priority change, same as omitting it.
	if raw, present := args["priority"]; present && raw != nil {
		n, ok := priority.Parse(raw)
		if !ok {
			return priorityHint
		}
		p.PriorityIndex = &n
		changedOther = true
	}
	if completed, ok := boolArg(args, "completed"); ok {
		p.Completed = &completed
		changedCompleted = true
	}

	if !changedCompleted && !changedOther {
		return "What would you like to change about that task?"
	}

	if _, err := r.svc.UpdateTask(ctx, task.ID, p); err != nil {
		return speech.FormatError(err, "updating your task")
	}

	if changedCompleted && !changedOther {
		if *p.Completed {
			return "Marked complete."
		}
		return "Marked incomplete."
	}
	return "Updated."
}

// resolutionReply surfaces resolver messages verbatim: they are already
// complete speakable sentences. Transport failures go through the generic
// formatter instead.
func resolutionReply(err error, operation string) string {
	var nf *resolve.NotFoundError
	var amb *resolve.AmbiguousError
	if errors.As(err, &nf) || errors.As(err, &amb) {
		return err.Error()
	}
	return speech.FormatError(err, operation)
}
