package tools

import (
	"context"
	"strings"

	"vtask/internal/priority"
	"vtask/internal/service"
	"vtask/internal/speech"
)

func getTasksDef(r *Registry) *Definition {
	return &Definition{
		Name:        "get_tasks",
		Description: "Count tasks, optionally filtered by text, priority, or schedule. The list itself is shown on screen, not spoken.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Free-text filter on task titles",
				},
				"priority": map[string]any{
					"type":        "string",
					"description": "Priority filter as a word or number 1-5",
				},
				"scheduled": map[string]any{
					"type":        "string",
					"description": "Schedule filter, e.g. today or overdue",
				},
			},
		},
		Handler: r.getTasks,
	}
}

func (r *Registry) getTasks(ctx context.Context, args map[string]any) string {
	var q service.Query
	if text, ok := stringArg(args, "query"); ok {
		q.Text = strings.TrimSpace(text)
	}
	if sched, ok := stringArg(args, "scheduled"); ok {
		q.Scheduled = strings.TrimSpace(sched)
	}
	// A null priority means no priority filter, same as omitting it.
	if raw, present := args["priority"]; present && raw != nil {
		n, ok := priority.Parse(raw)
		if !ok {
			return priorityHint
		}
		q.Priority = &n
	}

	tasks, err := r.svc.ListTasks(ctx, q)
	if err != nil {
		return speech.FormatError(err, "getting your tasks")
	}
	return speech.CountTasks(len(tasks), !q.IsZero())
}
