package tools

import (
	"context"
	"strings"
	"unicode/utf8"

	"vtask/internal/dateparse"
	"vtask/internal/priority"
	"vtask/internal/service"
	"vtask/internal/speech"
)

// maxTitleLen mirrors the upstream API's title limit, in characters.
const maxTitleLen = 500

const priorityHint = "I didn't recognize that priority. Try low, normal, high, urgent, or critical."

func createTaskDef(r *Registry) *Definition {
	return &Definition{
		Name:        "create_task",
		Description: "Create a new task. Optionally schedule it and set a priority.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "The task title",
				},
				"scheduled_time": map[string]any{
					"type":        "string",
					"description": "When the task is due, e.g. tomorrow, next Friday, 2024-06-01",
				},
				"priority": map[string]any{
					"type":        "string",
					"description": "Priority as a word (low, normal, high, urgent, critical) or number 1-5",
				},
				"tags": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Optional tags",
				},
			},
			"required": []string{"title"},
		},
		Handler: r.createTask,
	}
}

func (r *Registry) createTask(ctx context.Context, args map[string]any) string {
	title, _ := stringArg(args, "title")
	title = strings.TrimSpace(title)
	if title == "" {
		return "A task needs a title. What should I call it?"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "That title is too long. Could you give me a shorter one?"
	}

	now := r.now()
	req := service.CreateRequest{Title: title, Tags: stringSliceArg(args, "tags")}

	var spokenDate string
	if phrase, ok := stringArg(args, "scheduled_time"); ok && strings.TrimSpace(phrase) != "" {
		when, err := dateparse.Parse(phrase, now)
		if err != nil {
			// Date errors are already complete speakable sentences.
			return err.Error()
		}
		req.ScheduledTime = &when
		spokenDate = dateparse.FormatForSpeech(when, now)
	}

	// An explicit null priority means the speaker said nothing about
	// priority, same as omitting the field.
	pri := 1
	if raw, present := args["priority"]; present && raw != nil {
		n, ok := priority.Parse(raw)
		if !ok {
			return priorityHint
		}
		pri = n
	}
	req.PriorityIndex = &pri

	if _, err := r.svc.CreateTask(ctx, req); err != nil {
		return speech.FormatError(err, "creating your task")
	}
	if spokenDate != "" {
		return "Task created for " + spokenDate + "."
	}
	return "Task created."
}
