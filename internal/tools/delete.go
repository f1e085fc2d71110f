package tools

import (
	"context"
	"strings"

	"vtask/internal/resolve"
	"vtask/internal/speech"
)

func deleteTaskDef(r *Registry) *Definition {
	return &Definition{
		Name:        "delete_task",
		Description: "Delete a task.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"identifier": map[string]any{
					"type":        "string",
					"description": "Which task: a number, an ordinal like 2nd, or part of the title",
				},
			},
			"required": []string{"identifier"},
		},
		Handler: r.deleteTask,
	}
}

func (r *Registry) deleteTask(ctx context.Context, args map[string]any) string {
	identifier, _ := stringArg(args, "identifier")
	if strings.TrimSpace(identifier) == "" {
		return "Which task would you like to delete? Say its number or part of its title."
	}

	task, err := resolve.Resolve(ctx, r.svc, identifier)
	if err != nil {
		return resolutionReply(err, "finding your task")
	}

	if _, err := r.svc.DeleteTask(ctx, task.ID); err != nil {
		return speech.FormatError(err, "deleting your task")
	}
	return "Deleted."
}
