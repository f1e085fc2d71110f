// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All remote API calls go through this interface.
// Tools never build HTTP requests directly.
type Service interface {
	// ListTasks returns tasks matching the query, in API order.
	// API order defines the meaning of positional references, so callers
	// that resolve by position must fetch immediately before resolving.
	ListTasks(ctx context.Context, q Query) ([]Task, error)

	// CreateTask creates a new task and returns it as stored.
	CreateTask(ctx context.Context, req CreateRequest) (Task, error)

	// UpdateTask applies a partial update to a task by ID.
	UpdateTask(ctx context.Context, id string, p Patch) (Task, error)

	// DeleteTask deletes a task by ID and returns the deleted task.
	DeleteTask(ctx context.Context, id string) (Task, error)
}
