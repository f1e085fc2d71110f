// Package service defines the backend-agnostic interface for task operations.
package service

import "time"

// Task represents a single task item as stored by the remote API.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Completed     bool       `json:"completed"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	PriorityIndex *int       `json:"priority_index,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at,omitempty"`
}

// CreateRequest holds the fields accepted by POST /api/tasks.
type CreateRequest struct {
	Title         string     `json:"title"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	PriorityIndex *int       `json:"priority_index,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
}

// Patch holds the fields accepted by PATCH /api/tasks/{id}.
// Nil fields are omitted from the request body and left unchanged.
type Patch struct {
	Title         *string    `json:"title,omitempty"`
	Completed     *bool      `json:"completed,omitempty"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	PriorityIndex *int       `json:"priority_index,omitempty"`
}

// Query holds the optional filters accepted by GET /api/tasks.
type Query struct {
	Text      string // free-text query
	Priority  *int   // 1-5
	Scheduled string // scheduled filter, passed through verbatim
}

// IsZero reports whether the query carries no filters.
func (q Query) IsZero() bool {
	return q.Text == "" && q.Priority == nil && q.Scheduled == ""
}
