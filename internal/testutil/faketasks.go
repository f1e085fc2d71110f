// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"vtask/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int

	// ListCalls counts ListTasks invocations, so tests can assert that
	// resolution fetched a fresh snapshot.
	ListCalls int

	// Error injection for testing.
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1}
}

// AddTask appends a task and returns its ID.
func (f *FakeService) AddTask(t service.Task) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = fmt.Sprintf("task-%d", f.nextID)
		f.nextID++
	}
	f.tasks = append(f.tasks, t)
	return t.ID
}

// Get returns the stored task by ID.
func (f *FakeService) Get(id string) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Len returns the number of stored tasks.
func (f *FakeService) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, q service.Query) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, req service.CreateRequest) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	t := service.Task{
		Title:         req.Title,
		ScheduledTime: req.ScheduledTime,
		PriorityIndex: req.PriorityIndex,
		Tags:          req.Tags,
	}
	t.ID = f.AddTask(t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, p service.Patch) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if p.Title != nil {
			f.tasks[i].Title = *p.Title
		}
		if p.Completed != nil {
			f.tasks[i].Completed = *p.Completed
		}
		if p.ScheduledTime != nil {
			f.tasks[i].ScheduledTime = p.ScheduledTime
		}
		if p.PriorityIndex != nil {
			f.tasks[i].PriorityIndex = p.PriorityIndex
		}
		return f.tasks[i], nil
	}
	return service.Task{}, fmt.Errorf("task not found: %s", id)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) (service.Task, error) {
	if f.DeleteTaskErr != nil {
		return service.Task{}, f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("task not found: %s", id)
}
