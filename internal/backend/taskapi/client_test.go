package taskapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"vtask/internal/apierr"
	"vtask/internal/retry"
	"vtask/internal/service"
)

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
		Timeout:      2 * time.Second,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL, srv.Client(), fastPolicy())
}

func TestListTasks_QueryParams(t *testing.T) {
	var gotURL string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		json.NewEncoder(w).Encode([]service.Task{{ID: "1", Title: "Buy milk"}})
	})

	pri := 3
	tasks, err := c.ListTasks(context.Background(), service.Query{Text: "milk", Priority: &pri, Scheduled: "today"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("tasks = %+v", tasks)
	}
	want := "/api/tasks?priority=3&query=milk&scheduled=today"
	if gotURL != want {
		t.Errorf("url = %q, want %q", gotURL, want)
	}
}

func TestCreateTask_PostsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/tasks" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		var req service.CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if req.Title != "Buy milk" {
			t.Errorf("title = %q", req.Title)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(service.Task{ID: "9", Title: req.Title})
	})

	task, err := c.CreateTask(context.Background(), service.CreateRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "9" {
		t.Errorf("id = %q", task.ID)
	}
}

func TestUpdateTask_PatchPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/tasks/abc" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(service.Task{ID: "abc", Completed: true})
	})

	done := true
	task, err := c.UpdateTask(context.Background(), "abc", service.Patch{Completed: &done})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.Completed {
		t.Error("expected completed task back")
	}
}

func TestDeleteTask_Path(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/tasks/abc" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(service.Task{ID: "abc"})
	})

	if _, err := c.DeleteTask(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_ClassifiesStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		kind   apierr.Kind
	}{
		{404, apierr.KindClient},
		{400, apierr.KindClient},
		{500, apierr.KindServer},
		{503, apierr.KindServer},
	}
	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		})
		_, err := c.ListTasks(context.Background(), service.Query{})
		if err == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		if apierr.KindOf(err) != tt.kind {
			t.Errorf("status %d: kind = %v, want %v", tt.status, apierr.KindOf(err), tt.kind)
		}
		if apierr.StatusOf(err) != tt.status {
			t.Errorf("status %d: embedded status = %d", tt.status, apierr.StatusOf(err))
		}
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]service.Task{})
	})

	_, err := c.ListTasks(context.Background(), service.Query{})
	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := c.ListTasks(context.Background(), service.Query{})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClient_TimeoutMidBodyIsTimeoutKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Headers and half the body arrive, then the stream stalls past
		// the per-attempt deadline.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"id":"t1","title":`))
		w.(http.Flusher).Flush()
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	p := fastPolicy()
	p.MaxRetries = 0
	p.Timeout = 50 * time.Millisecond
	c := NewWithHTTPClient(srv.URL, srv.Client(), p)
	_, err := c.ListTasks(context.Background(), service.Query{})
	if err == nil {
		t.Fatal("expected error")
	}
	if apierr.KindOf(err) != apierr.KindTimeout {
		t.Errorf("kind = %v, want timeout", apierr.KindOf(err))
	}
}

func TestClient_NetworkErrorKind(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // connection now refused

	p := fastPolicy()
	p.MaxRetries = 0
	c := NewWithHTTPClient(url, &http.Client{}, p)
	_, err := c.ListTasks(context.Background(), service.Query{})
	if err == nil {
		t.Fatal("expected error")
	}
	if apierr.KindOf(err) != apierr.KindNetwork {
		t.Errorf("kind = %v, want network", apierr.KindOf(err))
	}
}
