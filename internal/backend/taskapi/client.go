// Package taskapi implements the service.Service interface against the
// remote task REST API.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"vtask/internal/apierr"
	"vtask/internal/config"
	"vtask/internal/retry"
	"vtask/internal/service"
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	policy  retry.Policy
}

// New creates a client for the configured API base URL. Every request runs
// under the retry policy with the configured per-attempt timeout and retry
// count.
func New(cfg *config.Config) *Client {
	policy := retry.DefaultPolicy()
	if cfg.APITimeout > 0 {
		policy.Timeout = cfg.APITimeout
	}
	// Zero is a valid retry count, so no guard here.
	policy.MaxRetries = cfg.MaxRetries
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    &http.Client{},
		policy:  policy,
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client and retry
// policy (for testing).
func NewWithHTTPClient(baseURL string, hc *http.Client, policy retry.Policy) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		policy:  policy,
	}
}

// ListTasks returns tasks matching the query, in API order.
func (c *Client) ListTasks(ctx context.Context, q service.Query) ([]service.Task, error) {
	path := "/api/tasks"
	if params := queryParams(q); params != "" {
		path += "?" + params
	}
	return retry.Do(ctx, c.policy, "list tasks", func(ctx context.Context) ([]service.Task, error) {
		var tasks []service.Task
		if err := c.roundTrip(ctx, "list tasks", http.MethodGet, path, nil, &tasks); err != nil {
			return nil, err
		}
		return tasks, nil
	})
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, req service.CreateRequest) (service.Task, error) {
	return retry.Do(ctx, c.policy, "create task", func(ctx context.Context) (service.Task, error) {
		var t service.Task
		err := c.roundTrip(ctx, "create task", http.MethodPost, "/api/tasks", req, &t)
		return t, err
	})
}

// UpdateTask applies a partial update.
func (c *Client) UpdateTask(ctx context.Context, id string, p service.Patch) (service.Task, error) {
	path := "/api/tasks/" + url.PathEscape(id)
	return retry.Do(ctx, c.policy, "update task", func(ctx context.Context) (service.Task, error) {
		var t service.Task
		err := c.roundTrip(ctx, "update task", http.MethodPatch, path, p, &t)
		return t, err
	})
}

// DeleteTask deletes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id string) (service.Task, error) {
	path := "/api/tasks/" + url.PathEscape(id)
	return retry.Do(ctx, c.policy, "delete task", func(ctx context.Context) (service.Task, error) {
		var t service.Task
		err := c.roundTrip(ctx, "delete task", http.MethodDelete, path, nil, &t)
		return t, err
	})
}

// roundTrip performs a single HTTP exchange and classifies any failure into
// the structured error taxonomy. Classification happens here and nowhere
// else.
func (c *Client) roundTrip(ctx context.Context, op, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apierr.New(apierr.KindUnknown, op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apierr.New(apierr.KindUnknown, op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return apierr.New(apierr.KindTimeout, op, err)
		}
		return apierr.New(apierr.KindNetwork, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		log.Debug().Str("op", op).Int("status", resp.StatusCode).Msg("api error")
		return apierr.FromStatus(op, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// The deadline can fire mid-body just as it can mid-request.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return apierr.New(apierr.KindTimeout, op, err)
		}
		return apierr.New(apierr.KindUnknown, op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func queryParams(q service.Query) string {
	v := url.Values{}
	if q.Text != "" {
		v.Set("query", q.Text)
	}
	if q.Priority != nil {
		v.Set("priority", strconv.Itoa(*q.Priority))
	}
	if q.Scheduled != "" {
		v.Set("scheduled", q.Scheduled)
	}
	return v.Encode()
}
