// Package config holds the assistant configuration.
//
// Every recognized option is a named, typed field; there is no open-ended
// options bag. Values come from the environment with flag overrides applied
// in main.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultAPIBaseURL is the task API endpoint used when TASK_API_URL
	// is unset.
	DefaultAPIBaseURL = "http://localhost:3000"

	// DefaultAPITimeout bounds each individual API attempt.
	DefaultAPITimeout = 8 * time.Second

	// DefaultMaxRetries is how many times a failed API attempt is retried.
	DefaultMaxRetries = 2

	// DefaultHealthAddr is the bind address for the health endpoint.
	DefaultHealthAddr = ":8090"

	// DefaultReminderSpec runs the due-task sweep once a minute.
	DefaultReminderSpec = "* * * * *"

	// DefaultGreeting is spoken once when a session starts.
	DefaultGreeting = "Hi! I can create, update, and manage your tasks. What would you like to do?"
)

// Config holds all assistant settings.
type Config struct {
	// APIBaseURL is the base URL of the remote task API.
	APIBaseURL string

	// APITimeout bounds each individual API attempt.
	APITimeout time.Duration

	// MaxRetries is how many times a failed API attempt is retried.
	MaxRetries int

	// HealthAddr is the bind address for the health HTTP surface.
	// Empty disables it.
	HealthAddr string

	// ReminderSpec is the cron expression for the due-task sweep.
	// Empty disables reminders.
	ReminderSpec string

	// ReminderWindow is how far ahead the sweep looks for due tasks.
	ReminderWindow time.Duration

	// Greeting is spoken once per session.
	Greeting string

	// Debug enables debug logging.
	Debug bool
}

// New returns a Config populated from the environment, with defaults for
// anything unset.
func New() (*Config, error) {
	cfg := &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		APITimeout:     DefaultAPITimeout,
		MaxRetries:     DefaultMaxRetries,
		HealthAddr:     DefaultHealthAddr,
		ReminderSpec:   DefaultReminderSpec,
		ReminderWindow: 5 * time.Minute,
		Greeting:       DefaultGreeting,
	}

	if v := os.Getenv("TASK_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("TASK_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TASK_API_TIMEOUT: %w", err)
		}
		cfg.APITimeout = d
	}
	if v := os.Getenv("TASK_API_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid TASK_API_RETRIES: %q", v)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv("HEALTH_ADDR"); v != "" {
		cfg.HealthAddr = v
	}
	if v := os.Getenv("REMINDER_SPEC"); v != "" {
		cfg.ReminderSpec = v
	}
	if v := os.Getenv("GREETING"); v != "" {
		cfg.Greeting = v
	}
	if os.Getenv("DEBUG") != "" {
		cfg.Debug = true
	}

	return cfg, nil
}
