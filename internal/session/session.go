// Package session ties one voice conversation to the tool registry.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vtask/internal/config"
	"vtask/internal/tools"
)

// Session represents a single voice conversation. Whether the greeting has
// been played is session state, not process state: a new session always
// greets once, regardless of what other sessions did.
type Session struct {
	id       string
	cfg      *config.Config
	registry *tools.Registry
	greeted  bool
}

// New creates a session bound to the registry.
func New(cfg *config.Config, registry *tools.Registry) *Session {
	return &Session{
		id:       "ses_" + uuid.NewString(),
		cfg:      cfg,
		registry: registry,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Greeting returns the configured greeting the first time it is called and
// an empty string afterwards.
func (s *Session) Greeting() string {
	if s.greeted {
		return ""
	}
	s.greeted = true
	return s.cfg.Greeting
}

// HandleToolCall dispatches one tool invocation and returns the spoken
// reply. Commands run one at a time: each call completes before the next
// is dispatched.
func (s *Session) HandleToolCall(ctx context.Context, name string, args map[string]any) string {
	log.Debug().Str("session", s.id).Str("tool", name).Msg("dispatch")
	return s.registry.Dispatch(ctx, name, args)
}

// ParseCall parses a debug-REPL line of the form `name {json-args}` into a
// tool name and arguments. The args object may be omitted.
func ParseCall(line string) (string, map[string]any, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, fmt.Errorf("empty command")
	}
	name, rest, _ := strings.Cut(line, " ")
	args := map[string]any{}
	if rest = strings.TrimSpace(rest); rest != "" {
		if err := json.Unmarshal([]byte(rest), &args); err != nil {
			return "", nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	return name, args, nil
}
