// Package tools implements the voice-callable task operations.
//
// Every tool returns a short speakable string, never structured data and
// never an error: the caller is a speech channel and the session must stay
// alive after any single command fails.
package tools

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"vtask/internal/service"
)

// Handler executes a tool with the model-supplied arguments and returns the
// spoken reply.
type Handler func(ctx context.Context, args map[string]any) string

// Definition describes a tool as exposed to the language-model runtime.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]any
	Handler     Handler `json:"-"`
}

// Registry holds the callable tools bound to a task backend.
type Registry struct {
	svc   service.Service
	now   func() time.Time
	tools map[string]*Definition
	order []string
}

// NewRegistry creates a registry with the four task tools registered.
// now supplies the reference instant for date resolution; pass time.Now
// outside of tests.
func NewRegistry(svc service.Service, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	r := &Registry{
		svc:   svc,
		now:   now,
		tools: make(map[string]*Definition),
	}
	r.register(createTaskDef(r))
	r.register(getTasksDef(r))
	r.register(updateTaskDef(r))
	r.register(deleteTaskDef(r))
	return r
}

func (r *Registry) register(d *Definition) {
	r.tools[d.Name] = d
	r.order = append(r.order, d.Name)
}

// Definitions returns the tool definitions in registration order, for
// handing to the model runtime.
func (r *Registry) Definitions() []*Definition {
	defs := make([]*Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name])
	}
	return defs
}

// Dispatch runs the named tool. Unknown names produce a speakable reply
// like everything else.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) string {
	d, ok := r.tools[name]
	if !ok {
		log.Warn().Str("tool", name).Msg("unknown tool")
		return "I don't know how to do that."
	}
	start := time.Now()
	reply := d.Handler(ctx, args)
	log.Info().Str("tool", name).Dur("took", time.Since(start)).Msg("tool call")
	return reply
}

// stringArg returns the named argument as a string; ok is false when the
// argument is absent or not a string.
func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func boolArg(args map[string]any, key string) (bool, bool) {
	v, ok := args[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func stringSliceArg(args map[string]any, key string) []string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
