// Package pipeline sequences the extract/load/view/export steps of a run:
// named steps, per-step state, structured progress logging and duration
// metrics.
package pipeline

import (
	"context"
	"sync"
	"time"
)

// Step is one unit of pipeline work.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() string
	// Name returns the human-readable name for this step.
	Name() string
	// Run executes the step.
	Run(ctx context.Context, state *State) error
}

type funcStep struct {
	id   string
	name string
	fn   func(ctx context.Context, state *State) error
}

func (s funcStep) ID() string   { return s.id }
func (s funcStep) Name() string { return s.name }
func (s funcStep) Run(ctx context.Context, state *State) error {
	return s.fn(ctx, state)
}

// NewStep wraps a function as a Step.
func NewStep(id, name string, fn func(ctx context.Context, state *State) error) Step {
	return funcStep{id: id, name: name, fn: fn}
}

// Status is the lifecycle state of a step.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// StepState is the runtime state of one step within a run.
type StepState struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    Status     `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Error     string     `json:"error,omitempty"`
}

func (s *StepState) start() {
	now := time.Now()
	s.StartTime = &now
	s.Status = StatusActive
}

func (s *StepState) complete() {
	now := time.Now()
	s.EndTime = &now
	s.Status = StatusCompleted
}

func (s *StepState) fail(err error) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StatusFailed
	s.Error = err.Error()
}

// State is the shared state of one pipeline run. Steps exchange artifacts
// through the value bag keyed by well-known names.
type State struct {
	RunID string

	mu     sync.RWMutex
	values map[string]any
	steps  []*StepState
}

// Set stores an artifact under key.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get retrieves an artifact by key.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Steps returns a copy of the per-step states in execution order.
func (s *State) Steps() []StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StepState, len(s.steps))
	for i, st := range s.steps {
		out[i] = *st
	}
	return out
}
