// Package http serves the analysis views over a JSON API.
package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"soclens/internal/analytics"
	"soclens/internal/infrastructure"
	"soclens/pkg/contracts/domain"
)

// SnapshotSource loads the curated datasets. The store satisfies this; tests
// substitute an in-memory source.
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context) (domain.Snapshot, error)
}

// SnapshotSourceFunc adapts a function to a SnapshotSource.
type SnapshotSourceFunc func(ctx context.Context) (domain.Snapshot, error)

func (f SnapshotSourceFunc) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	return f(ctx)
}

// ViewService evaluates registered views against a cached snapshot. The
// snapshot is loaded lazily on first use and refreshed on demand; requests
// never see a half-loaded dataset.
type ViewService struct {
	source   SnapshotSource
	registry *analytics.Registry
	defaults analytics.JoinParams

	mu     sync.RWMutex
	snap   domain.Snapshot
	loaded bool
}

// NewViewService creates a view service over the given source.
func NewViewService(source SnapshotSource, registry *analytics.Registry, defaults analytics.JoinParams) *ViewService {
	if registry == nil {
		registry = analytics.NewRegistry()
	}
	return &ViewService{source: source, registry: registry, defaults: defaults}
}

// Names returns the available view names.
func (s *ViewService) Names() []string {
	return s.registry.Names()
}

// Defaults returns the default join parameters.
func (s *ViewService) Defaults() analytics.JoinParams {
	return s.defaults
}

// Reload replaces the cached snapshot from the source.
func (s *ViewService) Reload(ctx context.Context) (int, int, error) {
	snap, err := s.source.LoadSnapshot(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load snapshot: %w", err)
	}
	s.mu.Lock()
	s.snap = snap
	s.loaded = true
	s.mu.Unlock()
	return len(snap.Occupations), len(snap.Skills), nil
}

// Evaluate runs the named view with the given parameters, loading the
// snapshot first if needed.
func (s *ViewService) Evaluate(ctx context.Context, name string, params analytics.JoinParams) (analytics.ResultSet, error) {
	s.mu.RLock()
	snap, loaded := s.snap, s.loaded
	s.mu.RUnlock()

	if !loaded {
		if _, _, err := s.Reload(ctx); err != nil {
			return analytics.ResultSet{}, err
		}
		s.mu.RLock()
		snap = s.snap
		s.mu.RUnlock()
	}

	started := time.Now()
	rs, err := s.registry.Evaluate(name, snap, params)
	if err != nil {
		return analytics.ResultSet{}, err
	}
	infrastructure.ViewEvalDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())
	return rs, nil
}
