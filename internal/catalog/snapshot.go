package catalog

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrUnavailable = errors.New("catalog unavailable")
	ErrChanged     = errors.New("catalog changed since it was shown")
)

// Snapshots keeps the catalog each visitor was last shown. Quotes and the
// order that follows them are priced from it, so later changes to /config
// only reach a visitor when the catalog is shown again.
type Snapshots struct {
	loader *Loader

	mu    sync.Mutex
	items map[string]Config
}

func NewSnapshots(loader *Loader) *Snapshots {
	return &Snapshots{loader: loader, items: make(map[string]Config)}
}

// Refresh fetches the catalog for visitorID and keeps it as the visitor's snapshot.
func (s *Snapshots) Refresh(ctx context.Context, visitorID string) Config {
	cfg := s.loader.Load(ctx)

	s.mu.Lock()
	s.items[visitorID] = cfg
	s.mu.Unlock()

	return cfg
}

// Current returns the visitor's snapshot. A missing or degraded one is fetched again.
func (s *Snapshots) Current(ctx context.Context, visitorID string) Config {
	if cfg, ok := s.get(visitorID); ok && !cfg.Degraded {
		return cfg
	}
	return s.Refresh(ctx, visitorID)
}

// ForOrder returns the snapshot an order may be placed against. Defaults are
// never ordered from: a degraded snapshot is fetched again and the call fails
// with ErrUnavailable if the backend is still unreachable, or with ErrChanged
// if the visitor had been shown the defaults and must review the real prices.
func (s *Snapshots) ForOrder(ctx context.Context, visitorID string) (Config, error) {
	cfg, ok := s.get(visitorID)
	if ok && !cfg.Degraded {
		return cfg, nil
	}

	cfg = s.Refresh(ctx, visitorID)
	switch {
	case cfg.Degraded:
		return cfg, ErrUnavailable
	case ok:
		return cfg, ErrChanged
	}
	return cfg, nil
}

func (s *Snapshots) Forget(visitorID string) {
	s.mu.Lock()
	delete(s.items, visitorID)
	s.mu.Unlock()
}

func (s *Snapshots) get(visitorID string) (Config, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, ok := s.items[visitorID]
	return cfg, ok
}
