package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry keeps one Context per visitor.
type Registry struct {
	store  Store
	logger *zap.SugaredLogger

	mu       sync.Mutex
	contexts map[string]*Context
	onEvict  func(visitorID string)
}

func NewRegistry(store Store, logger *zap.SugaredLogger) *Registry {
	return &Registry{
		store:    store,
		logger:   logger,
		contexts: make(map[string]*Context),
	}
}

// OnEvict registers fn to be called for every visitor dropped by Sweep.
func (r *Registry) OnEvict(fn func(visitorID string)) {
	r.mu.Lock()
	r.onEvict = fn
	r.mu.Unlock()
}

func (r *Registry) Store() Store {
	return r.store
}

// Get returns the visitor's Context, hydrated.
func (r *Registry) Get(ctx context.Context, visitorID string) *Context {
	r.mu.Lock()
	sc, ok := r.contexts[visitorID]
	if !ok {
		sc = NewContext(visitorID, r.store, r.logger)
		r.contexts[visitorID] = sc
	}
	r.mu.Unlock()

	// errors are logged by Hydrate; the visitor simply starts anonymous
	_ = sc.Hydrate(ctx)
	return sc
}

// Sweep drops contexts idle for longer than maxIdle. Their sessions stay in
// the store and are hydrated again on the next visit.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sc := range r.contexts {
		if sc.Hydrated() && sc.idleSince().Before(cutoff) {
			delete(r.contexts, id)
			removed++
			if r.onEvict != nil {
				r.onEvict(id)
			}
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contexts)
}
