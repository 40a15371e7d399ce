package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/and161185/gas2door/internal/model"
	"go.uber.org/zap"
)

// Context is the single owner of a visitor's session. Sessions handed out by
// Get are shared and must not be modified; replace them with Set.
type Context struct {
	key    string
	store  Store
	logger *zap.SugaredLogger
	now    func() time.Time

	once  sync.Once
	ready chan struct{}

	mu       sync.RWMutex
	session  *model.Session
	hydrated bool
	lastUsed time.Time

	subMu   sync.Mutex
	subs    map[int]func(*model.Session)
	nextSub int
}

func NewContext(key string, store Store, logger *zap.SugaredLogger) *Context {
	return &Context{
		key:    key,
		store:  store,
		logger: logger,
		now:    time.Now,
		ready:  make(chan struct{}),
		subs:   make(map[int]func(*model.Session)),
	}
}

func (c *Context) Key() string {
	return c.key
}

// Hydrate reads the store the first time it is called and does nothing after.
// A load failure leaves the visitor anonymous but still hydrated.
func (c *Context) Hydrate(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		var s *model.Session
		s, err = c.store.Load(ctx, c.key)
		if err != nil {
			c.logger.Warnf("hydrate session %s: %v", c.key, err)
			s = nil
		}

		c.mu.Lock()
		c.session = s
		c.hydrated = true
		c.lastUsed = c.now()
		c.mu.Unlock()

		close(c.ready)
	})
	return err
}

func (c *Context) Hydrated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hydrated
}

// Ready is closed once the persisted session has been read.
func (c *Context) Ready() <-chan struct{} {
	return c.ready
}

func (c *Context) Get() *model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastUsed = c.now()
	return c.session
}

// Set replaces the session. nil clears the store, anything else is saved with
// a fresh LastSeen. The in-memory state only changes once the store accepted
// the write; concurrent calls are serialised and the last one wins.
func (c *Context) Set(ctx context.Context, s *model.Session) error {
	// a write before the first read must not be clobbered by a later hydration
	_ = c.Hydrate(ctx)

	c.mu.Lock()
	var next *model.Session
	if s == nil {
		if err := c.store.Clear(ctx, c.key); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("clear session: %w", err)
		}
	} else {
		stamped := *s
		stamped.LastSeen = c.now()
		if err := c.store.Save(ctx, c.key, &stamped); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("save session: %w", err)
		}
		next = &stamped
	}
	c.session = next
	c.lastUsed = c.now()
	c.mu.Unlock()

	c.notify(next)
	return nil
}

func (c *Context) Logout(ctx context.Context) error {
	return c.Set(ctx, nil)
}

// Subscribe registers fn to be called after every change. The returned func
// removes it.
func (c *Context) Subscribe(fn func(*model.Session)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Context) notify(s *model.Session) {
	c.subMu.Lock()
	fns := make([]func(*model.Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func (c *Context) idleSince() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUsed
}
