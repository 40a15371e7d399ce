package places

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/and161185/gas2door/internal/errs"
	"github.com/and161185/gas2door/internal/model"
	"go.uber.org/zap"
)

const (
	MinQueryLength  = 3
	DefaultDebounce = 400 * time.Millisecond
)

// ErrStale means a newer query was issued while this one was waiting or in
// flight. Its result must not be shown.
var ErrStale = errors.New("superseded by a newer query")

type Backend interface {
	Autocomplete(ctx context.Context, token, input string) ([]model.PlacePrediction, error)
	PlaceDetails(ctx context.Context, token, placeID string) (model.ResolvedPlace, error)
}

// Sequencer hands out increasing tickets. Only the holder of the newest
// ticket is current.
type Sequencer struct {
	last atomic.Uint64
}

func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

func (s *Sequencer) Current() uint64 {
	return s.last.Load()
}

func (s *Sequencer) IsLatest(ticket uint64) bool {
	return s.last.Load() == ticket
}

// Autocompleter serves the search-as-you-type box of one visitor.
type Autocompleter struct {
	backend  Backend
	debounce time.Duration
	logger   *zap.SugaredLogger
	seq      Sequencer

	mu           sync.Mutex
	latest       []model.PlacePrediction
	latestTicket uint64
}

func NewAutocompleter(backend Backend, debounce time.Duration, logger *zap.SugaredLogger) *Autocompleter {
	return &Autocompleter{backend: backend, debounce: debounce, logger: logger}
}

// Search waits for the quiet period and asks the backend for predictions.
// Queries shorter than MinQueryLength clear the list without a backend call.
func (a *Autocompleter) Search(ctx context.Context, token, query string) ([]model.PlacePrediction, error) {
	ticket := a.seq.Next()

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		a.publish(ticket, nil)
		return nil, nil
	}

	if a.debounce > 0 {
		timer := time.NewTimer(a.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if !a.seq.IsLatest(ticket) {
		return nil, ErrStale
	}

	predictions, err := a.backend.Autocomplete(ctx, token, query)
	if !a.seq.IsLatest(ticket) {
		a.logger.Debugf("dropping autocomplete result for %q", query)
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}

	a.publish(ticket, predictions)
	return predictions, nil
}

// Latest is the result of the newest query that completed.
func (a *Autocompleter) Latest() []model.PlacePrediction {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]model.PlacePrediction, len(a.latest))
	copy(out, a.latest)
	return out
}

func (a *Autocompleter) Details(ctx context.Context, token, placeID string) (model.ResolvedPlace, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return model.ResolvedPlace{}, errs.Validation("placeId", "Choose an address from the list.")
	}
	return a.backend.PlaceDetails(ctx, token, placeID)
}

func (a *Autocompleter) publish(ticket uint64, predictions []model.PlacePrediction) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ticket < a.latestTicket {
		return
	}
	a.latestTicket = ticket
	a.latest = predictions
}

// Registry keeps one Autocompleter per visitor so that tabs of different
// visitors never supersede each other.
type Registry struct {
	backend  Backend
	debounce time.Duration
	logger   *zap.SugaredLogger

	mu    sync.Mutex
	items map[string]*Autocompleter
}

func NewRegistry(backend Backend, debounce time.Duration, logger *zap.SugaredLogger) *Registry {
	return &Registry{
		backend:  backend,
		debounce: debounce,
		logger:   logger,
		items:    make(map[string]*Autocompleter),
	}
}

func (r *Registry) For(visitorID string) *Autocompleter {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[visitorID]
	if !ok {
		a = NewAutocompleter(r.backend, r.debounce, r.logger)
		r.items[visitorID] = a
	}
	return a
}

func (r *Registry) Forget(visitorID string) {
	r.mu.Lock()
	delete(r.items, visitorID)
	r.mu.Unlock()
}
