package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/and161185/gas2door/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type countingStore struct {
	*MemoryStore
	mu      sync.Mutex
	loads   int
	loadErr error
	saveErr error
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: NewMemoryStore()}
}

func (s *countingStore) Load(ctx context.Context, key string) (*model.Session, error) {
	s.mu.Lock()
	s.loads++
	err := s.loadErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.MemoryStore.Load(ctx, key)
}

func (s *countingStore) Save(ctx context.Context, key string, sess *model.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.MemoryStore.Save(ctx, key, sess)
}

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec("secret")
	require.NoError(t, err)

	in := &model.Session{AccessToken: "tok", User: &model.User{ID: "u1", IsGuest: true}, LastSeen: time.Unix(100, 0).UTC()}
	sealed, err := codec.Encode(in)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "tok")

	out, err := codec.Decode(sealed)
	require.NoError(t, err)
	require.Equal(t, in, out)

	sealed[len(sealed)-1] ^= 0xff
	_, err = codec.Decode(sealed)
	require.ErrorIs(t, err, ErrCorruptSession)

	other, err := NewCodec("another")
	require.NoError(t, err)
	sealed, _ = codec.Encode(in)
	_, err = other.Decode(sealed)
	require.ErrorIs(t, err, ErrCorruptSession)

	_, err = codec.Decode([]byte("short"))
	require.ErrorIs(t, err, ErrCorruptSession)

	_, err = NewCodec("")
	require.Error(t, err)
}

func TestHydrateReadsStoreOnce(t *testing.T) {
	store := newCountingStore()
	require.NoError(t, store.MemoryStore.Save(context.Background(), "v1", &model.Session{AccessToken: "tok"}))

	sc := NewContext("v1", store, zaptest.NewLogger(t).Sugar())
	require.False(t, sc.Hydrated())
	require.Nil(t, sc.Get())

	require.NoError(t, sc.Hydrate(context.Background()))
	require.NoError(t, sc.Hydrate(context.Background()))

	require.True(t, sc.Hydrated())
	require.Equal(t, 1, store.loads)
	require.Equal(t, "tok", sc.Get().AccessToken)

	select {
	case <-sc.Ready():
	default:
		t.Fatal("ready channel not closed after hydration")
	}
}

func TestHydrateLoadErrorLeavesAnonymous(t *testing.T) {
	store := newCountingStore()
	store.loadErr = ErrCorruptSession

	sc := NewContext("v1", store, zaptest.NewLogger(t).Sugar())
	err := sc.Hydrate(context.Background())

	require.ErrorIs(t, err, ErrCorruptSession)
	require.True(t, sc.Hydrated())
	require.Nil(t, sc.Get())
}

func TestSetPersistsAndNotifies(t *testing.T) {
	store := newCountingStore()
	sc := NewContext("v1", store, zaptest.NewLogger(t).Sugar())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sc.now = func() time.Time { return now }

	var seen []*model.Session
	cancel := sc.Subscribe(func(s *model.Session) { seen = append(seen, s) })

	require.NoError(t, sc.Set(context.Background(), &model.Session{AccessToken: "tok"}))

	got := sc.Get()
	require.Equal(t, "tok", got.AccessToken)
	require.Equal(t, now, got.LastSeen)

	stored, err := store.MemoryStore.Load(context.Background(), "v1")
	require.NoError(t, err)
	require.Equal(t, now, stored.LastSeen)

	require.NoError(t, sc.Logout(context.Background()))
	require.Nil(t, sc.Get())
	stored, err = store.MemoryStore.Load(context.Background(), "v1")
	require.NoError(t, err)
	require.Nil(t, stored)

	require.Len(t, seen, 2)
	require.Equal(t, "tok", seen[0].AccessToken)
	require.Nil(t, seen[1])

	cancel()
	require.NoError(t, sc.Set(context.Background(), &model.Session{AccessToken: "again"}))
	require.Len(t, seen, 2)
}

func TestSetFailureKeepsState(t *testing.T) {
	store := newCountingStore()
	sc := NewContext("v1", store, zaptest.NewLogger(t).Sugar())
	require.NoError(t, sc.Set(context.Background(), &model.Session{AccessToken: "first"}))

	store.saveErr = errors.New("disk full")
	err := sc.Set(context.Background(), &model.Session{AccessToken: "second"})

	require.Error(t, err)
	require.Equal(t, "first", sc.Get().AccessToken)
}

func TestSetBeforeHydrateIsNotOverwritten(t *testing.T) {
	store := newCountingStore()
	require.NoError(t, store.MemoryStore.Save(context.Background(), "v1", &model.Session{AccessToken: "old"}))

	sc := NewContext("v1", store, zaptest.NewLogger(t).Sugar())
	require.NoError(t, sc.Set(context.Background(), &model.Session{AccessToken: "new"}))
	require.NoError(t, sc.Hydrate(context.Background()))

	require.Equal(t, "new", sc.Get().AccessToken)
}

func TestGateWaitsForHydration(t *testing.T) {
	store := newCountingStore()
	sc := NewContext("v1", store, zaptest.NewLogger(t).Sugar())

	for _, need := range []Requirement{RequireNone, RequireSession, RequireAnonymous, RequireGuest} {
		require.Equal(t, Pending, Gate(sc, need), string(need))
	}
	require.Empty(t, Pending.Location())

	require.NoError(t, sc.Hydrate(context.Background()))
	require.Equal(t, RedirectLogin, Gate(sc, RequireSession))
	require.Equal(t, "/login", RedirectLogin.Location())
	require.Equal(t, Allow, Gate(sc, RequireAnonymous))
	require.Equal(t, RedirectLogin, Gate(sc, RequireGuest))
}

func TestGateDecisions(t *testing.T) {
	tests := []struct {
		name    string
		session *model.Session
		need    Requirement
		want    Decision
	}{
		{"customer on protected page", &model.Session{AccessToken: "t"}, RequireSession, Allow},
		{"customer on login page", &model.Session{AccessToken: "t"}, RequireAnonymous, RedirectDashboard},
		{"customer on upgrade page", &model.Session{AccessToken: "t"}, RequireGuest, RedirectDashboard},
		{"guest on upgrade page", &model.Session{AccessToken: "t", User: &model.User{IsGuest: true}}, RequireGuest, Allow},
		{"anyone on public page", nil, RequireNone, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.session != nil {
				require.NoError(t, store.Save(context.Background(), "v", tt.session))
			}
			sc := NewContext("v", store, zaptest.NewLogger(t).Sugar())
			require.NoError(t, sc.Hydrate(context.Background()))

			require.Equal(t, tt.want, Gate(sc, tt.need))
		})
	}
}

func TestRegistry(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "v1", &model.Session{AccessToken: "tok"}))
	reg := NewRegistry(store, zaptest.NewLogger(t).Sugar())

	a := reg.Get(context.Background(), "v1")
	b := reg.Get(context.Background(), "v1")
	c := reg.Get(context.Background(), "v2")

	require.Same(t, a, b)
	require.NotSame(t, a, c)
	require.True(t, a.Hydrated())
	require.Equal(t, "tok", a.Get().AccessToken)
	require.Nil(t, c.Get())
	require.Equal(t, 2, reg.Len())

	var evicted []string
	reg.OnEvict(func(id string) { evicted = append(evicted, id) })

	require.Equal(t, 0, reg.Sweep(time.Hour))
	require.Equal(t, 2, reg.Sweep(-time.Second))
	require.ElementsMatch(t, []string{"v1", "v2"}, evicted)
	require.Equal(t, 0, reg.Len())

	require.Equal(t, "tok", reg.Get(context.Background(), "v1").Get().AccessToken)
}
