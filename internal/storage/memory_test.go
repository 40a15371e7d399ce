package storage

import (
	"context"
	"testing"
	"time"

	"github.com/and161185/gas2door/internal/model"
	"github.com/and161185/gas2door/internal/session"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageOrphans(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, m.RecordOrphan(ctx, model.OrphanedAddress{AddressID: "b", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, m.RecordOrphan(ctx, model.OrphanedAddress{AddressID: "a", CreatedAt: base}))
	require.NoError(t, m.RecordOrphan(ctx, model.OrphanedAddress{AddressID: "a", Reason: "dup", CreatedAt: base}))

	list, err := m.GetUnreportedOrphans(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a", list[0].AddressID)
	require.Empty(t, list[0].Reason)

	require.NoError(t, m.MarkOrphanReported(ctx, "a"))
	require.NoError(t, m.MarkOrphanReported(ctx, "unknown"))

	list, err = m.GetUnreportedOrphans(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "b", list[0].AddressID)

	list, err = m.GetUnreportedOrphans(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestLayered(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	orphans := NewMemoryStorage()
	l := Layered{Store: sessions, OrphanStore: orphans}

	require.NoError(t, l.Save(ctx, "v", &model.Session{AccessToken: "tok"}))
	require.NoError(t, l.RecordOrphan(ctx, model.OrphanedAddress{AddressID: "x"}))

	s, err := sessions.Load(ctx, "v")
	require.NoError(t, err)
	require.Equal(t, "tok", s.AccessToken)

	fromOrphans, err := orphans.Load(ctx, "v")
	require.NoError(t, err)
	require.Nil(t, fromOrphans)

	list, err := orphans.GetUnreportedOrphans(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
