package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/and161185/gas2door/internal/model"
	"github.com/and161185/gas2door/internal/session"
)

type OrphanStore interface {
	RecordOrphan(ctx context.Context, orphan model.OrphanedAddress) error
	GetUnreportedOrphans(ctx context.Context, limit int) ([]model.OrphanedAddress, error)
	MarkOrphanReported(ctx context.Context, addressID string) error
}

// Layered serves sessions from one store and the orphan log from another,
// e.g. sessions in Redis and orphans in Postgres.
type Layered struct {
	session.Store
	OrphanStore
}

// MemoryStorage is used when no database is configured. Nothing survives a restart.
type MemoryStorage struct {
	*session.MemoryStore

	mu      sync.Mutex
	orphans map[string]model.OrphanedAddress
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		MemoryStore: session.NewMemoryStore(),
		orphans:     make(map[string]model.OrphanedAddress),
	}
}

func (m *MemoryStorage) RecordOrphan(ctx context.Context, orphan model.OrphanedAddress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orphans[orphan.AddressID]; !ok {
		m.orphans[orphan.AddressID] = orphan
	}
	return nil
}

func (m *MemoryStorage) GetUnreportedOrphans(ctx context.Context, limit int) ([]model.OrphanedAddress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var list []model.OrphanedAddress
	for _, o := range m.orphans {
		if o.ReportedAt == nil {
			list = append(list, o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MemoryStorage) MarkOrphanReported(ctx context.Context, addressID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orphans[addressID]
	if !ok {
		return nil
	}
	now := time.Now()
	o.ReportedAt = &now
	m.orphans[addressID] = o
	return nil
}
