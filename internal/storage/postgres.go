package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/and161185/gas2door/internal/model"
	"github.com/and161185/gas2door/internal/session"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage keeps sealed visitor sessions and the orphaned address log.
type PostgresStorage struct {
	db    *pgxpool.Pool
	codec *session.Codec
}

func (store *PostgresStorage) initSchema(ctx context.Context) error {
	const initSchemaQuery = `
	CREATE TABLE IF NOT EXISTS sessions (
		visitor_id TEXT PRIMARY KEY,
		sealed BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS orphaned_addresses (
		address_id TEXT PRIMARY KEY,
		visitor_id TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		reported_at TIMESTAMPTZ
	);`

	_, err := store.db.Exec(ctx, initSchemaQuery)
	return err
}

func NewPostgreStorage(ctx context.Context, DatabaseURI string, codec *session.Codec) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, DatabaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db, codec: codec}

	if err := storage.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := storage.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

func (store *PostgresStorage) Close() {
	store.db.Close()
}

func (store *PostgresStorage) Load(ctx context.Context, visitorID string) (*model.Session, error) {
	const query = `SELECT sealed FROM sessions WHERE visitor_id = $1`

	var sealed []byte
	err := store.db.QueryRow(ctx, query, visitorID).Scan(&sealed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return store.codec.Decode(sealed)
}

func (store *PostgresStorage) Save(ctx context.Context, visitorID string, sess *model.Session) error {
	const query = `
		INSERT INTO sessions (visitor_id, sealed, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (visitor_id) DO UPDATE SET sealed = EXCLUDED.sealed, updated_at = NOW()`

	sealed, err := store.codec.Encode(sess)
	if err != nil {
		return err
	}

	if _, err := store.db.Exec(ctx, query, visitorID, sealed); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (store *PostgresStorage) Clear(ctx context.Context, visitorID string) error {
	const query = `DELETE FROM sessions WHERE visitor_id = $1`

	if _, err := store.db.Exec(ctx, query, visitorID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// DeleteStaleSessions removes sessions not written for longer than maxAge.
func (store *PostgresStorage) DeleteStaleSessions(ctx context.Context, maxAge time.Duration) (int64, error) {
	const query = `DELETE FROM sessions WHERE updated_at < $1`

	tag, err := store.db.Exec(ctx, query, time.Now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (store *PostgresStorage) RecordOrphan(ctx context.Context, orphan model.OrphanedAddress) error {
	const query = `
		INSERT INTO orphaned_addresses (address_id, visitor_id, reason, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (address_id) DO NOTHING`

	_, err := store.db.Exec(ctx, query, orphan.AddressID, orphan.VisitorID, orphan.Reason, orphan.CreatedAt)
	if err != nil {
		return fmt.Errorf("record orphan: %w", err)
	}
	return nil
}

func (store *PostgresStorage) GetUnreportedOrphans(ctx context.Context, limit int) ([]model.OrphanedAddress, error) {
	const query = `
		SELECT address_id, visitor_id, reason, created_at
		FROM orphaned_addresses
		WHERE reported_at IS NULL
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := store.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get unreported orphans: %w", err)
	}
	defer rows.Close()

	var list []model.OrphanedAddress
	for rows.Next() {
		var o model.OrphanedAddress
		err := rows.Scan(&o.AddressID, &o.VisitorID, &o.Reason, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan orphan: %w", err)
		}
		list = append(list, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return list, nil
}

func (store *PostgresStorage) MarkOrphanReported(ctx context.Context, addressID string) error {
	const query = `
		UPDATE orphaned_addresses
		SET reported_at = NOW()
		WHERE address_id = $1`

	if _, err := store.db.Exec(ctx, query, addressID); err != nil {
		return fmt.Errorf("mark orphan reported: %w", err)
	}
	return nil
}
