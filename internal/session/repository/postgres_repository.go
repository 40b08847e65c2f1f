package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq" // Untuk QuoteIdentifier nama tabel yang bisa dikonfigurasi
	"github.com/ridloal/storefront/internal/platform/logger"
)

// DBTX adalah interface yang bisa berupa *sql.DB atau *sql.Tx
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type postgresStateStore struct {
	db    DBTX
	table string // sudah di-quote
}

func NewPostgresStateStore(db DBTX, table string) StateStore {
	return &postgresStateStore{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema membuat tabel state jika belum ada
func EnsureSchema(ctx context.Context, db DBTX, table string) error {
	quoted := pq.QuoteIdentifier(table)
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		visitor_id TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (visitor_id, key)
	)`, quoted)
	if _, err := db.ExecContext(ctx, query); err != nil {
		logger.Error("EnsureSchema: create table failed", err, map[string]interface{}{"table": table})
		return err
	}
	return nil
}

func (r *postgresStateStore) Load(ctx context.Context, visitorID, key string) (string, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE visitor_id = $1 AND key = $2`, r.table)
	var value string
	err := r.db.QueryRowContext(ctx, query, visitorID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		logger.Error("StateStore.Load: query failed", err, map[string]interface{}{"visitor_id": visitorID, "key": key})
		return "", err
	}
	return value, nil
}

func (r *postgresStateStore) Save(ctx context.Context, visitorID, key, value string) error {
	query := fmt.Sprintf(`INSERT INTO %s (visitor_id, key, value, updated_at)
              VALUES ($1, $2, $3, NOW())
              ON CONFLICT (visitor_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`, r.table)
	if _, err := r.db.ExecContext(ctx, query, visitorID, key, value); err != nil {
		logger.Error("StateStore.Save: upsert failed", err, map[string]interface{}{"visitor_id": visitorID, "key": key})
		return err
	}
	return nil
}

func (r *postgresStateStore) Clear(ctx context.Context, visitorID, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE visitor_id = $1 AND key = $2`, r.table)
	if _, err := r.db.ExecContext(ctx, query, visitorID, key); err != nil {
		logger.Error("StateStore.Clear: delete failed", err, map[string]interface{}{"visitor_id": visitorID, "key": key})
		return err
	}
	return nil
}

func (r *postgresStateStore) PurgeIdle(ctx context.Context, idle time.Duration) (int64, error) {
	// Hapus semua key milik visitor yang key terbarunya sudah lewat threshold
	query := fmt.Sprintf(`DELETE FROM %[1]s WHERE visitor_id IN (
              SELECT visitor_id FROM %[1]s GROUP BY visitor_id HAVING MAX(updated_at) < $1)`, r.table)
	res, err := r.db.ExecContext(ctx, query, time.Now().Add(-idle))
	if err != nil {
		logger.Error("StateStore.PurgeIdle: delete failed", err, nil)
		return 0, err
	}
	rowsAffected, _ := res.RowsAffected()
	return rowsAffected, nil
}
