package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	pgdb "github.com/ogurasousui/shramik-hisab/internal/platform/db/postgres"
)

const (
	selectEntrySQL = `SELECT value FROM kv_entries WHERE key = $1`
	upsertEntrySQL = `
        INSERT INTO kv_entries (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE
           SET value = EXCLUDED.value,
               updated_at = EXCLUDED.updated_at
    `
	deleteEntrySQL = `DELETE FROM kv_entries WHERE key = $1`
)

// KVStore は kv_entries テーブルを利用したキーバリューストアです。
// コンテキストにトランザクションがあればそれを使います。
type KVStore struct {
	db pgdb.Queryer
}

// NewKVStore は KVStore を生成します。
func NewKVStore(db pgdb.Queryer) *KVStore {
	return &KVStore{db: db}
}

// Get はキーの値を返します。行が無い場合は ok=false です。
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := pgdb.QueryerFromContext(ctx, s.db).QueryRow(ctx, selectEntrySQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres: get %s: %w", key, err)
	}
	return value, true, nil
}

// Set はキーの値を挿入または更新します。
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if _, err := pgdb.QueryerFromContext(ctx, s.db).Exec(ctx, upsertEntrySQL, key, value); err != nil {
		return fmt.Errorf("postgres: set %s: %w", key, err)
	}
	return nil
}

// Remove はキーを削除します。存在しないキーは無視します。
func (s *KVStore) Remove(ctx context.Context, key string) error {
	if _, err := pgdb.QueryerFromContext(ctx, s.db).Exec(ctx, deleteEntrySQL, key); err != nil {
		return fmt.Errorf("postgres: remove %s: %w", key, err)
	}
	return nil
}
