package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/keeperbot/internal/kv"
)

// Buckets used by the chat stores.
const (
	BucketWarns   = "warns"
	BucketFilters = "filters"
	BucketNotes   = "notes"
)

const opTimeout = 5 * time.Second

type entryRow struct {
	ChatID int64  `db:"chat_id"`
	Key    string `db:"key"`
	Value  string `db:"value"`
}

// KV is a kv.Store backed by one bucket of the entries table. Values are
// stored as JSON. The kv.Store contract has no error results, so failed
// queries are logged and reported as misses.
type KV[V any] struct {
	db     *sqlx.DB
	bucket string
	logger *slog.Logger
}

// NewKV returns the store for bucket.
func NewKV[V any](db *sqlx.DB, bucket string, logger *slog.Logger) *KV[V] {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &KV[V]{
		db:     db,
		bucket: bucket,
		logger: logger.With("component", "store", "bucket", bucket),
	}
}

var _ kv.Store[kv.ChatKey, int] = (*KV[int])(nil)

func (s *KV[V]) Get(k kv.ChatKey) (V, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var zero V
	v, ok, err := get[V](ctx, s.db, s.bucket, k)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read entry", "chat_id", k.ChatID, "key", k.Key, "error", err)
		return zero, false
	}
	return v, ok
}

func (s *KV[V]) Set(k kv.ChatKey, v V) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := put(ctx, s.db, s.bucket, k, v); err != nil {
		s.logger.ErrorContext(ctx, "Failed to write entry", "chat_id", k.ChatID, "key", k.Key, "error", err)
	}
}

func (s *KV[V]) Remove(k kv.ChatKey) bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	n, err := remove(ctx, s.db, s.bucket, k)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete entry", "chat_id", k.ChatID, "key", k.Key, "error", err)
		return false
	}
	return n > 0
}

func (s *KV[V]) Scan(pred func(kv.ChatKey, V) bool) []kv.Entry[kv.ChatKey, V] {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var rows []entryRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT chat_id, key, value FROM entries WHERE bucket = ?;`, s.bucket)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to scan entries", "error", err)
		return nil
	}

	var out []kv.Entry[kv.ChatKey, V]
	for _, r := range rows {
		var v V
		if err := json.Unmarshal([]byte(r.Value), &v); err != nil {
			s.logger.WarnContext(ctx, "Skipping undecodable entry", "chat_id", r.ChatID, "key", r.Key, "error", err)
			continue
		}
		k := kv.ChatKey{ChatID: r.ChatID, Key: r.Key}
		if pred == nil || pred(k, v) {
			out = append(out, kv.Entry[kv.ChatKey, V]{Key: k, Value: v})
		}
	}
	return out
}

// Update runs fn inside one transaction. fn is called exactly once.
func (s *KV[V]) Update(k kv.ChatKey, fn kv.UpdateFunc[V]) (V, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var zero V
	next, keep, err := s.update(ctx, k, fn)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update entry", "chat_id", k.ChatID, "key", k.Key, "error", err)
		return zero, false
	}
	if !keep {
		return zero, false
	}
	return next, true
}

func (s *KV[V]) update(ctx context.Context, k kv.ChatKey, fn kv.UpdateFunc[V]) (V, bool, error) {
	var zero V

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return zero, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	old, ok, err := get[V](ctx, tx, s.bucket, k)
	if err != nil {
		return zero, false, err
	}

	next, keep := fn(old, ok)
	if keep {
		err = put(ctx, tx, s.bucket, k, next)
	} else if ok {
		_, err = remove(ctx, tx, s.bucket, k)
	}
	if err != nil {
		return zero, false, err
	}

	if err := tx.Commit(); err != nil {
		return zero, false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil
	return next, keep, nil
}

func (s *KV[V]) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM entries WHERE bucket = ?;`, s.bucket); err != nil {
		s.logger.ErrorContext(ctx, "Failed to count entries", "error", err)
		return 0
	}
	return n
}

func get[V any](ctx context.Context, q sqlx.QueryerContext, bucket string, k kv.ChatKey) (V, bool, error) {
	var zero V
	var raw string
	err := sqlx.GetContext(ctx, q, &raw,
		`SELECT value FROM entries WHERE bucket = ? AND chat_id = ? AND key = ?;`,
		bucket, k.ChatID, k.Key)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to get entry: %w", err)
	}
	var v V
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, false, fmt.Errorf("failed to decode entry: %w", err)
	}
	return v, true, nil
}

func put[V any](ctx context.Context, e sqlx.ExecerContext, bucket string, k kv.ChatKey, v V) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}
	_, err = e.ExecContext(ctx, `
        INSERT INTO entries (bucket, chat_id, key, value, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (bucket, chat_id, key) DO UPDATE
        SET value = excluded.value, updated_at = excluded.updated_at;
    `, bucket, k.ChatID, k.Key, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to put entry: %w", err)
	}
	return nil
}

func remove(ctx context.Context, e sqlx.ExecerContext, bucket string, k kv.ChatKey) (int64, error) {
	res, err := e.ExecContext(ctx,
		`DELETE FROM entries WHERE bucket = ? AND chat_id = ? AND key = ?;`,
		bucket, k.ChatID, k.Key)
	if err != nil {
		return 0, fmt.Errorf("failed to delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
