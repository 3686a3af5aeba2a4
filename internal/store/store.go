// Package store persists organizations, estimates, sections and the shop
// catalogs in SQLite, and loads them back in the shapes the estimating
// engine consumes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps a migrated database handle.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// readTx runs fn inside a transaction that is always rolled back. SQLite
// gives the whole transaction one consistent view of the database.
func (s *Store) readTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback()

	return fn(tx)
}

func (s *Store) writeTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write transaction: %w", err)
	}
	return nil
}

func ptrOf[T any](n sql.Null[T]) *T {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}

func nullOf[T any](p *T) sql.Null[T] {
	if p == nil {
		return sql.Null[T]{}
	}
	return sql.Null[T]{V: *p, Valid: true}
}

// decodeIDs reads a finish id list. SQL NULL stays nil so an absent list
// keeps inheriting; "[]" decodes to an empty, non-nil slice.
func decodeIDs(raw sql.Null[string]) ([]int64, error) {
	if !raw.Valid {
		return nil, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw.V), &ids); err != nil {
		return nil, fmt.Errorf("decode id list %q: %w", raw.V, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func encodeIDs(ids []int64) (sql.Null[string], error) {
	if ids == nil {
		return sql.Null[string]{}, nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return sql.Null[string]{}, fmt.Errorf("encode id list: %w", err)
	}
	return sql.Null[string]{V: string(data), Valid: true}, nil
}
