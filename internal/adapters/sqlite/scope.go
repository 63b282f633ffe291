package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gardenbook/internal/domain"
)

// Scope is one storage transaction. It is only valid inside the callback
// passed to DB.Scope and must not be retained.
type Scope struct {
	tx *sql.Tx
}

// ScopeError is returned when a scope rolled back. It matches
// domain.ErrBadRequest and unwraps to the fault that caused the rollback.
type ScopeError struct {
	Err error
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("storage scope rolled back: %v", e.Err)
}

func (e *ScopeError) Unwrap() error {
	return e.Err
}

func (e *ScopeError) Is(target error) bool {
	return target == domain.ErrBadRequest
}

// Scope opens a transaction, ensures the schema, and runs fn. When fn
// returns nil every write is committed; otherwise every write made in the
// scope is rolled back and a *ScopeError is returned. A panic in fn rolls
// back before propagating.
//
// Scopes do not nest: a scope opened inside another one runs on a separate
// connection and only works as far as SQLite's file locking allows.
func (d *DB) Scope(ctx context.Context, fn func(*Scope) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return d.fail(fmt.Errorf("begin: %w", err))
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			d.logger.Error("storage scope panicked, rolled back", "path", d.path, "panic", p)
			panic(p)
		}
	}()

	s := &Scope{tx: tx}
	if err := ensureSchema(ctx, s); err != nil {
		return d.rollback(tx, err)
	}
	if err := fn(s); err != nil {
		return d.rollback(tx, err)
	}
	if err := tx.Commit(); err != nil {
		return d.fail(fmt.Errorf("commit: %w", err))
	}
	committed = true

	d.logger.Debug("storage scope committed", "path", d.path)
	return nil
}

func (d *DB) rollback(tx *sql.Tx, cause error) error {
	if err := tx.Rollback(); err != nil {
		cause = errors.Join(cause, fmt.Errorf("rollback: %w", err))
	}
	return d.fail(cause)
}

func (d *DB) fail(err error) error {
	d.logger.Error("storage scope rolled back", "path", d.path, "err", err)
	return &ScopeError{Err: err}
}

// perform runs a statement inside the scope's transaction; it is committed
// together with the scope.
func (s *Scope) perform(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := s.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// collect runs a query and scans every row with scan before returning, so
// no result set is open while related rows are loaded.
func collect[T any](ctx context.Context, s *Scope, scan func(*sql.Rows) (T, error), query string, args ...any) ([]T, error) {
	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
