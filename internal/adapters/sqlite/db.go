package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"gardenbook/internal/domain"
)

// pragmas are applied by the driver to every pooled connection, so each
// scope runs with foreign keys enforced.
const pragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// dsn builds the driver DSN. Files use WAL so read scopes do not block on
// a writer; in-memory databases cannot.
func dsn(path string) string {
	if path == ":memory:" {
		return path + pragmas
	}
	return path + pragmas + "&_pragma=journal_mode(WAL)"
}

// DB is a handle on one SQLite file. It holds no open transaction; work
// happens inside scopes.
type DB struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Option configures a DB
type Option func(*DB)

// WithLogger sets the logger used for scope diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(d *DB) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Open opens (creating if needed) the database file at path and makes sure
// the schema exists.
func Open(path string, opts ...Option) (*DB, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	d := &DB{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	d.db = db

	if err := d.Scope(context.Background(), func(*Scope) error { return nil }); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return d, nil
}

// Path returns the database file path
func (d *DB) Path() string {
	return d.path
}

// Close closes the database connection
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Exec runs a single statement in its own scope and commits it immediately.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := d.Scope(ctx, func(s *Scope) error {
		var err error
		res, err = s.perform(ctx, query, args...)
		return err
	})
	return res, err
}

func expandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// classify tags SQLite constraint failures with domain.ErrConstraint
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se *msqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %w", domain.ErrConstraint, err)
	}
	return err
}
