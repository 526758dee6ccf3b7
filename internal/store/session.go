package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/artikli/internal/db"
)

// ErrSessionClosed is returned when a session is used after Commit or Close.
var ErrSessionClosed = errors.New("session is closed")

// Store hands out sessions against the shared connection pool.
type Store struct {
	db *db.DB
}

// New returns a store backed by the given pool.
func New(database *db.DB) *Store {
	return &Store{db: database}
}

// Session is a unit of work. Changes become visible only after Commit.
// Close must be called on every exit path; it rolls back anything that was
// not committed and returns the connection to the pool.
type Session struct {
	db *db.DB
	tx *sql.Tx
}

// Acquire begins a new session.
func (s *Store) Acquire(ctx context.Context) (*Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning session: %w", err)
	}
	return &Session{db: s.db, tx: tx}, nil
}

// WithSession acquires a session, runs fn, and always closes the session.
// fn is responsible for calling Commit.
func (s *Store) WithSession(ctx context.Context, fn func(*Session) error) (err error) {
	sess, err := s.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(sess)
}

// Commit persists pending changes and ends the session.
func (s *Session) Commit() error {
	if s.tx == nil {
		return ErrSessionClosed
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// Close rolls back uncommitted changes. It is a no-op after Commit.
func (s *Session) Close() error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back session: %w", err)
	}
	return nil
}

// active reports whether the session can still be used.
func (s *Session) active() bool {
	return s.tx != nil
}

func (s *Session) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.tx == nil {
		return nil, ErrSessionClosed
	}
	return s.tx.ExecContext(ctx, s.db.Dialect.Rebind(query), args...)
}

func (s *Session) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if s.tx == nil {
		return nil, ErrSessionClosed
	}
	return s.tx.QueryContext(ctx, s.db.Dialect.Rebind(query), args...)
}
