// Package audit keeps a SQLite log of handled invocations.
package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"smart-home-mock/internal/domain"
	"smart-home-mock/internal/infra"
)

var ErrClosed = errors.New("audit: store closed")

const (
	dirPermissions    = 0750
	busyTimeoutMillis = 5000
	connectionTimeout = 5 * time.Second
	defaultListLimit  = 50

	// Fixed width so received_at sorts as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id                 TEXT PRIMARY KEY,
	received_at        TEXT NOT NULL,
	namespace          TEXT NOT NULL,
	request_name       TEXT NOT NULL,
	appliance_id       TEXT,
	message_id         TEXT NOT NULL,
	response_namespace TEXT,
	response_name      TEXT,
	duration_ns        INTEGER NOT NULL,
	error              TEXT
);
CREATE INDEX IF NOT EXISTS idx_invocations_received_at ON invocations (received_at);
`

// Store records invocations and lists the most recent ones.
// It satisfies application.Recorder.
type Store struct {
	db     *sql.DB
	path   string
	mu     sync.RWMutex
	closed bool
}

// Open creates the database file and schema if needed. A busy database is
// retried with backoff; any other error fails immediately.
func Open(ctx context.Context, path string, retry infra.RetryConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", path, busyTimeoutMillis)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	db.SetMaxOpenConns(1)

	err = infra.WithRetry(ctx, retry, func(int) error {
		pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			return retryable(err)
		}
		if _, err := db.ExecContext(pingCtx, schema); err != nil {
			return retryable(err)
		}
		return nil
	})
	if err != nil {
		db.Close() //nolint:errcheck // error path cleanup
		return nil, fmt.Errorf("initialising audit database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// retryable lets lock contention through to another attempt.
func retryable(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return err
	}
	return infra.Permanent(err)
}

func (s *Store) Path() string {
	return s.path
}

// Record inserts inv, assigning an id when it has none.
func (s *Store) Record(ctx context.Context, inv domain.Invocation) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	if inv.ID == "" {
		inv.ID = "inv-" + uuid.NewString()
	}
	if inv.ReceivedAt.IsZero() {
		inv.ReceivedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (id, received_at, namespace, request_name, appliance_id, message_id,
			response_namespace, response_name, duration_ns, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.ReceivedAt.UTC().Format(timeLayout),
		string(inv.Namespace), inv.RequestName, nullableString(inv.ApplianceID), inv.MessageID,
		nullableString(string(inv.ResponseNamespace)), nullableString(inv.ResponseName),
		inv.Duration.Nanoseconds(), nullableString(inv.Error),
	)
	if err != nil {
		return fmt.Errorf("inserting invocation: %w", err)
	}
	return nil
}

// List returns up to limit invocations, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.Invocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, received_at, namespace, request_name, appliance_id, message_id,
			response_namespace, response_name, duration_ns, error
		 FROM invocations ORDER BY received_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying invocations: %w", err)
	}
	defer rows.Close()

	invocations := make([]domain.Invocation, 0, limit)
	for rows.Next() {
		var (
			inv                                  domain.Invocation
			receivedAt, namespace                string
			applianceID, respNamespace, respName sql.NullString
			errText                              sql.NullString
			durationNs                           int64
		)
		if err := rows.Scan(&inv.ID, &receivedAt, &namespace, &inv.RequestName, &applianceID, &inv.MessageID,
			&respNamespace, &respName, &durationNs, &errText); err != nil {
			return nil, fmt.Errorf("scanning invocation: %w", err)
		}

		inv.ReceivedAt, err = time.Parse(timeLayout, receivedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing received_at of %s: %w", inv.ID, err)
		}
		inv.Namespace = domain.Namespace(namespace)
		inv.ApplianceID = applianceID.String
		inv.ResponseNamespace = domain.Namespace(respNamespace.String)
		inv.ResponseName = respName.String
		inv.Duration = time.Duration(durationNs)
		inv.Error = errText.String

		invocations = append(invocations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invocations: %w", err)
	}

	return invocations, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing audit database: %w", err)
	}
	return nil
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
