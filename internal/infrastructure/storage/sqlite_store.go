package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultRevisionLimit is how many past versions SQLiteStore keeps per key.
const DefaultRevisionLimit = 20

// ErrRevisionKey is returned when a revision id belongs to a different key.
var ErrRevisionKey = errors.New("revision belongs to another key")

// Revision is one historical version of a document.
type Revision struct {
	ID        int64
	Key       string
	Size      int
	CreatedAt time.Time
}

// SQLiteStore keeps documents in a SQLite key/value table and retains a
// bounded list of prior versions per key.
type SQLiteStore struct {
	conn          *sql.DB
	revisionLimit int
}

// NewSQLiteStore opens (or creates) the database file at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer
	conn.SetMaxOpenConns(1)

	s := &SQLiteStore{conn: conn, revisionLimit: DefaultRevisionLimit}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS revisions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			value BLOB NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_key ON revisions(key, id)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Get reads the current document under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM documents WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Put upserts the document and appends a revision, pruning old ones.
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	now := time.Now().UnixMilli()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO revisions (key, value, created_at) VALUES (?, ?, ?)`, key, value, now,
	); err != nil {
		return fmt.Errorf("record revision: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM revisions WHERE key = ? AND id NOT IN (
			SELECT id FROM revisions WHERE key = ? ORDER BY id DESC LIMIT ?
		)`, key, key, s.revisionLimit,
	); err != nil {
		return fmt.Errorf("prune revisions: %w", err)
	}

	return tx.Commit()
}

// Delete removes the document and its revisions.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM revisions WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete revisions for %s: %w", key, err)
	}
	return nil
}

// Revisions lists stored versions of key, newest first.
func (s *SQLiteStore) Revisions(ctx context.Context, key string) ([]Revision, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, key, length(value), created_at FROM revisions WHERE key = ? ORDER BY id DESC`, key,
	)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var (
			r  Revision
			ms int64
		)
		if err := rows.Scan(&r.ID, &r.Key, &r.Size, &ms); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		r.CreatedAt = time.UnixMilli(ms)
		out = append(out, r)
	}
	return out, rows.Err()
}

// RevisionData returns the payload of revision id of key. A revision that
// exists under another key yields ErrRevisionKey.
func (s *SQLiteStore) RevisionData(ctx context.Context, key string, id int64) ([]byte, error) {
	var (
		owner string
		value []byte
	)
	err := s.conn.QueryRowContext(ctx, `SELECT key, value FROM revisions WHERE id = ?`, id).Scan(&owner, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get revision %d: %w", id, err)
	}
	if owner != key {
		return nil, fmt.Errorf("%w: revision %d belongs to %s, not %s", ErrRevisionKey, id, owner, key)
	}
	return value, nil
}

// SetRevisionLimit changes how many versions are kept per key.
func (s *SQLiteStore) SetRevisionLimit(limit int) {
	if limit > 0 {
		s.revisionLimit = limit
	}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
