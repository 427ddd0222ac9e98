package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	entropy *rand.Rand
	log     *zap.Logger
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		path:    dbPath,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log.Named("store"),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id          TEXT PRIMARY KEY,
		key         TEXT NOT NULL,
		value       TEXT NOT NULL,
		version     INTEGER NOT NULL DEFAULT 1,
		supersedes  TEXT,
		created_at  TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_key_version ON entries(key, version);

	CREATE TABLE IF NOT EXISTS notes (
		kind  TEXT NOT NULL,
		ref   INTEGER NOT NULL,
		name  TEXT NOT NULL,
		text  TEXT NOT NULL,
		PRIMARY KEY (kind, ref)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Put(ctx context.Context, key, value string) (*Entry, error) {
	now := time.Now().UTC()
	id := s.newID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Check for existing latest version
	var prevID string
	var prevVersion int
	err = tx.QueryRowContext(ctx,
		`SELECT id, version FROM entries WHERE key = ? ORDER BY version DESC LIMIT 1`,
		key).Scan(&prevID, &prevVersion)

	version := 1
	var supersedes *string
	switch {
	case err == nil:
		version = prevVersion + 1
		supersedes = &prevID
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("latest version: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entries (id, key, value, version, supersedes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, key, value, version, supersedes, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.log.Debug("put", zap.String("key", key), zap.Int("version", version), zap.Int("size", len(value)))

	e := &Entry{
		ID:        id,
		Key:       key,
		Value:     value,
		Size:      len(value),
		Version:   version,
		CreatedAt: now,
	}
	if supersedes != nil {
		e.Supersedes = *supersedes
	}
	return e, nil
}

const entryColumns = `id, key, value, version, supersedes, created_at`

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) ([]Entry, error) {
	var query string
	var args []interface{}

	if p.History {
		query = `SELECT ` + entryColumns + ` FROM entries WHERE key = ? ORDER BY version DESC`
		args = []interface{}{p.Key}
	} else if p.Version > 0 {
		query = `SELECT ` + entryColumns + ` FROM entries WHERE key = ? AND version = ? LIMIT 1`
		args = []interface{}{p.Key, p.Version}
	} else {
		query = `SELECT ` + entryColumns + ` FROM entries WHERE key = ? ORDER BY version DESC LIMIT 1`
		args = []interface{}{p.Key}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		if p.Version > 0 {
			return nil, fmt.Errorf("%w: %s version %d", ErrNotFound, p.Key, p.Version)
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p.Key)
	}
	return entries, nil
}

// Prune deletes every version of key except the newest keep. keep <= 0
// keeps everything.
func (s *SQLiteStore) Prune(ctx context.Context, key string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM entries WHERE key = ? AND version <= (
			SELECT version FROM entries WHERE key = ? ORDER BY version DESC LIMIT 1 OFFSET ?
		)`, key, key, keep)
	if err != nil {
		return 0, fmt.Errorf("prune %s: %w", key, err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		s.log.Debug("pruned", zap.String("key", key), zap.Int64("rows", n))
	}
	return int(n), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var supersedes sql.NullString
	var createdAt string

	err := row.Scan(&e.ID, &e.Key, &e.Value, &e.Version, &supersedes, &createdAt)
	if err != nil {
		return e, err
	}

	e.Size = len(e.Value)
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if supersedes.Valid {
		e.Supersedes = supersedes.String
	}
	return e, nil
}
