package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string     `json:"db_path"`
	DBSizeBytes int64      `json:"db_size_bytes"`
	Entries     int        `json:"entries"`
	Notes       int        `json:"notes"`
	Keys        []KeyStats `json:"keys"`
}

// KeyStats holds per-key counts.
type KeyStats struct {
	Key      string `json:"key"`
	Versions int    `json:"versions"`
	Latest   int    `json:"latest"`
	Bytes    int    `json:"bytes"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	// DB file size
	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&st.Entries)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&st.Notes)

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, COUNT(*) AS cnt, MAX(version), COALESCE(SUM(LENGTH(value)), 0)
		FROM entries
		GROUP BY key ORDER BY key`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var k KeyStats
		if err := rows.Scan(&k.Key, &k.Versions, &k.Latest, &k.Bytes); err != nil {
			return st, err
		}
		st.Keys = append(st.Keys, k)
	}

	return st, rows.Err()
}
