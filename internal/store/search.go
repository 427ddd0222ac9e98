package store

import (
	"context"
	"fmt"
	"strings"
)

// SearchParams holds parameters for searching notes.
type SearchParams struct {
	Query string
	Kind  string
	Limit int
}

// SyncNotes replaces the whole note index with notes.
func (s *SQLiteStore) SyncNotes(ctx context.Context, notes []Note) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}
	for _, n := range notes {
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO notes (kind, ref, name, text) VALUES (?, ?, ?, ?)`,
			n.Kind, n.Ref, n.Name, n.Text)
		if err != nil {
			return fmt.Errorf("insert note: %w", err)
		}
	}
	return tx.Commit()
}

// SearchNotes finds notes whose text or name contains the query substring.
func (s *SQLiteStore) SearchNotes(ctx context.Context, p SearchParams) ([]Note, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + escapeLike(p.Query) + "%"
	where := []string{`(text LIKE ? ESCAPE '\' OR name LIKE ? ESCAPE '\')`}
	args := []interface{}{pattern, pattern}
	if p.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, p.Kind)
	}

	query := fmt.Sprintf(`
		SELECT kind, ref, name, text FROM notes
		WHERE %s
		ORDER BY kind DESC, ref
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.Kind, &n.Ref, &n.Name, &n.Text); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
