package store

import (
	"context"
	"fmt"
)

// Restore writes the content of an older version of key as its newest
// version. History is never rewritten.
func (s *SQLiteStore) Restore(ctx context.Context, key string, version int) (*Entry, error) {
	old, err := s.Get(ctx, GetParams{Key: key, Version: version})
	if err != nil {
		return nil, err
	}
	e, err := s.Put(ctx, key, old[0].Value)
	if err != nil {
		return nil, fmt.Errorf("restore %s version %d: %w", key, version, err)
	}
	return e, nil
}
