package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"), nil)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	e, err := s.Put(ctx, KeyGameData, `{"version_3":null}`)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if e.Version != 1 {
		t.Errorf("expected version 1, got %d", e.Version)
	}
	if e.ID == "" {
		t.Error("expected non-empty ID")
	}

	got, err := s.Get(ctx, GetParams{Key: KeyGameData})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Value != `{"version_3":null}` {
		t.Errorf("unexpected value %q", got[0].Value)
	}
	if got[0].Size != len(got[0].Value) {
		t.Errorf("expected size %d, got %d", len(got[0].Value), got[0].Size)
	}
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Get(ctx, GetParams{Key: KeySettings})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	s.Put(ctx, KeySettings, "{}")
	_, err = s.Get(ctx, GetParams{Key: KeySettings, Version: 9})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing version, got %v", err)
	}
}

func TestVersioning(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, KeyGameData, "v1")
	e2, _ := s.Put(ctx, KeyGameData, "v2")

	if e2.Version != 2 {
		t.Errorf("expected version 2, got %d", e2.Version)
	}
	if e2.Supersedes == "" {
		t.Error("expected supersedes to be set")
	}

	// Get latest
	got, _ := s.Get(ctx, GetParams{Key: KeyGameData})
	if got[0].Value != "v2" {
		t.Errorf("expected 'v2', got %q", got[0].Value)
	}

	// Get history
	hist, _ := s.Get(ctx, GetParams{Key: KeyGameData, History: true})
	if len(hist) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(hist))
	}
	if hist[0].Version != 2 || hist[1].Version != 1 {
		t.Errorf("expected newest first, got %d, %d", hist[0].Version, hist[1].Version)
	}

	// Get specific version
	v1, _ := s.Get(ctx, GetParams{Key: KeyGameData, Version: 1})
	if v1[0].Value != "v1" {
		t.Errorf("expected 'v1', got %q", v1[0].Value)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, KeyGameData, "g1")
	s.Put(ctx, KeyGameData, "g2")
	e, _ := s.Put(ctx, KeySettings, "s1")
	if e.Version != 1 {
		t.Errorf("expected settings version 1, got %d", e.Version)
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, v := range []string{"a", "b", "c", "d", "e"} {
		s.Put(ctx, KeyGameData, v)
	}
	s.Put(ctx, KeySettings, "x")

	n, err := s.Prune(ctx, KeyGameData, 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 pruned, got %d", n)
	}

	hist, _ := s.Get(ctx, GetParams{Key: KeyGameData, History: true})
	if len(hist) != 2 || hist[0].Value != "e" || hist[1].Value != "d" {
		t.Errorf("unexpected history after prune: %+v", hist)
	}

	// Nothing left to prune
	n, _ = s.Prune(ctx, KeyGameData, 2)
	if n != 0 {
		t.Errorf("expected 0 pruned, got %d", n)
	}

	// Other keys untouched, keep <= 0 is a no-op
	n, _ = s.Prune(ctx, KeySettings, 0)
	if n != 0 {
		t.Errorf("expected 0 pruned, got %d", n)
	}
	if _, err := s.Get(ctx, GetParams{Key: KeySettings}); err != nil {
		t.Errorf("settings lost: %v", err)
	}

	// Versions keep counting after a prune
	e, _ := s.Put(ctx, KeyGameData, "f")
	if e.Version != 6 {
		t.Errorf("expected version 6, got %d", e.Version)
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, KeyGameData, "old")
	s.Put(ctx, KeyGameData, "new")

	e, err := s.Restore(ctx, KeyGameData, 1)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if e.Version != 3 || e.Value != "old" {
		t.Errorf("expected version 3 'old', got %d %q", e.Version, e.Value)
	}

	if _, err := s.Restore(ctx, KeyGameData, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Put(ctx, KeyGameData, "abc")
	s.Put(ctx, KeyGameData, "abcd")
	s.Put(ctx, KeySettings, "{}")
	s.SyncNotes(ctx, []Note{{Kind: "quest", Ref: 2, Name: "Lost Compass", Text: "north"}})

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Entries != 3 {
		t.Errorf("expected 3 entries, got %d", st.Entries)
	}
	if st.Notes != 1 {
		t.Errorf("expected 1 note, got %d", st.Notes)
	}
	if len(st.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(st.Keys))
	}
	gd := st.Keys[0]
	if gd.Key != KeyGameData || gd.Versions != 2 || gd.Latest != 2 || gd.Bytes != 7 {
		t.Errorf("unexpected game-data stats: %+v", gd)
	}
	if st.DBPath != s.Path() {
		t.Errorf("expected db path %q, got %q", s.Path(), st.DBPath)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath, nil)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
