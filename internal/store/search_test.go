package store

import (
	"context"
	"testing"
)

func TestSearchNotes_Basic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.SyncNotes(ctx, []Note{
		{Kind: "quest", Ref: 2, Name: "Lost Compass", Text: "needle points to the harbor"},
		{Kind: "quest", Ref: 5, Name: "Storm Pact", Text: "ask the oracle"},
		{Kind: "location", Ref: 4, Name: "4", Text: "Harbor gate is locked"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Search by text, case-insensitive
	results, err := s.SearchNotes(ctx, SearchParams{Query: "harbor"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Kind != "quest" || results[1].Kind != "location" {
		t.Errorf("expected quests before locations, got %s, %s", results[0].Kind, results[1].Kind)
	}

	// Kind filter
	results, _ = s.SearchNotes(ctx, SearchParams{Query: "harbor", Kind: "location"})
	if len(results) != 1 || results[0].Ref != 4 {
		t.Fatalf("expected location 4, got %+v", results)
	}

	// Search by name
	results, _ = s.SearchNotes(ctx, SearchParams{Query: "storm"})
	if len(results) != 1 || results[0].Ref != 5 {
		t.Fatalf("expected quest 5, got %+v", results)
	}

	// No results
	results, _ = s.SearchNotes(ctx, SearchParams{Query: "dragon"})
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestSearchNotes_Limit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var notes []Note
	for i := 0; i < 5; i++ {
		notes = append(notes, Note{Kind: "location", Ref: i + 1, Name: "x", Text: "same text"})
	}
	s.SyncNotes(ctx, notes)

	results, _ := s.SearchNotes(ctx, SearchParams{Query: "same", Limit: 3})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}

func TestSearchNotes_Wildcards(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SyncNotes(ctx, []Note{
		{Kind: "quest", Ref: 2, Name: "a", Text: "100% done"},
		{Kind: "quest", Ref: 3, Name: "b", Text: "100 coins"},
	})

	results, _ := s.SearchNotes(ctx, SearchParams{Query: "100%"})
	if len(results) != 1 || results[0].Ref != 2 {
		t.Fatalf("expected only the literal match, got %+v", results)
	}
}

func TestSyncNotesReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SyncNotes(ctx, []Note{{Kind: "quest", Ref: 2, Name: "a", Text: "first"}})
	s.SyncNotes(ctx, []Note{{Kind: "quest", Ref: 3, Name: "b", Text: "second"}})

	if results, _ := s.SearchNotes(ctx, SearchParams{Query: "first"}); len(results) != 0 {
		t.Errorf("expected old notes gone, got %+v", results)
	}
	if results, _ := s.SearchNotes(ctx, SearchParams{Query: "second"}); len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}
