// Package csvio reads and writes the journal CSV interchange format.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
)

// Header is the fixed first record of every file.
var Header = []string{"type", "location", "quest", "status", "prerequisite", "visibility", "note"}

// Marker is written in the note column of the language row.
const Marker = "This file is in UTF-8 😀"

const (
	colType = iota
	colLocation
	colQuest
	colStatus
	colPrerequisite
	colVisibility
	colNote
)

const (
	typeLanguage  = "language"
	typeQuest     = "quest"
	typeLocation  = "location"
	typeEncounter = "encounter"
)

var (
	// ErrHeader means the file does not start with Header.
	ErrHeader = errors.New("csvio: header mismatch")
	// ErrLanguage means the language row is missing or names an unknown
	// game language.
	ErrLanguage = errors.New("csvio: missing or unknown language row")
)

// FormatError is a structural CSV problem, such as broken quoting.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string { return "csvio: malformed csv: " + e.Err.Error() }

func (e *FormatError) Unwrap() error { return e.Err }

var bom = []byte{0xef, 0xbb, 0xbf}

// FileName suggests a name for an export made at t.
func FileName(t time.Time) string {
	return "quest-journal-" + t.Format("20060102-150405") + ".csv"
}

// Export writes j to w.
func Export(w io.Writer, j *journal.Journal) error {
	cw := csv.NewWriter(w)
	locale := j.Locale()
	records := [][]string{
		Header,
		{typeLanguage, "", "", locale.Language().Code(), "", "", Marker},
	}
	quests := j.Quests()
	for _, e := range quests {
		q := e.Quest
		if q.State == model.NotFound && q.Note == "" && q.Vis == model.Visible {
			continue
		}
		records = append(records, []string{typeQuest, "", e.Name, q.State.CSV(), "", q.Vis.CSV(), q.Note})
	}
	for _, l := range catalog.AllLocations() {
		if l == catalog.Prologue() {
			continue
		}
		name := locale.LocationName(l)
		if note := j.LocationNote(l); note != "" {
			records = append(records, []string{typeLocation, name, "", "", "", "", note})
		}
		for _, e := range quests {
			ql, ok := e.Quest.Encounter[l]
			if !ok {
				continue
			}
			ql.Each(func(et model.EncounterType, enc *model.Encounter) {
				pre := ""
				if enc.Prerequisite != nil {
					pre = locale.QuestName(*enc.Prerequisite)
				}
				records = append(records, []string{typeEncounter, name, e.Name, et.CSV(), pre, enc.Vis.CSV(), ""})
			})
		}
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("csvio: write: %w", err)
	}
	return nil
}

// Import replaces the content of j with the file read from r. Records that
// do not resolve are skipped; their row numbers, header being row 1, come
// back joined by ", ". On a returned error j is left untouched.
func Import(r io.Reader, j *journal.Journal) (string, error) {
	br := bufio.NewReader(r)
	if peek, err := br.Peek(len(bom)); err == nil && bytes.Equal(peek, bom) {
		if _, err := br.Discard(len(bom)); err != nil {
			return "", &FormatError{Err: err}
		}
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err == io.EOF {
		return "", ErrHeader
	}
	if err != nil {
		return "", &FormatError{Err: err}
	}
	if !equal(head, Header) {
		return "", ErrHeader
	}

	rec, err := cr.Read()
	if err == io.EOF {
		return "", ErrLanguage
	}
	if err != nil {
		return "", &FormatError{Err: err}
	}
	if field(rec, colType) != typeLanguage {
		return "", ErrLanguage
	}
	lang, ok := parseLanguage(field(rec, colStatus))
	if !ok {
		return "", ErrLanguage
	}

	scratch := j.Clone()
	scratch.Reset()
	scratch.Locale().SetLanguage(lang)
	lk := newLookup(scratch.Locale())

	var bad []string
	for row := 3; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &FormatError{Err: err}
		}
		if !apply(scratch, lk, rec) {
			bad = append(bad, strconv.Itoa(row))
		}
	}
	scratch.Restore()
	j.ReplaceWith(scratch)
	return strings.Join(bad, ", "), nil
}

// parseLanguage accepts a language code or, for older files, the
// language name.
func parseLanguage(s string) (catalog.GameLanguage, bool) {
	if lang, ok := catalog.LanguageFromCode(s); ok {
		return lang, true
	}
	for _, lang := range catalog.Languages() {
		if lang.Name() == s {
			return lang, true
		}
	}
	return 0, false
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func field(rec []string, col int) string {
	if col < len(rec) {
		return rec[col]
	}
	return ""
}

type lookup struct {
	quests    map[string]catalog.QuestID
	locations map[string]catalog.LocationID
}

func newLookup(locale *catalog.Locale) lookup {
	lk := lookup{
		quests:    map[string]catalog.QuestID{},
		locations: map[string]catalog.LocationID{},
	}
	for _, qn := range locale.Quests() {
		lk.quests[qn.Name] = qn.ID
	}
	for _, l := range catalog.AllLocations() {
		if l != catalog.Prologue() {
			lk.locations[locale.LocationName(l)] = l
		}
	}
	return lk
}

// resolve maps a name cell. An empty cell is absent, a name without a
// match fails.
func resolve[T any](m map[string]T, name string) (v *T, ok bool) {
	if name == "" {
		return nil, true
	}
	id, ok := m[name]
	if !ok {
		return nil, false
	}
	return &id, true
}

// apply upserts one record into j and reports whether it resolved.
func apply(j *journal.Journal, lk lookup, rec []string) bool {
	typ := field(rec, colType)
	if typ != typeQuest && typ != typeLocation && typ != typeEncounter {
		return false
	}
	loc, ok := resolve(lk.locations, field(rec, colLocation))
	if !ok {
		return false
	}
	quest, ok := resolve(lk.quests, field(rec, colQuest))
	if !ok {
		return false
	}
	pre, ok := resolve(lk.quests, field(rec, colPrerequisite))
	if !ok {
		return false
	}
	vis, ok := model.ParseVisCSV(field(rec, colVisibility))
	if !ok {
		return false
	}
	note := field(rec, colNote)

	switch typ {
	case typeQuest:
		if quest == nil {
			return false
		}
		state, ok := model.ParseQuestStateCSV(field(rec, colStatus))
		if !ok {
			return false
		}
		q := j.QuestOrNew(*quest)
		q.State = state
		q.Vis = vis
		q.Note = note
	case typeLocation:
		if loc == nil {
			return false
		}
		j.SetLocationNote(*loc, note)
	case typeEncounter:
		if loc == nil || quest == nil {
			return false
		}
		et, ok := model.ParseEncounterType(field(rec, colStatus))
		if !ok {
			return false
		}
		j.QuestOrNew(*quest).At(*loc).Set(et, model.Encounter{Prerequisite: pre, Vis: vis})
	}
	return true
}
