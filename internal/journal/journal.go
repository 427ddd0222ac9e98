// Package journal holds the journal store: every quest record and location
// note of one campaign, plus the game locale used to name them.
package journal

import (
	"sort"

	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/model"
)

// Journal is the in-memory journal store. It is not safe for concurrent
// use; the owner serializes access.
type Journal struct {
	quests    map[catalog.QuestID]*model.Quest
	locations map[catalog.LocationID]string
	locale    *catalog.Locale
}

// QuestEntry is a present quest with its localized name.
type QuestEntry struct {
	ID    catalog.QuestID
	Name  string
	Quest *model.Quest
}

// LocationNote is a location with its note.
type LocationNote struct {
	ID   catalog.LocationID
	Note string
}

// New returns a journal holding only the built-in quests.
func New(locale *catalog.Locale) *Journal {
	if locale == nil {
		locale = catalog.NewLocale(catalog.DefaultLanguage())
	}
	j := &Journal{locale: locale}
	j.Reset()
	return j
}

// Locale returns the game locale.
func (j *Journal) Locale() *catalog.Locale { return j.locale }

// Reset drops every quest and location note and reinstates the built-ins.
func (j *Journal) Reset() {
	j.quests = map[catalog.QuestID]*model.Quest{}
	j.locations = map[catalog.LocationID]string{}
	j.builtIn()
}

// builtIn makes sure both built-in quests exist with exactly one visible
// Gain encounter at the prologue. It never demotes a removed built-in.
func (j *Journal) builtIn() {
	for _, id := range []catalog.QuestID{catalog.Raid(), catalog.Cottage()} {
		q := j.QuestOrNew(id)
		if q.State != model.Removed {
			q.State = model.InGame
		}
		pro := q.At(catalog.Prologue())
		pro.Clear()
		pro.Set(model.Gain, model.Encounter{Vis: model.Visible})
	}
}

// Cleanup prunes empty structures: encounter sets without entries, quests
// with neither encounters nor a note, and empty location notes.
func (j *Journal) Cleanup() {
	for id, q := range j.quests {
		for l, ql := range q.Encounter {
			if ql.IsEmpty() {
				delete(q.Encounter, l)
			}
		}
		if len(q.Encounter) == 0 && q.Note == "" {
			delete(j.quests, id)
		}
	}
	for l, note := range j.locations {
		if note == "" {
			delete(j.locations, l)
		}
	}
}

// Quest returns the record of id.
func (j *Journal) Quest(id catalog.QuestID) (*model.Quest, bool) {
	q, ok := j.quests[id]
	return q, ok
}

// QuestOrNew returns the record of id, creating an empty one when absent.
func (j *Journal) QuestOrNew(id catalog.QuestID) *model.Quest {
	q, ok := j.quests[id]
	if !ok {
		q = model.NewQuest()
		j.quests[id] = q
	}
	return q
}

// QuestState implements model.StateLookup.
func (j *Journal) QuestState(id catalog.QuestID) (model.QuestState, bool) {
	q, ok := j.quests[id]
	if !ok {
		return model.NotFound, false
	}
	return q.State, true
}

// Len returns the number of quest records.
func (j *Journal) Len() int { return len(j.quests) }

// Quests returns the present quests in localized name order.
func (j *Journal) Quests() []QuestEntry {
	var out []QuestEntry
	for _, qn := range j.locale.Quests() {
		if q, ok := j.quests[qn.ID]; ok {
			out = append(out, QuestEntry{ID: qn.ID, Name: qn.Name, Quest: q})
		}
	}
	return out
}

// LocationNote returns the note of l, empty when there is none.
func (j *Journal) LocationNote(l catalog.LocationID) string {
	return j.locations[l]
}

// Locations returns every location note in id order.
func (j *Journal) Locations() []LocationNote {
	out := make([]LocationNote, 0, len(j.locations))
	for l, n := range j.locations {
		out = append(out, LocationNote{ID: l, Note: n})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// Active runs the activation engine for quest id at location l.
func (j *Journal) Active(id catalog.QuestID, l catalog.LocationID, ignoreVisibility bool) model.EncounterMap[bool] {
	q, ok := j.quests[id]
	if !ok {
		return model.EncounterMap[bool]{}
	}
	return model.Active(q.Encounter[l], q, j, ignoreVisibility)
}

// HasEncounterAt reports whether quest id has an encounter set at l.
func (j *Journal) HasEncounterAt(id catalog.QuestID, l catalog.LocationID) bool {
	q, ok := j.quests[id]
	if !ok {
		return false
	}
	_, ok = q.Encounter[l]
	return ok
}

// Clone returns a deep copy with its own locale.
func (j *Journal) Clone() *Journal {
	c := &Journal{
		quests:    make(map[catalog.QuestID]*model.Quest, len(j.quests)),
		locations: make(map[catalog.LocationID]string, len(j.locations)),
		locale:    j.locale.Clone(),
	}
	for id, q := range j.quests {
		c.quests[id] = q.Clone()
	}
	for l, n := range j.locations {
		c.locations[l] = n
	}
	return c
}

// ReplaceWith takes over the content and language of other.
func (j *Journal) ReplaceWith(other *Journal) {
	j.quests = other.quests
	j.locations = other.locations
	j.locale.SetLanguage(other.locale.Language())
}

// Restore rebuilds the built-in rules after bulk population, then prunes.
func (j *Journal) Restore() {
	j.builtIn()
	j.Cleanup()
}
