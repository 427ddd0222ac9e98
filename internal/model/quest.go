package model

import (
	"sort"

	"github.com/rcliao/quest-journal/internal/catalog"
)

// QuestState is the lifecycle state of a quest.
type QuestState uint8

const (
	NotFound QuestState = iota
	InGame
	Removed
)

// CSV returns the interchange tag of s.
func (s QuestState) CSV() string {
	switch s {
	case InGame:
		return "in-game"
	case Removed:
		return "removed"
	default:
		return ""
	}
}

// ParseQuestStateCSV parses an interchange tag.
func ParseQuestStateCSV(s string) (QuestState, bool) {
	switch s {
	case "":
		return NotFound, true
	case "in-game":
		return InGame, true
	case "removed":
		return Removed, true
	}
	return NotFound, false
}

// Valid reports whether s is one of the declared values.
func (s QuestState) Valid() bool { return s <= Removed }

func (s QuestState) String() string {
	switch s {
	case NotFound:
		return "not-found"
	case InGame:
		return "in-game"
	case Removed:
		return "removed"
	}
	return "invalid"
}

// ParseQuestState accepts the String form, used on the command line.
func ParseQuestState(s string) (QuestState, bool) {
	if s == "not-found" {
		return NotFound, true
	}
	if s == "" {
		return NotFound, false
	}
	return ParseQuestStateCSV(s)
}

// Encounter is one (location, type) entry of a quest. Prerequisite is only
// meaningful for Gain encounters.
type Encounter struct {
	Prerequisite *catalog.QuestID
	Vis          Vis
}

// QuestLocation holds the encounters of one quest at one location.
type QuestLocation = EncounterMap[Encounter]

// Prereq is a helper to build an Encounter prerequisite.
func Prereq(q catalog.QuestID) *catalog.QuestID { return &q }

// Quest is the journal record of one quest.
type Quest struct {
	State     QuestState
	Encounter map[catalog.LocationID]*QuestLocation
	Vis       Vis
	Note      string
}

// NewQuest returns an empty NotFound quest.
func NewQuest() *Quest {
	return &Quest{Encounter: map[catalog.LocationID]*QuestLocation{}}
}

// At returns the encounters at loc, creating them when absent.
func (q *Quest) At(loc catalog.LocationID) *QuestLocation {
	ql, ok := q.Encounter[loc]
	if !ok {
		ql = &QuestLocation{}
		q.Encounter[loc] = ql
	}
	return ql
}

// Locations returns the locations the quest has encounters at, in id order.
func (q *Quest) Locations() []catalog.LocationID {
	locs := make([]catalog.LocationID, 0, len(q.Encounter))
	for l := range q.Encounter {
		locs = append(locs, l)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i] < locs[j] })
	return locs
}

// IsKeyword reports whether the quest is shown as keyword. It is only known
// once the quest has a Gain encounter somewhere.
func (q *Quest) IsKeyword(id catalog.QuestID) (keyword bool, known bool) {
	for _, ql := range q.Encounter {
		if ql.Contains(Gain) {
			return id.IsKeyword(), true
		}
	}
	return false, false
}

// ContainsVisibleEncounterType reports whether any location holds a visible
// encounter of type et.
func (q *Quest) ContainsVisibleEncounterType(et EncounterType) bool {
	for _, ql := range q.Encounter {
		if e, ok := ql.Get(et); ok && e.Vis == Visible {
			return true
		}
	}
	return false
}

// MaxVis aggregates the quest vis with the vis of all its encounters: the
// most restrictive one wins.
func (q *Quest) MaxVis() Vis {
	m := q.Vis
	for _, ql := range q.Encounter {
		ql.Each(func(_ EncounterType, e *Encounter) {
			m = MaxVis(m, e.Vis)
		})
	}
	return m
}

// Clone returns a deep copy.
func (q *Quest) Clone() *Quest {
	c := &Quest{
		State:     q.State,
		Encounter: make(map[catalog.LocationID]*QuestLocation, len(q.Encounter)),
		Vis:       q.Vis,
		Note:      q.Note,
	}
	for l, ql := range q.Encounter {
		cp := &QuestLocation{}
		ql.Each(func(et EncounterType, e *Encounter) {
			ne := *e
			if e.Prerequisite != nil {
				ne.Prerequisite = Prereq(*e.Prerequisite)
			}
			cp.Set(et, ne)
		})
		c.Encounter[l] = cp
	}
	return c
}
