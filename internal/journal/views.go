package journal

import (
	"fmt"

	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/model"
)

// KeywordFilter selects quests, keywords or both in the to-do view. The
// values form a bit mask.
type KeywordFilter uint8

const (
	OnlyQuests   KeywordFilter = 1
	OnlyKeywords KeywordFilter = 2
	Both         KeywordFilter = OnlyQuests | OnlyKeywords
)

func (k KeywordFilter) String() string {
	switch k {
	case OnlyQuests:
		return "quests"
	case OnlyKeywords:
		return "keywords"
	case Both:
		return "both"
	}
	return fmt.Sprintf("KeywordFilter(%d)", uint8(k))
}

// ParseKeywordFilter parses the String form.
func ParseKeywordFilter(s string) (KeywordFilter, error) {
	switch s {
	case "quests":
		return OnlyQuests, nil
	case "keywords":
		return OnlyKeywords, nil
	case "both":
		return Both, nil
	}
	return 0, fmt.Errorf("unknown keyword filter %q (want quests, keywords or both)", s)
}

// TodoType selects which kind of progress the to-do view lists.
type TodoType uint8

const (
	// TodoActive lists quests in game.
	TodoActive TodoType = iota
	// TodoGainWithComplete lists unfound quests that can be gained and
	// have a known completion.
	TodoGainWithComplete
	// TodoGainWithoutComplete lists unfound quests that can be gained but
	// have no known completion.
	TodoGainWithoutComplete
	// TodoUnless lists unfound quests with an Unless encounter.
	TodoUnless
)

var todoTypeNames = [...]string{"active", "gain-complete", "gain", "unless"}

func (t TodoType) String() string {
	if int(t) < len(todoTypeNames) {
		return todoTypeNames[t]
	}
	return fmt.Sprintf("TodoType(%d)", uint8(t))
}

// ParseTodoType parses the String form.
func ParseTodoType(s string) (TodoType, error) {
	for i, n := range todoTypeNames {
		if n == s {
			return TodoType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown todo type %q", s)
}

// TodoFilter is the to-do view configuration.
type TodoFilter struct {
	Keywords KeywordFilter
	Type     TodoType
}

// DefaultTodoFilter is the filter of a fresh to-do view.
func DefaultTodoFilter() TodoFilter {
	return TodoFilter{Keywords: OnlyQuests, Type: TodoActive}
}

// TypeFlag is one activation flag of a hint.
type TypeFlag struct {
	Type   model.EncounterType `json:"type"`
	Active bool                `json:"active"`
}

// Hint is one location button of a quest row.
type Hint struct {
	Location         catalog.LocationID `json:"location"`
	LocationName     string             `json:"location_name"`
	Page             string             `json:"page,omitempty"`
	Types            []TypeFlag         `json:"types"`
	Outline          bool               `json:"outline"`
	Vis              model.Vis          `json:"vis"`
	Prerequisite     *catalog.QuestID   `json:"prerequisite,omitempty"`
	PrerequisiteName string             `json:"prerequisite_name,omitempty"`
	Disabled         bool               `json:"disabled"`
}

// QuestRow is one quest line of the to-do or map view.
type QuestRow struct {
	ID      catalog.QuestID  `json:"id"`
	Name    string           `json:"name"`
	State   model.QuestState `json:"state"`
	Keyword *bool            `json:"keyword,omitempty"`
	Vis     model.Vis        `json:"vis"`
	Note    string           `json:"note,omitempty"`
	Hints   []Hint           `json:"hints"`
}

func keywordClass(q *model.Quest, id catalog.QuestID) KeywordFilter {
	kw, known := q.IsKeyword(id)
	switch {
	case !known:
		return Both
	case kw:
		return OnlyKeywords
	default:
		return OnlyQuests
	}
}

func (f TodoFilter) match(q *model.Quest) bool {
	switch f.Type {
	case TodoActive:
		return q.State == model.InGame
	case TodoGainWithComplete:
		return q.State == model.NotFound &&
			q.ContainsVisibleEncounterType(model.Gain) &&
			q.ContainsVisibleEncounterType(model.Complete)
	case TodoGainWithoutComplete:
		return q.State == model.NotFound &&
			q.ContainsVisibleEncounterType(model.Gain) &&
			!q.ContainsVisibleEncounterType(model.Complete)
	case TodoUnless:
		return q.State == model.NotFound &&
			q.ContainsVisibleEncounterType(model.Unless)
	}
	return false
}

// TodoRows returns the to-do view: visible quests that are not removed and
// pass the filter, in localized name order.
func (j *Journal) TodoRows(f TodoFilter) []QuestRow {
	var rows []QuestRow
	for _, e := range j.Quests() {
		if keywordClass(e.Quest, e.ID)&f.Keywords == 0 {
			continue
		}
		if e.Quest.State == model.Removed {
			continue
		}
		if !f.match(e.Quest) {
			continue
		}
		if row, ok := j.row(e, nil); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// LocationRows returns the map view of l: every quest with an encounter
// there, hidden ones included.
func (j *Journal) LocationRows(l catalog.LocationID) []QuestRow {
	var rows []QuestRow
	for _, e := range j.Quests() {
		if row, ok := j.row(e, &l); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// row builds the view of one quest. With only set it is the map view of
// that location.
func (j *Journal) row(e QuestEntry, only *catalog.LocationID) (QuestRow, bool) {
	isMap := only != nil
	q := e.Quest
	if !isMap && q.Vis != model.Visible {
		return QuestRow{}, false
	}
	row := QuestRow{ID: e.ID, Name: e.Name, State: q.State, Vis: q.Vis, Note: q.Note}
	if kw, known := q.IsKeyword(e.ID); known {
		row.Keyword = &kw
	}
	for _, l := range q.Locations() {
		if isMap && l != *only {
			continue
		}
		if h, ok := j.hint(q, l, isMap); ok {
			row.Hints = append(row.Hints, h)
		}
	}
	if isMap && len(row.Hints) == 0 {
		return QuestRow{}, false
	}
	return row, true
}

func (j *Journal) hint(q *model.Quest, l catalog.LocationID, ignoreVisibility bool) (Hint, bool) {
	ql := q.Encounter[l]
	active := model.Active(ql, q, j, ignoreVisibility)
	if active.IsEmpty() {
		return Hint{}, false
	}
	h := Hint{
		Location:     l,
		LocationName: j.locale.LocationName(l),
		Page:         l.Page(),
		Outline:      !model.AnyActive(&active),
		Vis:          model.HiddenForever,
		Disabled:     l == catalog.Prologue(),
	}
	active.Each(func(et model.EncounterType, v *bool) {
		h.Types = append(h.Types, TypeFlag{Type: et, Active: *v})
	})
	ql.Each(func(et model.EncounterType, enc *model.Encounter) {
		if enc.Vis < h.Vis {
			h.Vis = enc.Vis
		}
		if h.Prerequisite != nil || enc.Prerequisite == nil {
			return
		}
		if v, _ := active.Get(et); !v {
			h.Prerequisite = model.Prereq(*enc.Prerequisite)
			h.PrerequisiteName = j.locale.QuestName(*enc.Prerequisite)
		}
	})
	return h, true
}

// ActionView is the action pane of one quest at one location.
type ActionView struct {
	Quest        catalog.QuestID    `json:"quest"`
	QuestName    string             `json:"quest_name"`
	Location     catalog.LocationID `json:"location"`
	LocationName string             `json:"location_name"`
	State        model.QuestState   `json:"state"`
	QuestVis     model.Vis          `json:"quest_vis"`
	Note         string             `json:"note,omitempty"`
	Encounters   []ActionEncounter  `json:"encounters"`
}

// ActionEncounter is one encounter as offered by the action pane.
type ActionEncounter struct {
	Type             model.EncounterType `json:"type"`
	Active           bool                `json:"active"`
	Vis              model.Vis           `json:"vis"`
	PrerequisiteName string              `json:"prerequisite_name,omitempty"`
}

// Action returns the action pane of quest id at l. ok is false when the
// quest has no encounter there.
func (j *Journal) Action(id catalog.QuestID, l catalog.LocationID, ignoreVisibility bool) (ActionView, bool) {
	q, ok := j.quests[id]
	if !ok {
		return ActionView{}, false
	}
	ql, ok := q.Encounter[l]
	if !ok {
		return ActionView{}, false
	}
	active := model.Active(ql, q, j, ignoreVisibility)
	v := ActionView{
		Quest:        id,
		QuestName:    j.locale.QuestName(id),
		Location:     l,
		LocationName: j.locale.LocationName(l),
		State:        q.State,
		QuestVis:     q.Vis,
		Note:         q.Note,
	}
	ql.Each(func(et model.EncounterType, enc *model.Encounter) {
		a, shown := active.Get(et)
		if !shown {
			return
		}
		ae := ActionEncounter{Type: et, Active: a, Vis: enc.Vis}
		if enc.Prerequisite != nil {
			ae.PrerequisiteName = j.locale.QuestName(*enc.Prerequisite)
		}
		v.Encounters = append(v.Encounters, ae)
	})
	return v, true
}
