package journal

import (
	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/model"
)

// Perform applies the effect of acting on an encounter of quest id. Gain
// puts the quest in game, Complete and Lose remove it; Unless and When are
// informational. It reports whether the quest exists.
func (j *Journal) Perform(id catalog.QuestID, et model.EncounterType) bool {
	q, ok := j.quests[id]
	if !ok {
		return false
	}
	switch et {
	case model.Gain:
		q.State = model.InGame
	case model.Complete, model.Lose:
		q.State = model.Removed
	}
	return true
}

// Hide sets the vis of one encounter. It reports whether the encounter exists.
func (j *Journal) Hide(id catalog.QuestID, l catalog.LocationID, et model.EncounterType, vis model.Vis) bool {
	q, ok := j.quests[id]
	if !ok {
		return false
	}
	ql, ok := q.Encounter[l]
	if !ok {
		return false
	}
	e := ql.Ptr(et)
	if e == nil {
		return false
	}
	e.Vis = vis
	return true
}

// HideQuest sets the vis of a whole quest. It reports whether the quest exists.
func (j *Journal) HideQuest(id catalog.QuestID, vis model.Vis) bool {
	q, ok := j.quests[id]
	if !ok {
		return false
	}
	q.Vis = vis
	return true
}

// SetQuestNote replaces the note of a quest, creating the record if needed.
// It reports whether the note changed.
func (j *Journal) SetQuestNote(id catalog.QuestID, note string) bool {
	q := j.QuestOrNew(id)
	if q.Note == note {
		return false
	}
	q.Note = note
	return true
}

// SetLocationNote replaces the note of a location. An empty note removes it.
// It reports whether the note changed.
func (j *Journal) SetLocationNote(l catalog.LocationID, note string) bool {
	if j.locations[l] == note {
		return false
	}
	if note == "" {
		delete(j.locations, l)
		return true
	}
	j.locations[l] = note
	return true
}

// SetQuestState sets the state of a quest. Built-in quests never go back
// below InGame.
func (j *Journal) SetQuestState(id catalog.QuestID, state model.QuestState) {
	j.QuestOrNew(id).State = clampBuiltIn(id, state)
}

func clampBuiltIn(id catalog.QuestID, state model.QuestState) model.QuestState {
	if id.IsBuiltIn() && state == model.NotFound {
		return model.InGame
	}
	return state
}

// AllowedNewEncounter reports whether an encounter of type et may be
// recorded for quest id in its current state.
func (j *Journal) AllowedNewEncounter(et model.EncounterType, id catalog.QuestID) bool {
	state, ok := j.QuestState(id)
	switch et {
	case model.Gain:
		return !ok || state == model.NotFound
	case model.Complete, model.Lose:
		return ok && state == model.InGame
	}
	return true
}

// AddEncounter records a newly discovered encounter and applies its effect
// on the quest state, like performing it. The quest note is replaced.
func (j *Journal) AddEncounter(l catalog.LocationID, et model.EncounterType, id catalog.QuestID, prerequisite *catalog.QuestID, note string) {
	q := j.QuestOrNew(id)
	switch et {
	case model.Gain:
		q.State = model.InGame
	case model.Complete, model.Lose:
		q.State = model.Removed
	}
	q.Note = note
	q.At(l).Set(et, model.Encounter{Prerequisite: prerequisite, Vis: model.Visible})
}

// RemoveEncounter deletes one encounter. It reports whether it existed.
// The prologue Gain of a built-in quest is never removed.
func (j *Journal) RemoveEncounter(id catalog.QuestID, l catalog.LocationID, et model.EncounterType) bool {
	if id.IsBuiltIn() && l == catalog.Prologue() && et == model.Gain {
		return false
	}
	q, ok := j.quests[id]
	if !ok {
		return false
	}
	ql, ok := q.Encounter[l]
	if !ok {
		return false
	}
	return ql.Remove(et)
}

// ReplaceQuest stores an edited copy of a quest. A built-in keeps its
// prologue Gain encounter.
func (j *Journal) ReplaceQuest(id catalog.QuestID, q *model.Quest) {
	j.quests[id] = q
	j.SetQuestState(id, q.State)
	if id.IsBuiltIn() {
		j.keepPrologueGain(id)
	}
}

// keepPrologueGain adds a visible prologue Gain to a built-in that lost it.
func (j *Journal) keepPrologueGain(id catalog.QuestID) {
	pro := j.QuestOrNew(id).At(catalog.Prologue())
	if !pro.Contains(model.Gain) {
		pro.Set(model.Gain, model.Encounter{Vis: model.Visible})
	}
}

// NewCampaign starts a new play-through: quests go back to NotFound, the
// built-ins to InGame, and hides for this campaign are lifted. Permanent
// hides stay.
func (j *Journal) NewCampaign() {
	for _, id := range []catalog.QuestID{catalog.Raid(), catalog.Cottage()} {
		j.keepPrologueGain(id)
	}
	for id, q := range j.quests {
		if id.IsBuiltIn() {
			q.State = model.InGame
		} else {
			q.State = model.NotFound
		}
		if q.Vis == model.HiddenThisCampaign {
			q.Vis = model.Visible
		}
		for _, ql := range q.Encounter {
			ql.Each(func(_ model.EncounterType, e *model.Encounter) {
				if e.Vis == model.HiddenThisCampaign {
					e.Vis = model.Visible
				}
			})
		}
	}
}

// ClearAll resets the journal to the built-in quests only.
func (j *Journal) ClearAll() {
	j.Reset()
}
