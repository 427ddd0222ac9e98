package model

import "github.com/rcliao/quest-journal/internal/catalog"

// StateLookup resolves the current state of another quest, used for
// prerequisites. ok is false for quests not in the journal.
type StateLookup interface {
	QuestState(id catalog.QuestID) (state QuestState, ok bool)
}

// Active computes which encounter types of ql the player can act on right
// now. Hidden encounters, and everything of a hidden quest, are left out
// unless ignoreVisibility is set. Active never modifies its inputs.
func Active(ql *QuestLocation, quest *Quest, states StateLookup, ignoreVisibility bool) EncounterMap[bool] {
	var result EncounterMap[bool]
	if ql == nil || ql.IsEmpty() {
		return result
	}
	if quest.Vis != Visible && !ignoreVisibility {
		return result
	}
	ql.Each(func(et EncounterType, e *Encounter) {
		if e.Vis != Visible && !ignoreVisibility {
			return
		}
		result.Set(et, isActive(quest.State, et, e, states))
	})
	return result
}

func isActive(state QuestState, et EncounterType, e *Encounter, states StateLookup) bool {
	switch state {
	case NotFound:
		switch et {
		case Unless:
			return true
		case Gain:
			if e.Prerequisite == nil {
				return true
			}
			s, ok := states.QuestState(*e.Prerequisite)
			return ok && s == Removed
		}
		return false
	case InGame:
		return et == When || et == Complete || et == Lose
	}
	return false
}

// AnyActive reports whether at least one entry of an activation map is true.
func AnyActive(m *EncounterMap[bool]) bool {
	found := false
	m.Each(func(_ EncounterType, v *bool) {
		if *v {
			found = true
		}
	})
	return found
}
