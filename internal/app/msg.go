package app

import (
	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
)

// Msg is an event handled by the App.
type Msg interface {
	msg()
}

// paneMsg is a message owned by one pane.
type paneMsg interface {
	Msg
	target(a *App) pane
}

// Navigation and lifecycle.
type (
	// GoMsg navigates to a route.
	GoMsg struct{ Route Route }
	// BackMsg returns to the previous route.
	BackMsg struct{}
	// HistoryChangedMsg settles the current route and runs its guard.
	HistoryChangedMsg struct{}
	// TickMsg is sent by the settings timer.
	TickMsg struct{}
	// ResetToNewMsg resets every pane after the journal was replaced.
	ResetToNewMsg struct{}
)

func (GoMsg) msg() {}
func (BackMsg) msg() {}
func (HistoryChangedMsg) msg() {}
func (TickMsg) msg() {}
func (ResetToNewMsg) msg() {}

// To-do pane.
type (
	// TodoFilterMsg replaces the to-do filter.
	TodoFilterMsg struct{ Filter journal.TodoFilter }
)

// Map location pane.
type (
	// LocationNoteMsg replaces the note of the current location.
	LocationNoteMsg struct{ Note string }
)

// New encounter pane.
type (
	// SelectEncounterTypeMsg picks the type of the new encounter.
	SelectEncounterTypeMsg struct{ Type model.EncounterType }
	// SelectQuestMsg picks the quest of the new encounter.
	SelectQuestMsg struct{ Quest catalog.QuestID }
	// SetPrerequisiteMsg sets or clears the prerequisite of a new Gain.
	SetPrerequisiteMsg struct{ Quest *catalog.QuestID }
	// SaveEncounterMsg records the new encounter.
	SaveEncounterMsg struct{ Note string }
)

// Action pane.
type (
	// PerformMsg acts on an encounter of the current quest.
	PerformMsg struct{ Type model.EncounterType }
	// HideMsg sets the vis of one encounter, optionally going back.
	HideMsg struct {
		Type model.EncounterType
		Vis  model.Vis
		Back bool
	}
	// HideQuestMsg sets the vis of the current quest.
	HideQuestMsg struct{ Vis model.Vis }
	// ActionNoteMsg replaces the note of the current quest.
	ActionNoteMsg struct{ Note string }
)

// Edit quest pane. Changes go to a working copy until saved.
type (
	EditStateMsg        struct{ State model.QuestState }
	EditVisMsg          struct{ Vis model.Vis }
	EditEncounterVisMsg struct {
		Location catalog.LocationID
		Type     model.EncounterType
		Vis      model.Vis
	}
	KillEncounterMsg struct {
		Location catalog.LocationID
		Type     model.EncounterType
	}
	// SaveQuestMsg stores the working copy. A nil Note keeps the note.
	SaveQuestMsg struct{ Note *string }
)

// Settings pane.
type (
	GameLanguageMsg struct{ Language catalog.GameLanguage }
	UILanguageMsg   struct{ Code string }
	DarkModeMsg     struct{ On bool }
	NewCampaignMsg  struct{}
	ClearMsg        struct{}
	// ImportMsg carries the bytes of a CSV file read by the caller.
	ImportMsg     struct{ Data []byte }
	CloseAlertMsg struct{}
)

func (TodoFilterMsg) msg() {}
func (LocationNoteMsg) msg() {}
func (SelectEncounterTypeMsg) msg() {}
func (SelectQuestMsg) msg() {}
func (SetPrerequisiteMsg) msg() {}
func (SaveEncounterMsg) msg() {}
func (PerformMsg) msg() {}
func (HideMsg) msg() {}
func (HideQuestMsg) msg() {}
func (ActionNoteMsg) msg() {}
func (EditStateMsg) msg() {}
func (EditVisMsg) msg() {}
func (EditEncounterVisMsg) msg() {}
func (KillEncounterMsg) msg() {}
func (SaveQuestMsg) msg() {}
func (GameLanguageMsg) msg() {}
func (UILanguageMsg) msg() {}
func (DarkModeMsg) msg() {}
func (NewCampaignMsg) msg() {}
func (ClearMsg) msg() {}
func (ImportMsg) msg() {}
func (CloseAlertMsg) msg() {}

func (TodoFilterMsg) target(a *App) pane { return &a.todo }
func (LocationNoteMsg) target(a *App) pane { return &a.location }
func (SelectEncounterTypeMsg) target(a *App) pane { return &a.newEncounter }
func (SelectQuestMsg) target(a *App) pane { return &a.newEncounter }
func (SetPrerequisiteMsg) target(a *App) pane { return &a.newEncounter }
func (SaveEncounterMsg) target(a *App) pane { return &a.newEncounter }
func (PerformMsg) target(a *App) pane { return &a.action }
func (HideMsg) target(a *App) pane { return &a.action }
func (HideQuestMsg) target(a *App) pane { return &a.action }
func (ActionNoteMsg) target(a *App) pane { return &a.action }
func (EditStateMsg) target(a *App) pane { return &a.editQuest }
func (EditVisMsg) target(a *App) pane { return &a.editQuest }
func (EditEncounterVisMsg) target(a *App) pane { return &a.editQuest }
func (KillEncounterMsg) target(a *App) pane { return &a.editQuest }
func (SaveQuestMsg) target(a *App) pane { return &a.editQuest }
func (GameLanguageMsg) target(a *App) pane { return &a.settings }
func (UILanguageMsg) target(a *App) pane { return &a.settings }
func (DarkModeMsg) target(a *App) pane { return &a.settings }
func (NewCampaignMsg) target(a *App) pane { return &a.settings }
func (ClearMsg) target(a *App) pane { return &a.settings }
func (ImportMsg) target(a *App) pane { return &a.settings }
func (CloseAlertMsg) target(a *App) pane { return &a.settings }

// Result tells the App what a handled message requires.
type Result uint8

const (
	Render Result = 1 << iota
	SaveGameData
	SaveSettings
)

// Has reports whether every flag of o is set in r.
func (r Result) Has(o Result) bool { return r&o == o }
