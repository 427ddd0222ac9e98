package app

import (
	"bytes"
	"errors"

	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/csvio"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
	"go.uber.org/zap"
)

// pane is one view with its own state. update handles the messages that
// target it; resetToNew drops state that may refer to a replaced journal.
type pane interface {
	update(a *App, m Msg) Result
	resetToNew()
}

type todoPane struct {
	filter journal.TodoFilter
}

func (p *todoPane) update(_ *App, m Msg) Result {
	switch m := m.(type) {
	case TodoFilterMsg:
		if p.filter == m.Filter {
			return 0
		}
		p.filter = m.Filter
		return Render | SaveSettings
	}
	return 0
}

func (p *todoPane) resetToNew() {}

type mapLocationPane struct {
	location catalog.LocationID
}

func (p *mapLocationPane) open(l catalog.LocationID) { p.location = l }

func (p *mapLocationPane) update(a *App, m Msg) Result {
	switch m := m.(type) {
	case LocationNoteMsg:
		if a.journal.SetLocationNote(p.location, m.Note) {
			return Render | SaveGameData
		}
	}
	return 0
}

func (p *mapLocationPane) resetToNew() {}

// NewEncounterPage is the step of the new encounter dialog.
type NewEncounterPage uint8

const (
	PageSelectType NewEncounterPage = iota
	PageSelectQuest
	PageNoteAndPrerequisite
)

type newEncounterPane struct {
	page         NewEncounterPage
	location     catalog.LocationID
	typ          model.EncounterType
	quest        catalog.QuestID
	prerequisite *catalog.QuestID
}

func (p *newEncounterPane) open(l catalog.LocationID) {
	*p = newEncounterPane{location: l, page: PageSelectType}
}

func (p *newEncounterPane) update(a *App, m Msg) Result {
	switch m := m.(type) {
	case SelectEncounterTypeMsg:
		if !m.Type.Valid() {
			return 0
		}
		p.typ = m.Type
		p.page = PageSelectQuest
		return Render
	case SelectQuestMsg:
		if p.page != PageSelectQuest || !a.journal.AllowedNewEncounter(p.typ, m.Quest) {
			return 0
		}
		p.quest = m.Quest
		p.prerequisite = nil
		p.page = PageNoteAndPrerequisite
		return Render
	case SetPrerequisiteMsg:
		if p.page != PageNoteAndPrerequisite || p.typ != model.Gain {
			return 0
		}
		if m.Quest != nil && *m.Quest == p.quest {
			return 0
		}
		p.prerequisite = m.Quest
		return 0
	case SaveEncounterMsg:
		if p.page != PageNoteAndPrerequisite {
			return 0
		}
		a.journal.AddEncounter(p.location, p.typ, p.quest, p.prerequisite, m.Note)
		a.push(BackMsg{})
		return SaveGameData
	}
	return 0
}

func (p *newEncounterPane) resetToNew() {
	p.page = PageSelectType
	p.prerequisite = nil
}

type actionPane struct {
	quest    catalog.QuestID
	location catalog.LocationID
	isMap    bool
}

// open points the pane at quest q and location l. It reports false when
// the quest has no encounters there.
func (p *actionPane) open(j *journal.Journal, q catalog.QuestID, l catalog.LocationID, isMap bool) bool {
	if !j.HasEncounterAt(q, l) {
		return false
	}
	p.quest, p.location, p.isMap = q, l, isMap
	return true
}

func (p *actionPane) update(a *App, m Msg) Result {
	switch m := m.(type) {
	case PerformMsg:
		a.journal.Perform(p.quest, m.Type)
		a.push(BackMsg{})
		return SaveGameData
	case HideMsg:
		a.journal.Hide(p.quest, p.location, m.Type, m.Vis)
		if m.Back {
			a.push(BackMsg{})
		}
		return SaveGameData
	case HideQuestMsg:
		a.journal.HideQuest(p.quest, m.Vis)
		a.push(BackMsg{})
		return SaveGameData
	case ActionNoteMsg:
		if a.journal.SetQuestNote(p.quest, m.Note) {
			return SaveGameData
		}
	}
	return 0
}

func (p *actionPane) resetToNew() {}

type encounterKey struct {
	location catalog.LocationID
	typ      model.EncounterType
}

type editQuestPane struct {
	quest   catalog.QuestID
	working *model.Quest
	remove  map[encounterKey]bool
}

// open starts editing a copy of quest q. It reports false when q has no
// record.
func (p *editQuestPane) open(j *journal.Journal, q catalog.QuestID) bool {
	rec, ok := j.Quest(q)
	if !ok {
		return false
	}
	p.quest = q
	p.working = rec.Clone()
	p.remove = map[encounterKey]bool{}
	return true
}

func (p *editQuestPane) update(a *App, m Msg) Result {
	if p.working == nil {
		return 0
	}
	switch m := m.(type) {
	case EditStateMsg:
		p.working.State = m.State
	case EditVisMsg:
		p.working.Vis = m.Vis
	case EditEncounterVisMsg:
		if ql, ok := p.working.Encounter[m.Location]; ok {
			if e := ql.Ptr(m.Type); e != nil {
				e.Vis = m.Vis
			}
		}
		delete(p.remove, encounterKey{m.Location, m.Type})
	case KillEncounterMsg:
		p.remove[encounterKey{m.Location, m.Type}] = true
	case SaveQuestMsg:
		if m.Note != nil {
			p.working.Note = *m.Note
		}
		a.journal.ReplaceQuest(p.quest, p.working)
		for k := range p.remove {
			a.journal.RemoveEncounter(p.quest, k.location, k.typ)
		}
		p.working = nil
		a.push(GoMsg{Route: Edit()})
		return SaveGameData
	}
	return 0
}

func (p *editQuestPane) resetToNew() {
	p.working = nil
	p.remove = nil
}

// Alert levels.
const (
	AlertInfo   = "info"
	AlertDanger = "danger"
)

// Alert is the outcome of a CSV import shown by the settings pane.
type Alert struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Rows    string `json:"rows,omitempty"`
}

type settingsPane struct {
	darkMode bool
	alert    *Alert
}

func (p *settingsPane) update(a *App, m Msg) Result {
	switch m := m.(type) {
	case GameLanguageMsg:
		if a.journal.Locale().Language() == m.Language {
			return 0
		}
		a.journal.Locale().SetLanguage(m.Language)
		return Render | SaveGameData | SaveSettings
	case UILanguageMsg:
		if _, ok := catalog.LanguageFromCode(m.Code); !ok || a.uiLanguage == m.Code {
			return 0
		}
		a.uiLanguage = m.Code
		return Render | SaveSettings
	case DarkModeMsg:
		p.darkMode = m.On
		return SaveSettings
	case NewCampaignMsg:
		a.journal.NewCampaign()
		a.push(ResetToNewMsg{})
		return SaveGameData
	case ClearMsg:
		a.journal.ClearAll()
		a.push(ResetToNewMsg{})
		return SaveGameData
	case ImportMsg:
		p.alert = p.importCSV(a, m.Data)
		a.push(ResetToNewMsg{})
		return SaveGameData
	case CloseAlertMsg:
		p.alert = nil
		return Render
	}
	return 0
}

func (p *settingsPane) importCSV(a *App, data []byte) *Alert {
	rows, err := csvio.Import(bytes.NewReader(data), a.journal)
	if err != nil {
		a.log.Info("csv import rejected", zap.Error(err))
		return &Alert{Level: AlertDanger, Message: importFailure(err)}
	}
	if rows != "" {
		return &Alert{Level: AlertInfo, Message: "The following rows have errors and are skipped:", Rows: rows}
	}
	return nil
}

func importFailure(err error) string {
	switch {
	case errors.Is(err, csvio.ErrHeader):
		return "Header"
	case errors.Is(err, csvio.ErrLanguage):
		return "Language"
	}
	return "CsvError"
}

// The alert outlives a reset so the import result stays visible.
func (p *settingsPane) resetToNew() {}
