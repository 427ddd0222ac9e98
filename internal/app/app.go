// Package app is the event core of the journal: it owns the journal, the
// panes and the router, drains a message queue per call and persists the
// results.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/config"
	"github.com/rcliao/quest-journal/internal/csvio"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/snapshot"
	"github.com/rcliao/quest-journal/internal/store"
	"go.uber.org/zap"
)

// App serializes every access to the journal behind one mutex. Each
// Dispatch drains the queue, including follow-up messages queued by
// handlers, before it returns.
type App struct {
	mu    sync.Mutex
	queue []Msg

	journal *journal.Journal
	store   store.Store
	cfg     *config.Config
	log     *zap.Logger

	router        Router
	route         Route
	questsIsMap   bool
	uiLanguage    string
	settingsDirty bool

	todo         todoPane
	location     mapLocationPane
	newEncounter newEncounterPane
	action       actionPane
	editQuest    editQuestPane
	settings     settingsPane
}

// New returns an App over st. Call Load to read the persisted state.
func New(cfg *config.Config, st store.Store, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	lang, ok := catalog.LanguageFromCode(cfg.DefaultGameLanguage)
	if !ok {
		lang = catalog.DefaultLanguage()
	}
	return &App{
		journal:    journal.New(catalog.NewLocale(lang)),
		store:      st,
		cfg:        cfg,
		log:        log.Named("app"),
		route:      Info(),
		uiLanguage: lang.Code(),
		todo:       todoPane{filter: journal.DefaultTodoFilter()},
	}
}

// Load reads the settings blob and then the game data. Missing or
// unreadable blobs leave the defaults in place; only store failures are
// returned.
func (a *App) Load(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.journal.Reset()

	blob, err := a.latest(ctx, store.KeySettings)
	if err != nil {
		return err
	}
	if blob != nil {
		s, err := snapshot.DecodeSettings(blob)
		if err != nil {
			a.log.Debug("settings ignored", zap.Error(err))
		} else {
			a.applySettings(s)
		}
	}

	blob, err = a.latest(ctx, store.KeyGameData)
	if err != nil {
		return err
	}
	if blob != nil {
		v, err := snapshot.Load(a.journal, blob)
		if err != nil {
			a.log.Debug("game data ignored", zap.Error(err))
		} else {
			a.log.Debug("game data loaded", zap.Int("version", int(v)), zap.Int("quests", a.journal.Len()))
		}
	}
	return nil
}

func (a *App) latest(ctx context.Context, key string) ([]byte, error) {
	entries, err := a.store.Get(ctx, store.GetParams{Key: key})
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return []byte(entries[0].Value), nil
}

func (a *App) applySettings(s snapshot.Settings) {
	if _, ok := catalog.LanguageFromCode(s.UILanguage); ok {
		a.uiLanguage = s.UILanguage
	}
	if lang, ok := catalog.LanguageFromCode(s.GameLanguage); ok {
		a.journal.Locale().SetLanguage(lang)
	}
	a.questsIsMap = s.QuestsIsMap
	if k, err := journal.ParseKeywordFilter(s.PaneTodo.ShowKeywords); err == nil {
		a.todo.filter.Keywords = k
	}
	if t, err := journal.ParseTodoType(s.PaneTodo.Typ); err == nil {
		a.todo.filter.Type = t
	}
	a.settings.darkMode = s.PaneSettings.DarkMode
}

func (a *App) currentSettings() snapshot.Settings {
	return snapshot.Settings{
		UILanguage:   a.uiLanguage,
		GameLanguage: a.journal.Locale().Language().Code(),
		QuestsIsMap:  a.questsIsMap,
		PaneTodo: snapshot.PaneTodo{
			ShowKeywords: a.todo.filter.Keywords.String(),
			Typ:          a.todo.filter.Type.String(),
		},
		PaneSettings: snapshot.PaneSettings{DarkMode: a.settings.darkMode},
	}
}

// push queues a follow-up message. Callers hold the lock.
func (a *App) push(m Msg) {
	a.queue = append(a.queue, m)
}

// Dispatch handles msgs in order. Every message queued while handling one
// of them is drained before the next is taken. The game data is persisted
// once at the end when any handler asked for it. It reports whether the
// view needs a render.
func (a *App) Dispatch(ctx context.Context, msgs ...Msg) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var r Result
	for _, m := range msgs {
		a.push(m)
		r |= a.drain(ctx)
	}

	var err error
	if r.Has(SaveGameData) {
		err = a.saveGameData(ctx)
	}
	return r.Has(Render), err
}

func (a *App) drain(ctx context.Context) Result {
	var r Result
	for len(a.queue) > 0 {
		m := a.queue[0]
		a.queue = a.queue[1:]
		r |= a.handle(ctx, m)
	}
	if r.Has(SaveSettings) {
		a.settingsDirty = true
	}
	return r
}

func (a *App) handle(ctx context.Context, m Msg) Result {
	switch m := m.(type) {
	case GoMsg:
		a.router.Go(m.Route)
		a.push(HistoryChangedMsg{})
		return 0
	case BackMsg:
		a.router.Back()
		a.push(HistoryChangedMsg{})
		return 0
	case HistoryChangedMsg:
		return a.historyChanged()
	case TickMsg:
		if err := a.flushSettings(ctx); err != nil {
			a.log.Warn("settings not saved", zap.Error(err))
		}
		return 0
	case ResetToNewMsg:
		for _, p := range a.panes() {
			p.resetToNew()
		}
		a.router.Replace(Todo())
		a.route = Todo()
		a.questsIsMap = false
		return Render
	case paneMsg:
		return m.target(a).update(a, m)
	}
	a.log.Warn("unhandled message", zap.String("type", fmt.Sprintf("%T", m)))
	return 0
}

func (a *App) panes() []pane {
	return []pane{&a.todo, &a.location, &a.newEncounter, &a.action, &a.editQuest, &a.settings}
}

// historyChanged moves to the router's current route. Routes whose
// preconditions fail are replaced by their parent view.
func (a *App) historyChanged() Result {
	cur := a.router.Current()
	var r Result
	switch {
	case cur.IsTodo() && a.questsIsMap:
		a.questsIsMap = false
		r |= SaveSettings
	case cur.IsMap() && !a.questsIsMap:
		a.questsIsMap = true
		r |= SaveSettings
	}

	switch cur.Kind {
	case RouteTodoAction:
		if !a.action.open(a.journal, cur.Quest, cur.Location, false) {
			return r | a.redirect(Todo())
		}
	case RouteMapAction:
		if !a.action.open(a.journal, cur.Quest, cur.Location, true) {
			return r | a.redirect(MapLocation(cur.Location))
		}
	case RouteMapLocation:
		a.location.open(cur.Location)
	case RouteMapNewQuest:
		a.newEncounter.open(cur.Location)
	case RouteEditQuest:
		if !a.editQuest.open(a.journal, cur.Quest) {
			return r | a.redirect(Edit())
		}
	}
	a.route = cur
	return r | Render
}

func (a *App) redirect(to Route) Result {
	a.log.Debug("route redirected", zap.String("to", to.Kind.String()))
	a.router.Replace(to)
	a.push(HistoryChangedMsg{})
	return 0
}

// saveGameData prunes the journal and writes it as the newest game-data
// version, refreshes the note index and drops old versions.
func (a *App) saveGameData(ctx context.Context) error {
	a.journal.Cleanup()
	blob, err := snapshot.Marshal(a.journal)
	if err != nil {
		return fmt.Errorf("encode game data: %w", err)
	}
	e, err := a.store.Put(ctx, store.KeyGameData, string(blob))
	if err != nil {
		a.log.Error("game data not saved", zap.Error(err))
		return fmt.Errorf("save game data: %w", err)
	}
	a.log.Debug("game data saved", zap.Int("version", e.Version), zap.Int("bytes", e.Size))

	if err := a.store.SyncNotes(ctx, a.notes()); err != nil {
		a.log.Error("note index not updated", zap.Error(err))
		return fmt.Errorf("sync notes: %w", err)
	}
	if keep := a.cfg.HistoryKeep; keep > 0 {
		n, err := a.store.Prune(ctx, store.KeyGameData, keep)
		if err != nil {
			a.log.Error("game data history not pruned", zap.Error(err))
			return fmt.Errorf("prune game data: %w", err)
		}
		if n > 0 {
			a.log.Debug("game data history pruned", zap.Int("removed", n))
		}
	}
	return nil
}

func (a *App) notes() []store.Note {
	var notes []store.Note
	for _, e := range a.journal.Quests() {
		if e.Quest.Note != "" {
			notes = append(notes, store.Note{Kind: "quest", Ref: e.ID.Raw(), Name: e.Name, Text: e.Quest.Note})
		}
	}
	loc := a.journal.Locale()
	for _, l := range a.journal.Locations() {
		notes = append(notes, store.Note{Kind: "location", Ref: l.ID.Raw(), Name: loc.LocationName(l.ID), Text: l.Note})
	}
	return notes
}

// flushSettings writes the settings blob when it changed. Callers hold
// the lock.
func (a *App) flushSettings(ctx context.Context) error {
	if !a.settingsDirty {
		return nil
	}
	blob, err := a.currentSettings().Marshal()
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if _, err := a.store.Put(ctx, store.KeySettings, string(blob)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if keep := a.cfg.HistoryKeep; keep > 0 {
		if _, err := a.store.Prune(ctx, store.KeySettings, keep); err != nil {
			return fmt.Errorf("prune settings: %w", err)
		}
	}
	a.settingsDirty = false
	a.log.Debug("settings saved")
	return nil
}

// Read runs fn with the journal under the lock. fn must not keep the
// journal or call back into the App.
func (a *App) Read(fn func(j *journal.Journal)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.journal)
}

// Export writes the journal as CSV.
func (a *App) Export(w io.Writer) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return csvio.Export(w, a.journal)
}

// Route returns the current view.
func (a *App) Route() Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// TodoFilter returns the filter of the to-do pane.
func (a *App) TodoFilter() journal.TodoFilter {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.todo.filter
}

// NewEncounterPage returns the step of the new encounter pane.
func (a *App) NewEncounterPage() NewEncounterPage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.newEncounter.page
}

// Alert returns the result of the last CSV import, if any.
func (a *App) Alert() *Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.settings.alert == nil {
		return nil
	}
	al := *a.settings.alert
	return &al
}

// SettingsView is the settings pane.
type SettingsView struct {
	UILanguage   string `json:"ui_language"`
	GameLanguage string `json:"game_language"`
	QuestsIsMap  bool   `json:"quests_is_map"`
	ShowKeywords string `json:"show_keywords"`
	TodoType     string `json:"todo_type"`
	DarkMode     bool   `json:"dark_mode"`
	Pending      bool   `json:"pending"`
}

// Settings returns the settings pane.
func (a *App) Settings() SettingsView {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.currentSettings()
	return SettingsView{
		UILanguage:   s.UILanguage,
		GameLanguage: s.GameLanguage,
		QuestsIsMap:  s.QuestsIsMap,
		ShowKeywords: s.PaneTodo.ShowKeywords,
		TodoType:     s.PaneTodo.Typ,
		DarkMode:     s.PaneSettings.DarkMode,
		Pending:      a.settingsDirty,
	}
}
