package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/config"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
	"github.com/rcliao/quest-journal/internal/store"
)

const csvHeader = "type,location,quest,status,prerequisite,visibility,note\n"

func testConfig() *config.Config {
	return &config.Config{
		Format:              "text",
		TickInterval:        10 * time.Second,
		HistoryKeep:         20,
		DefaultGameLanguage: "en",
	}
}

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestApp(t *testing.T, st store.Store) *App {
	t.Helper()
	a := New(testConfig(), st, zap.NewNop())
	require.NoError(t, a.Load(context.Background()))
	return a
}

func dispatch(t *testing.T, a *App, msgs ...Msg) {
	t.Helper()
	_, err := a.Dispatch(context.Background(), msgs...)
	require.NoError(t, err)
}

func versions(t *testing.T, st store.Store, key string) int {
	t.Helper()
	entries, err := st.Get(context.Background(), store.GetParams{Key: key, History: true})
	if errors.Is(err, store.ErrNotFound) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

func TestLoadEmptyStore(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	assert.Equal(t, 2, a.journal.Len())
	assert.Equal(t, RouteInfo, a.Route().Kind)
	assert.Equal(t, journal.DefaultTodoFilter(), a.TodoFilter())
}

func TestPerformGoesBackAndSaves(t *testing.T) {
	st := newTestStore(t)
	a := newTestApp(t, st)
	a.journal.QuestOrNew(2).At(3).Set(model.Gain, model.Encounter{})

	dispatch(t, a, GoMsg{Route: Todo()}, GoMsg{Route: TodoAction(2, 3)})
	assert.Equal(t, TodoAction(2, 3), a.Route())
	assert.Zero(t, versions(t, st, store.KeyGameData), "navigation alone does not save")

	dispatch(t, a, PerformMsg{Type: model.Gain})
	assert.Equal(t, Todo(), a.Route())
	state, _ := a.journal.QuestState(2)
	assert.Equal(t, model.InGame, state)
	assert.Equal(t, 1, versions(t, st, store.KeyGameData))

	b := newTestApp(t, st)
	state, ok := b.journal.QuestState(2)
	require.True(t, ok)
	assert.Equal(t, model.InGame, state)
}

func TestRouteGuards(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	a.journal.QuestOrNew(2).At(3).Set(model.When, model.Encounter{})

	dispatch(t, a, GoMsg{Route: TodoAction(5, 3)})
	assert.Equal(t, Todo(), a.Route())

	dispatch(t, a, GoMsg{Route: MapAction(4, 2)})
	assert.Equal(t, MapLocation(4), a.Route())

	dispatch(t, a, GoMsg{Route: MapAction(3, 2)})
	assert.Equal(t, MapAction(3, 2), a.Route())

	dispatch(t, a, GoMsg{Route: EditQuest(9)})
	assert.Equal(t, Edit(), a.Route())
}

func TestBackOnEmptyHistory(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	dispatch(t, a, BackMsg{})
	assert.Equal(t, Todo(), a.Route())
}

func TestQuestsIsMapFollowsRoute(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	dispatch(t, a, GoMsg{Route: MapLocation(4)})
	assert.True(t, a.Settings().QuestsIsMap)
	assert.True(t, a.Settings().Pending)

	dispatch(t, a, GoMsg{Route: Todo()})
	assert.False(t, a.Settings().QuestsIsMap)
}

func TestHideAndNote(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	a.journal.QuestOrNew(2).At(3).Set(model.Gain, model.Encounter{})

	dispatch(t, a, GoMsg{Route: Map()}, GoMsg{Route: MapLocation(3)}, GoMsg{Route: MapAction(3, 2)})
	dispatch(t, a, ActionNoteMsg{Note: "ask the smith"})
	assert.Equal(t, MapAction(3, 2), a.Route(), "note keeps the pane open")

	dispatch(t, a, HideMsg{Type: model.Gain, Vis: model.HiddenThisCampaign, Back: true})
	assert.Equal(t, MapLocation(3), a.Route())

	q, _ := a.journal.Quest(2)
	assert.Equal(t, "ask the smith", q.Note)
	e, _ := q.Encounter[3].Get(model.Gain)
	assert.Equal(t, model.HiddenThisCampaign, e.Vis)

	dispatch(t, a, GoMsg{Route: MapAction(3, 2)}, HideQuestMsg{Vis: model.HiddenForever})
	assert.Equal(t, model.HiddenForever, q.Vis)
	assert.Equal(t, MapLocation(3), a.Route())
}

func TestLocationNote(t *testing.T) {
	st := newTestStore(t)
	a := newTestApp(t, st)
	dispatch(t, a, GoMsg{Route: MapLocation(7)}, LocationNoteMsg{Note: "a locked gate"})
	assert.Equal(t, "a locked gate", a.journal.LocationNote(7))

	dispatch(t, a, LocationNoteMsg{Note: "a locked gate"})
	assert.Equal(t, 1, versions(t, st, store.KeyGameData), "unchanged note is not saved")

	notes, err := st.SearchNotes(context.Background(), store.SearchParams{Query: "gate"})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "location", notes[0].Kind)
	assert.Equal(t, 7, notes[0].Ref)
}

func TestEditQuestWorkingCopy(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	q := a.journal.QuestOrNew(2)
	q.State = model.InGame
	q.At(3).Set(model.Gain, model.Encounter{})
	q.At(3).Set(model.When, model.Encounter{})

	dispatch(t, a, GoMsg{Route: Edit()}, GoMsg{Route: EditQuest(2)})
	dispatch(t, a,
		EditStateMsg{State: model.Removed},
		EditEncounterVisMsg{Location: 3, Type: model.Gain, Vis: model.HiddenForever},
		KillEncounterMsg{Location: 3, Type: model.When},
	)
	orig, _ := a.journal.Quest(2)
	assert.Equal(t, model.InGame, orig.State, "journal untouched before save")

	note := "done"
	dispatch(t, a, SaveQuestMsg{Note: &note})
	assert.Equal(t, Edit(), a.Route())

	saved, _ := a.journal.Quest(2)
	assert.Equal(t, model.Removed, saved.State)
	assert.Equal(t, "done", saved.Note)
	assert.Equal(t, []model.EncounterType{model.Gain}, saved.Encounter[3].Keys())
	e, _ := saved.Encounter[3].Get(model.Gain)
	assert.Equal(t, model.HiddenForever, e.Vis)
}

func TestEditBuiltInKeepsInGame(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	dispatch(t, a, GoMsg{Route: EditQuest(catalog.Raid())}, EditStateMsg{State: model.NotFound}, SaveQuestMsg{})
	state, _ := a.journal.QuestState(catalog.Raid())
	assert.Equal(t, model.InGame, state)
}

func TestEditBuiltInKeepsPrologueGain(t *testing.T) {
	st := newTestStore(t)
	a := newTestApp(t, st)
	dispatch(t, a,
		GoMsg{Route: Edit()},
		GoMsg{Route: EditQuest(catalog.Raid())},
		KillEncounterMsg{Location: catalog.Prologue(), Type: model.Gain},
		SaveQuestMsg{},
	)
	q, ok := a.journal.Quest(catalog.Raid())
	require.True(t, ok, "raid stays in the journal after the edit")
	assert.True(t, q.Encounter[catalog.Prologue()].Contains(model.Gain))

	dispatch(t, a, GoMsg{Route: Settings()}, NewCampaignMsg{})
	_, ok = a.journal.Quest(catalog.Raid())
	assert.True(t, ok, "raid stays in the journal after a new campaign")

	b := newTestApp(t, st)
	_, ok = b.journal.Quest(catalog.Raid())
	assert.True(t, ok)
}

func TestNewEncounterFlow(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	dispatch(t, a, GoMsg{Route: MapLocation(3)}, GoMsg{Route: MapNewQuest(3)})
	assert.Equal(t, PageSelectType, a.NewEncounterPage())

	dispatch(t, a, SelectEncounterTypeMsg{Type: model.Complete}, SelectQuestMsg{Quest: 2})
	assert.Equal(t, PageSelectQuest, a.NewEncounterPage(), "complete needs an in-game quest")

	dispatch(t, a,
		SelectEncounterTypeMsg{Type: model.Gain},
		SelectQuestMsg{Quest: 2},
		SetPrerequisiteMsg{Quest: model.Prereq(4)},
		SaveEncounterMsg{Note: "found a map"},
	)
	assert.Equal(t, MapLocation(3), a.Route())

	q, ok := a.journal.Quest(2)
	require.True(t, ok)
	assert.Equal(t, model.InGame, q.State)
	assert.Equal(t, "found a map", q.Note)
	e, ok := q.Encounter[3].Get(model.Gain)
	require.True(t, ok)
	require.NotNil(t, e.Prerequisite)
	assert.Equal(t, catalog.QuestID(4), *e.Prerequisite)
}

func TestSettingsWrittenOnTick(t *testing.T) {
	st := newTestStore(t)
	a := newTestApp(t, st)
	f := journal.TodoFilter{Keywords: journal.Both, Type: journal.TodoUnless}

	dispatch(t, a, TodoFilterMsg{Filter: f}, DarkModeMsg{On: true})
	assert.Zero(t, versions(t, st, store.KeySettings))

	dispatch(t, a, TickMsg{})
	assert.Equal(t, 1, versions(t, st, store.KeySettings))
	dispatch(t, a, TickMsg{})
	assert.Equal(t, 1, versions(t, st, store.KeySettings), "clean settings are not rewritten")

	b := newTestApp(t, st)
	assert.Equal(t, f, b.TodoFilter())
	assert.True(t, b.Settings().DarkMode)
}

func TestCloseFlushesSettings(t *testing.T) {
	st := newTestStore(t)
	a := New(testConfig(), st, zap.NewNop())
	require.NoError(t, a.Load(context.Background()))
	dispatch(t, a, UILanguageMsg{Code: "de"})
	require.NoError(t, a.Flush(context.Background()))
	assert.Equal(t, 1, versions(t, st, store.KeySettings))
	assert.Equal(t, "de", a.Settings().UILanguage)
}

func TestGameLanguagePersists(t *testing.T) {
	st := newTestStore(t)
	a := newTestApp(t, st)
	de, ok := catalog.LanguageFromCode("de")
	require.True(t, ok)

	dispatch(t, a, GameLanguageMsg{Language: de}, TickMsg{})
	b := newTestApp(t, st)
	assert.Equal(t, de, b.journal.Locale().Language())
}

func TestRunTicks(t *testing.T) {
	st := newTestStore(t)
	cfg := testConfig()
	cfg.TickInterval = 10 * time.Millisecond
	a := New(cfg, st, zap.NewNop())
	require.NoError(t, a.Load(context.Background()))
	dispatch(t, a, DarkModeMsg{On: true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return !a.Settings().Pending
	}, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 1, versions(t, st, store.KeySettings))
}

func TestNewCampaignAndClear(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	q := a.journal.QuestOrNew(2)
	q.State = model.Removed
	q.Vis = model.HiddenThisCampaign
	q.At(3).Set(model.Gain, model.Encounter{})
	raid, _ := a.journal.Quest(catalog.Raid())
	raid.State = model.Removed

	dispatch(t, a, GoMsg{Route: Settings()}, NewCampaignMsg{})
	assert.Equal(t, Todo(), a.Route())
	assert.Equal(t, model.NotFound, q.State)
	assert.Equal(t, model.Visible, q.Vis)
	assert.Equal(t, model.InGame, raid.State)

	dispatch(t, a, ClearMsg{})
	assert.Equal(t, 2, a.journal.Len())
}

func TestImportAlerts(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	dispatch(t, a, GoMsg{Route: Settings()}, ImportMsg{Data: []byte("type,location\n")})
	al := a.Alert()
	require.NotNil(t, al)
	assert.Equal(t, AlertDanger, al.Level)
	assert.Equal(t, "Header", al.Message)

	in := csvHeader +
		"language,,,en,,,x\n" +
		"quest,,Storm Pact,removed,,,pact\n" +
		"quest,,Nobody,removed,,,\n"
	dispatch(t, a, ImportMsg{Data: []byte(in)})
	al = a.Alert()
	require.NotNil(t, al)
	assert.Equal(t, AlertInfo, al.Level)
	assert.Equal(t, "4", al.Rows)
	q, ok := a.journal.Quest(5)
	require.True(t, ok)
	assert.Equal(t, "pact", q.Note)

	dispatch(t, a, CloseAlertMsg{})
	assert.Nil(t, a.Alert())
}

func TestHistoryKeep(t *testing.T) {
	st := newTestStore(t)
	cfg := testConfig()
	cfg.HistoryKeep = 2
	a := New(cfg, st, zap.NewNop())
	require.NoError(t, a.Load(context.Background()))

	dispatch(t, a, GoMsg{Route: MapLocation(3)})
	for _, n := range []string{"a", "b", "c"} {
		dispatch(t, a, LocationNoteMsg{Note: n})
	}
	assert.Equal(t, 2, versions(t, st, store.KeyGameData))
}

type failingStore struct {
	store.Store
}

func (failingStore) Put(context.Context, string, string) (*store.Entry, error) {
	return nil, errors.New("disk full")
}

func TestStoreFailureKeepsJournal(t *testing.T) {
	st := failingStore{Store: newTestStore(t)}
	a := newTestApp(t, st)

	dispatch(t, a, GoMsg{Route: MapLocation(3)})
	_, err := a.Dispatch(context.Background(), LocationNoteMsg{Note: "kept"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "kept", a.journal.LocationNote(3))
}

func TestRouterHistory(t *testing.T) {
	var r Router
	assert.Equal(t, Info(), r.Current())
	r.Go(Todo())
	r.Go(MapLocation(2))
	r.Replace(MapLocation(3))
	assert.Equal(t, MapLocation(3), r.Current())
	r.Back()
	assert.Equal(t, Todo(), r.Current())
	r.Back()
	assert.Equal(t, Todo(), r.Current())
	assert.Equal(t, 1, r.Len())

	l := catalog.NewLocale(catalog.DefaultLanguage())
	assert.Equal(t, "map/3/Lost Compass", MapAction(3, 2).Path(l))
	assert.Equal(t, "settings", Settings().Path(l))
}
