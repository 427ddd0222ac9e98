package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
)

func sampleJournal(t *testing.T) *journal.Journal {
	t.Helper()
	j := journal.New(nil)
	q := j.QuestOrNew(2)
	q.State = model.InGame
	q.Vis = model.HiddenThisCampaign
	q.Note = "compass needle points north"
	q.At(3).Set(model.Gain, model.Encounter{Prerequisite: model.Prereq(4), Vis: model.HiddenForever})
	q.At(3).Set(model.Complete, model.Encounter{})
	q.At(11).Set(model.When, model.Encounter{Vis: model.HiddenThisCampaign})
	j.SetQuestNote(7, "bell rang twice")
	j.SetLocationNote(5, "harbor")
	raid, _ := j.Quest(catalog.Raid())
	raid.State = model.Removed
	j.Cleanup()
	return j
}

func TestRoundTrip(t *testing.T) {
	j := sampleJournal(t)
	blob, err := Marshal(j)
	require.NoError(t, err)

	got := journal.New(nil)
	v, err := Load(got, blob)
	require.NoError(t, err)
	assert.Equal(t, V3, v)
	assert.Equal(t, j, got)
}

func TestEncodeShape(t *testing.T) {
	j := journal.New(nil)
	j.QuestOrNew(2).At(3).Set(model.Gain, model.Encounter{Prerequisite: model.Prereq(5)})
	j.SetLocationNote(4, "n")

	blob, err := Marshal(j)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(blob, &raw))
	assert.Contains(t, raw, "version_3")
	assert.Nil(t, raw["version_3"])
	assert.Equal(t, map[string]any{"4": "n"}, raw["locations"])

	quests := raw["quests"].(map[string]any)
	assert.Equal(t, []any{float64(0), map[string]any{"3": map[string]any{"1": []any{float64(5), float64(0)}}}, "", float64(0)}, quests["2"])
	// built-ins keep their state but not the prologue encounter
	assert.Equal(t, []any{float64(1), map[string]any{}, "", float64(0)}, quests["0"])
}

func TestDecodeV1(t *testing.T) {
	blob := []byte(`{
		"version_1": null,
		"quests": {
			"2": [1, {"3": {"1": 4, "3": null}, "0": {"0": null}}, "old note"],
			"99": [1, {"3": {"1": null}}, "unknown quest"],
			"6": [0, {"7": {"0": 2}, "40": {"1": null}}, ""]
		},
		"locations": {"5": "harbor", "0": "prologue note", "77": "gone"},
		"game_language": "en"
	}`)

	got := journal.New(nil)
	v, err := Load(got, blob)
	require.NoError(t, err)
	assert.Equal(t, V1, v)

	q, ok := got.Quest(2)
	require.True(t, ok)
	assert.Equal(t, model.InGame, q.State)
	assert.Equal(t, model.Visible, q.Vis)
	assert.Equal(t, "old note", q.Note)
	assert.NotContains(t, q.Encounter, catalog.Prologue())
	ql := q.Encounter[3]
	require.NotNil(t, ql)
	gain, ok := ql.Get(model.Gain)
	require.True(t, ok)
	require.NotNil(t, gain.Prerequisite)
	assert.Equal(t, catalog.QuestID(4), *gain.Prerequisite)
	assert.Equal(t, model.Visible, gain.Vis)
	complete, ok := ql.Get(model.Complete)
	require.True(t, ok)
	assert.Equal(t, model.Visible, complete.Vis)

	q6, ok := got.Quest(6)
	require.True(t, ok)
	unless, ok := q6.Encounter[7].Get(model.Unless)
	require.True(t, ok)
	assert.Nil(t, unless.Prerequisite, "prerequisite only kept on gain")

	_, ok = got.Quest(99)
	assert.False(t, ok)
	assert.Equal(t, []journal.LocationNote{{ID: 5, Note: "harbor"}}, got.Locations())
}

func TestDecodeV1WithoutLanguage(t *testing.T) {
	_, v, err := Decode([]byte(`{"version_1":null,"quests":{},"locations":{}}`))
	require.NoError(t, err)
	assert.Equal(t, V1, v)
}

func TestDecodeV1PairEncounters(t *testing.T) {
	blob := []byte(`{
		"version_1": null,
		"quests": {"2": [1, {"3": {"1": [4, 0], "3": [null, 2]}, "5": {"0": null}}, ""]},
		"locations": {},
		"game_language": "English"
	}`)
	d, v, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, V1, v)

	enc := d.Quests[2].Encounter
	require.NotNil(t, enc[3][1].Prerequisite)
	assert.Equal(t, 4, *enc[3][1].Prerequisite)
	assert.Equal(t, uint8(model.Visible), enc[3][1].Vis)
	assert.Nil(t, enc[3][3].Prerequisite)
	assert.Equal(t, uint8(model.HiddenForever), enc[3][3].Vis)
	assert.Contains(t, enc[5], uint8(0))

	_, _, err = Decode([]byte(`{"version_1":null,"quests":{"2":[1,{"3":{"1":[4]}},""]},"locations":{}}`))
	assert.Error(t, err, "a pair needs both elements")
}

func TestUpgradeDefaultsVisible(t *testing.T) {
	d := Upgrade(GameData1{Quests: map[int]Quest1{
		3: {State: 2, Encounter: map[int]map[uint8]Encounter1{4: {0: {}, 4: {}}}},
	}})
	q := d.Quests[3]
	assert.Equal(t, uint8(model.Visible), q.Vis)
	for _, e := range q.Encounter[4] {
		assert.Equal(t, uint8(model.Visible), e.Vis)
	}
	assert.Equal(t, uint8(2), q.State)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"empty", ``},
		{"not json", `quest`},
		{"array", `[]`},
		{"unknown key", `{"version_3":null,"quests":{},"locations":{},"extra":1}`},
		{"missing key", `{"version_3":null,"quests":{}}`},
		{"version 2", `{"version_2":null,"quests":{},"locations":{}}`},
		{"marker not null", `{"version_3":1,"quests":{},"locations":{}}`},
		{"short tuple", `{"version_3":null,"quests":{"2":[0,{},""]},"locations":{}}`},
		{"bad state", `{"version_3":null,"quests":{"2":[7,{},"",0]},"locations":{}}`},
		{"bad encounter type", `{"version_3":null,"quests":{"2":[0,{"3":{"9":[null,0]}},"",0]},"locations":{}}`},
		{"bad vis", `{"version_3":null,"quests":{"2":[0,{},"",3]},"locations":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.blob))
			assert.ErrorIs(t, err, ErrNoShape)
		})
	}
}

func TestLoadFailureLeavesBuiltIns(t *testing.T) {
	j := sampleJournal(t)
	_, err := Load(j, []byte(`{"nope":true}`))
	require.Error(t, err)
	assert.Equal(t, journal.New(nil), j)
}

func TestSettings(t *testing.T) {
	s, err := DecodeSettings([]byte(`{"game_language":"de","pane_todo":{"typ":"unless"},"future":42}`))
	require.NoError(t, err)
	assert.Equal(t, "de", s.GameLanguage)
	assert.Equal(t, "unless", s.PaneTodo.Typ)
	assert.Empty(t, s.PaneTodo.ShowKeywords)
	assert.False(t, s.PaneSettings.DarkMode)

	s.PaneSettings.DarkMode = true
	b, err := s.Marshal()
	require.NoError(t, err)
	back, err := DecodeSettings(b)
	require.NoError(t, err)
	assert.Equal(t, s, back)

	_, err = DecodeSettings([]byte(`{"quests_is_map":"yes"}`))
	assert.Error(t, err)
}
