package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	c := defaultCatalog
	require.NotNil(t, c)
	assert.GreaterOrEqual(t, c.QuestCount(), 2)
	assert.GreaterOrEqual(t, c.LocationCount(), 2)
	assert.False(t, Raid().IsKeyword())
	assert.True(t, Cottage().IsKeyword())
}

func TestRawBounds(t *testing.T) {
	_, ok := QuestFromRaw(0)
	assert.True(t, ok)
	_, ok = QuestFromRaw(defaultCatalog.QuestCount())
	assert.False(t, ok)
	_, ok = QuestFromRaw(-1)
	assert.False(t, ok)

	_, ok = LocationFromRaw(0)
	assert.False(t, ok, "prologue is never persisted")
	l, ok := LocationFromRaw(1)
	assert.True(t, ok)
	assert.Equal(t, "1", l.Name(DefaultLanguage()))
	_, ok = LocationFromRaw(defaultCatalog.LocationCount())
	assert.False(t, ok)
}

func TestLanguages(t *testing.T) {
	en, ok := LanguageFromCode("en")
	require.True(t, ok)
	assert.Equal(t, "English", en.Name())
	de, ok := LanguageFromCode("de")
	require.True(t, ok)
	assert.Equal(t, "Prolog", Prologue().Name(de))
	_, ok = LanguageFromCode("English")
	assert.False(t, ok)
}

func TestLocaleSortsByCollation(t *testing.T) {
	de, _ := LanguageFromCode("de")
	l := NewLocale(de)

	names := l.Quests()
	require.Len(t, names, defaultCatalog.QuestCount())

	pos := map[string]int{}
	for i, n := range names {
		pos[n.Name] = i
	}
	// collation puts Ö next to O instead of after Z
	assert.Less(t, pos["Ödes Land"], pos["Salzhändler"])
	assert.Less(t, pos["Mondhafen"], pos["Ödes Land"])
}

func TestLocaleResolve(t *testing.T) {
	l := NewLocale(DefaultLanguage())

	q, ok := l.ResolveQuest("The Cottage")
	require.True(t, ok)
	assert.Equal(t, Cottage(), q)

	_, ok = l.ResolveQuest("Die Hütte")
	assert.False(t, ok)

	de, _ := LanguageFromCode("de")
	l.SetLanguage(de)
	q, ok = l.ResolveQuest("Die Hütte")
	require.True(t, ok)
	assert.Equal(t, Cottage(), q)

	loc, ok := l.ResolveLocation("7")
	require.True(t, ok)
	assert.Equal(t, LocationID(7), loc)

	_, ok = l.ResolveLocation("Prolog")
	assert.False(t, ok, "prologue is not resolvable by name")
}

func TestParseRejectsBadCatalog(t *testing.T) {
	_, err := Parse([]byte("languages: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte(`
languages:
  - {code: en, name: English, prologue: Prologue}
locations:
  - {name: "", page: ""}
  - {name: "1", page: "1"}
quests:
  - {keyword: false, names: {en: A}}
  - {keyword: false, names: {en: A}}
`))
	assert.ErrorContains(t, err, "duplicate")

	_, err = Parse([]byte("bogus: 1\n"))
	assert.Error(t, err)
}
