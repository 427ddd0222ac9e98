package catalog

import (
	"sort"

	"golang.org/x/text/collate"
)

// QuestName pairs a quest with its localized name.
type QuestName struct {
	ID   QuestID
	Name string
}

// Locale resolves quest and location names for the active game language.
// Quest names are kept sorted by the language's collation order.
type Locale struct {
	language GameLanguage
	sorted   []QuestName
	byName   map[string]QuestID
}

// NewLocale returns a locale for lang.
func NewLocale(lang GameLanguage) *Locale {
	l := &Locale{}
	l.SetLanguage(lang)
	return l
}

// Language returns the active game language.
func (l *Locale) Language() GameLanguage { return l.language }

// SetLanguage switches the game language and re-sorts the quest names.
func (l *Locale) SetLanguage(lang GameLanguage) {
	l.language = lang
	names := make([]QuestName, 0, defaultCatalog.QuestCount())
	byName := make(map[string]QuestID, defaultCatalog.QuestCount())
	for _, q := range AllQuests() {
		name := q.Name(lang)
		names = append(names, QuestName{ID: q, Name: name})
		byName[name] = q
	}
	c := collate.New(lang.Tag())
	sort.SliceStable(names, func(i, j int) bool {
		return c.CompareString(names[i].Name, names[j].Name) < 0
	})
	l.sorted = names
	l.byName = byName
}

// Clone returns an independent copy.
func (l *Locale) Clone() *Locale {
	return NewLocale(l.language)
}

// Quests returns all quests of the catalog in name order.
func (l *Locale) Quests() []QuestName {
	return l.sorted
}

// QuestName returns the localized name of q.
func (l *Locale) QuestName(q QuestID) string {
	return q.Name(l.language)
}

// LocationName returns the localized name of loc.
func (l *Locale) LocationName(loc LocationID) string {
	return loc.Name(l.language)
}

// ResolveQuest finds a quest by its name in the active language.
func (l *Locale) ResolveQuest(name string) (QuestID, bool) {
	q, ok := l.byName[name]
	return q, ok
}

// ResolveLocation finds a non-prologue location by name.
func (l *Locale) ResolveLocation(name string) (LocationID, bool) {
	for _, loc := range AllLocations()[1:] {
		if loc.Name(l.language) == name {
			return loc, true
		}
	}
	return 0, false
}
