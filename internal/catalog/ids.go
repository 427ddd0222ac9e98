package catalog

import "golang.org/x/text/language"

// QuestID identifies a quest or keyword of the catalog.
type QuestID int

// LocationID identifies a location of the catalog. Location 0 is the prologue.
type LocationID int

// GameLanguage indexes the languages of the catalog.
type GameLanguage int

// Raid is the first built-in quest.
func Raid() QuestID { return 0 }

// Cottage is the second built-in quest.
func Cottage() QuestID { return 1 }

// IsBuiltIn reports whether q is one of the two built-in quests.
func (q QuestID) IsBuiltIn() bool { return q == Raid() || q == Cottage() }

// Raw returns the persisted form of the id.
func (q QuestID) Raw() int { return int(q) }

// QuestFromRaw validates a persisted quest id.
func QuestFromRaw(raw int) (QuestID, bool) {
	if raw < 0 || raw >= defaultCatalog.QuestCount() {
		return 0, false
	}
	return QuestID(raw), true
}

// IsKeyword reports whether the catalog lists q as a keyword rather than a quest.
func (q QuestID) IsKeyword() bool {
	return defaultCatalog.keywords[q]
}

// Name returns the quest name in the given game language.
func (q QuestID) Name(lang GameLanguage) string {
	return defaultCatalog.questNames[lang][q]
}

// AllQuests returns every quest id in id order.
func AllQuests() []QuestID {
	ids := make([]QuestID, defaultCatalog.QuestCount())
	for i := range ids {
		ids[i] = QuestID(i)
	}
	return ids
}

// Prologue is the location the built-in quests are gained at.
func Prologue() LocationID { return 0 }

// Raw returns the persisted form of the id.
func (l LocationID) Raw() int { return int(l) }

// LocationFromRaw validates a persisted location id. The prologue is never
// persisted, so 0 is rejected.
func LocationFromRaw(raw int) (LocationID, bool) {
	if raw <= 0 || raw >= defaultCatalog.LocationCount() {
		return 0, false
	}
	return LocationID(raw), true
}

// Name returns the location name. Only the prologue depends on the language.
func (l LocationID) Name(lang GameLanguage) string {
	if l == Prologue() {
		return defaultCatalog.languages[lang].Prologue
	}
	return defaultCatalog.locations[l].Name
}

// Page returns the atlas page of the location, empty when there is none.
func (l LocationID) Page() string {
	return defaultCatalog.locations[l].Page
}

// AllLocations returns every location id in id order, prologue first.
func AllLocations() []LocationID {
	ids := make([]LocationID, defaultCatalog.LocationCount())
	for i := range ids {
		ids[i] = LocationID(i)
	}
	return ids
}

// Languages returns all game languages in catalog order.
func Languages() []GameLanguage {
	langs := make([]GameLanguage, len(defaultCatalog.languages))
	for i := range langs {
		langs[i] = GameLanguage(i)
	}
	return langs
}

// DefaultLanguage is the first language of the catalog.
func DefaultLanguage() GameLanguage { return 0 }

// LanguageFromCode looks up a game language by its code, e.g. "en".
func LanguageFromCode(code string) (GameLanguage, bool) {
	for i, l := range defaultCatalog.languages {
		if l.Code == code {
			return GameLanguage(i), true
		}
	}
	return 0, false
}

// Code returns the language code used in files, e.g. "en".
func (g GameLanguage) Code() string { return defaultCatalog.languages[g].Code }

// Name returns the display name of the language.
func (g GameLanguage) Name() string { return defaultCatalog.languages[g].Name }

// Tag returns the BCP 47 tag of the language.
func (g GameLanguage) Tag() language.Tag { return defaultCatalog.tags[g] }
