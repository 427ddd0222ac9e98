package model

// MarshalText renders v by its String form.
func (v Vis) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// MarshalText renders s by its String form.
func (s QuestState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// MarshalText renders et by its interchange tag.
func (et EncounterType) MarshalText() ([]byte, error) { return []byte(et.CSV()), nil }
