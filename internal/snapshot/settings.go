package snapshot

import "encoding/json"

// Settings is the settings blob. It is not versioned: missing fields keep
// their zero value and unknown fields are ignored.
type Settings struct {
	UILanguage   string       `json:"ui_language"`
	GameLanguage string       `json:"game_language"`
	QuestsIsMap  bool         `json:"quests_is_map"`
	PaneTodo     PaneTodo     `json:"pane_todo"`
	PaneSettings PaneSettings `json:"pane_settings"`
}

// PaneTodo holds the to-do filter by its String forms.
type PaneTodo struct {
	ShowKeywords string `json:"show_keywords"`
	Typ          string `json:"typ"`
}

// PaneSettings holds display preferences.
type PaneSettings struct {
	DarkMode bool `json:"dark_mode"`
}

// DecodeSettings parses a settings blob.
func DecodeSettings(b []byte) (Settings, error) {
	var s Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Marshal encodes s.
func (s Settings) Marshal() ([]byte, error) {
	return json.Marshal(s)
}
