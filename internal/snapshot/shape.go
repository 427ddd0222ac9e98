// Package snapshot converts the journal to and from the versioned game-data
// blob, and holds the settings blob.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// GameData3 is the current snapshot shape.
//
//	{"version_3": null,
//	 "quests": {"<quest>": [state, {"<location>": {"<type>": [prerequisite|null, vis]}}, note, vis]},
//	 "locations": {"<location>": note}}
type GameData3 struct {
	Quests    map[int]Quest3
	Locations map[int]string
}

// Quest3 is one quest record of the v3 shape.
type Quest3 struct {
	State     uint8
	Encounter map[int]map[uint8]Encounter3
	Note      string
	Vis       uint8
}

// Encounter3 is one encounter record of the v3 shape.
type Encounter3 struct {
	Prerequisite *int
	Vis          uint8
}

// GameData1 is the oldest snapshot shape. Encounters carry their
// prerequisite, bare or as a [prerequisite, vis] pair, and quests have no
// visibility.
type GameData1 struct {
	Quests       map[int]Quest1
	Locations    map[int]string
	GameLanguage string
}

// Quest1 is one quest record of the v1 shape.
type Quest1 struct {
	State     uint8
	Encounter map[int]map[uint8]Encounter1
	Note      string
}

// Encounter1 is one encounter record of the v1 shape.
type Encounter1 struct {
	Prerequisite *int
	Vis          uint8
}

var (
	keysV3 = []string{"locations", "quests", "version_3"}
	keysV1 = []string{"locations", "quests", "version_1"}
)

// MarshalJSON writes the v3 shape.
func (d GameData3) MarshalJSON() ([]byte, error) {
	quests := d.Quests
	if quests == nil {
		quests = map[int]Quest3{}
	}
	locations := d.Locations
	if locations == nil {
		locations = map[int]string{}
	}
	return json.Marshal(struct {
		Version3  *struct{}      `json:"version_3"`
		Quests    map[int]Quest3 `json:"quests"`
		Locations map[int]string `json:"locations"`
	}{nil, quests, locations})
}

// UnmarshalJSON accepts exactly the v3 shape.
func (d *GameData3) UnmarshalJSON(b []byte) error {
	fields, err := object(b, keysV3, nil)
	if err != nil {
		return err
	}
	if err := null(fields["version_3"]); err != nil {
		return fmt.Errorf("version_3: %w", err)
	}
	var out GameData3
	if err := strict(fields["quests"], &out.Quests); err != nil {
		return fmt.Errorf("quests: %w", err)
	}
	if err := strict(fields["locations"], &out.Locations); err != nil {
		return fmt.Errorf("locations: %w", err)
	}
	*d = out
	return nil
}

func (q Quest3) MarshalJSON() ([]byte, error) {
	enc := q.Encounter
	if enc == nil {
		enc = map[int]map[uint8]Encounter3{}
	}
	return json.Marshal([]any{q.State, enc, q.Note, q.Vis})
}

func (q *Quest3) UnmarshalJSON(b []byte) error {
	var out Quest3
	if err := tuple(b, &out.State, &out.Encounter, &out.Note, &out.Vis); err != nil {
		return err
	}
	*q = out
	return nil
}

func (e Encounter3) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Prerequisite, e.Vis})
}

func (e *Encounter3) UnmarshalJSON(b []byte) error {
	var out Encounter3
	if err := tuple(b, &out.Prerequisite, &out.Vis); err != nil {
		return err
	}
	*e = out
	return nil
}

// MarshalJSON writes the v1 shape. It only exists to produce old blobs.
func (d GameData1) MarshalJSON() ([]byte, error) {
	quests := d.Quests
	if quests == nil {
		quests = map[int]Quest1{}
	}
	locations := d.Locations
	if locations == nil {
		locations = map[int]string{}
	}
	return json.Marshal(struct {
		Version1     *struct{}      `json:"version_1"`
		Quests       map[int]Quest1 `json:"quests"`
		Locations    map[int]string `json:"locations"`
		GameLanguage string         `json:"game_language,omitempty"`
	}{nil, quests, locations, d.GameLanguage})
}

// UnmarshalJSON accepts exactly the v1 shape. game_language is optional.
func (d *GameData1) UnmarshalJSON(b []byte) error {
	fields, err := object(b, keysV1, []string{"game_language"})
	if err != nil {
		return err
	}
	if err := null(fields["version_1"]); err != nil {
		return fmt.Errorf("version_1: %w", err)
	}
	var out GameData1
	if err := strict(fields["quests"], &out.Quests); err != nil {
		return fmt.Errorf("quests: %w", err)
	}
	if err := strict(fields["locations"], &out.Locations); err != nil {
		return fmt.Errorf("locations: %w", err)
	}
	if raw, ok := fields["game_language"]; ok {
		if err := strict(raw, &out.GameLanguage); err != nil {
			return fmt.Errorf("game_language: %w", err)
		}
	}
	*d = out
	return nil
}

func (q Quest1) MarshalJSON() ([]byte, error) {
	enc := q.Encounter
	if enc == nil {
		enc = map[int]map[uint8]Encounter1{}
	}
	return json.Marshal([]any{q.State, enc, q.Note})
}

func (q *Quest1) UnmarshalJSON(b []byte) error {
	var out Quest1
	if err := tuple(b, &out.State, &out.Encounter, &out.Note); err != nil {
		return err
	}
	*q = out
	return nil
}

// MarshalJSON writes the bare prerequisite form.
func (e Encounter1) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Prerequisite)
}

func (e *Encounter1) UnmarshalJSON(b []byte) error {
	var out Encounter1
	if t := bytes.TrimSpace(b); len(t) > 0 && t[0] == '[' {
		if err := tuple(b, &out.Prerequisite, &out.Vis); err != nil {
			return err
		}
	} else if err := strict(b, &out.Prerequisite); err != nil {
		return err
	}
	*e = out
	return nil
}

// object decodes a JSON object whose key set must be exactly required plus
// any subset of optional.
func object(b []byte, required, optional []string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := strict(b, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("not an object")
	}
	allowed := map[string]bool{}
	for _, k := range required {
		allowed[k] = true
		if _, ok := fields[k]; !ok {
			return nil, fmt.Errorf("missing field %q", k)
		}
	}
	for _, k := range optional {
		allowed[k] = true
	}
	var unknown []string
	for k := range fields {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown field %q", unknown[0])
	}
	return fields, nil
}

// tuple decodes a JSON array of exactly len(dst) elements.
func tuple(b []byte, dst ...any) error {
	var elems []json.RawMessage
	if err := strict(b, &elems); err != nil {
		return err
	}
	if len(elems) != len(dst) {
		return fmt.Errorf("want %d elements, got %d", len(dst), len(elems))
	}
	for i, e := range elems {
		if err := strict(e, dst[i]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func null(b json.RawMessage) error {
	if !bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return fmt.Errorf("want null, got %s", b)
	}
	return nil
}

func strict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data")
	}
	return nil
}
