package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
)

// ErrNoShape is returned when a blob matches none of the known shapes.
var ErrNoShape = errors.New("snapshot: no known shape")

// Version names a snapshot shape.
type Version int

const (
	V1 Version = 1
	V3 Version = 3
)

// Current is the shape every save is written in.
const Current = V3

// step is one entry of the decode chain: it tries one shape and upgrades
// the result to the current shape.
type step struct {
	version Version
	decode  func([]byte) (GameData3, error)
}

// chain is tried newest first. v2 is not readable.
var chain = []step{
	{V3, decodeV3},
	{V1, decodeV1},
}

func decodeV3(b []byte) (GameData3, error) {
	var d GameData3
	if err := json.Unmarshal(b, &d); err != nil {
		return GameData3{}, err
	}
	if err := d.validate(); err != nil {
		return GameData3{}, err
	}
	return d, nil
}

func decodeV1(b []byte) (GameData3, error) {
	var d GameData1
	if err := json.Unmarshal(b, &d); err != nil {
		return GameData3{}, err
	}
	up := Upgrade(d)
	if err := up.validate(); err != nil {
		return GameData3{}, err
	}
	return up, nil
}

// Decode runs the decode chain over b. It returns the data in the current
// shape along with the shape that matched.
func Decode(b []byte) (GameData3, Version, error) {
	var errs []error
	for _, s := range chain {
		d, err := s.decode(b)
		if err == nil {
			return d, s.version, nil
		}
		errs = append(errs, fmt.Errorf("v%d: %w", s.version, err))
	}
	return GameData3{}, 0, fmt.Errorf("%w: %w", ErrNoShape, errors.Join(errs...))
}

// Upgrade converts a v1 snapshot. Quests become Visible, encounters keep
// the vis they were stored with.
func Upgrade(d GameData1) GameData3 {
	out := GameData3{
		Quests:    make(map[int]Quest3, len(d.Quests)),
		Locations: make(map[int]string, len(d.Locations)),
	}
	for id, q := range d.Quests {
		q3 := Quest3{
			State:     q.State,
			Encounter: make(map[int]map[uint8]Encounter3, len(q.Encounter)),
			Note:      q.Note,
			Vis:       uint8(model.Visible),
		}
		for l, ets := range q.Encounter {
			m := make(map[uint8]Encounter3, len(ets))
			for et, e := range ets {
				m[et] = Encounter3{Prerequisite: e.Prerequisite, Vis: e.Vis}
			}
			q3.Encounter[l] = m
		}
		out.Quests[id] = q3
	}
	for l, n := range d.Locations {
		out.Locations[l] = n
	}
	return out
}

// validate rejects enum values outside the declared ranges. Ids are not
// checked here; unknown ids are dropped by Apply.
func (d GameData3) validate() error {
	for id, q := range d.Quests {
		if !model.QuestState(q.State).Valid() {
			return fmt.Errorf("quest %d: invalid state %d", id, q.State)
		}
		if !model.Vis(q.Vis).Valid() {
			return fmt.Errorf("quest %d: invalid vis %d", id, q.Vis)
		}
		for l, ets := range q.Encounter {
			for et, e := range ets {
				if !model.EncounterType(et).Valid() {
					return fmt.Errorf("quest %d location %d: invalid encounter type %d", id, l, et)
				}
				if !model.Vis(e.Vis).Valid() {
					return fmt.Errorf("quest %d location %d: invalid vis %d", id, l, e.Vis)
				}
			}
		}
	}
	return nil
}

// Encode captures j in the current shape. The prologue location is left
// out; it only holds the built-in encounters.
func Encode(j *journal.Journal) GameData3 {
	d := GameData3{
		Quests:    map[int]Quest3{},
		Locations: map[int]string{},
	}
	for _, e := range j.Quests() {
		q3 := Quest3{
			State:     uint8(e.Quest.State),
			Encounter: map[int]map[uint8]Encounter3{},
			Note:      e.Quest.Note,
			Vis:       uint8(e.Quest.Vis),
		}
		for _, l := range e.Quest.Locations() {
			if l == catalog.Prologue() {
				continue
			}
			m := map[uint8]Encounter3{}
			e.Quest.Encounter[l].Each(func(et model.EncounterType, enc *model.Encounter) {
				e3 := Encounter3{Vis: uint8(enc.Vis)}
				if enc.Prerequisite != nil {
					raw := enc.Prerequisite.Raw()
					e3.Prerequisite = &raw
				}
				m[uint8(et)] = e3
			})
			q3.Encounter[l.Raw()] = m
		}
		d.Quests[e.ID.Raw()] = q3
	}
	for _, n := range j.Locations() {
		d.Locations[n.ID.Raw()] = n.Note
	}
	return d
}

// Apply replaces the content of j with d. Unknown quest and location ids
// are dropped, and so are prerequisites on anything but Gain encounters.
func Apply(j *journal.Journal, d GameData3) {
	j.Reset()
	for raw, note := range d.Locations {
		if l, ok := catalog.LocationFromRaw(raw); ok {
			j.SetLocationNote(l, note)
		}
	}
	for raw, q3 := range d.Quests {
		id, ok := catalog.QuestFromRaw(raw)
		if !ok {
			continue
		}
		q := j.QuestOrNew(id)
		q.State = model.QuestState(q3.State)
		q.Note = q3.Note
		q.Vis = model.Vis(q3.Vis)
		for rawLoc, ets := range q3.Encounter {
			l, ok := catalog.LocationFromRaw(rawLoc)
			if !ok {
				continue
			}
			ql := q.At(l)
			for rawET, e3 := range ets {
				et := model.EncounterType(rawET)
				enc := model.Encounter{Vis: model.Vis(e3.Vis)}
				if et == model.Gain && e3.Prerequisite != nil {
					if pre, ok := catalog.QuestFromRaw(*e3.Prerequisite); ok {
						enc.Prerequisite = model.Prereq(pre)
					}
				}
				ql.Set(et, enc)
			}
		}
	}
	j.Restore()
}

// Marshal encodes j as a current-shape blob.
func Marshal(j *journal.Journal) ([]byte, error) {
	return json.Marshal(Encode(j))
}

// Load decodes blob into j. On failure j holds the built-in quests only and
// the error tells why no shape matched.
func Load(j *journal.Journal, blob []byte) (Version, error) {
	d, v, err := Decode(blob)
	if err != nil {
		j.Reset()
		return 0, err
	}
	Apply(j, d)
	return v, nil
}
