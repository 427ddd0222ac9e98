// Package catalog holds the static, read-only game catalog: quest and
// location identifiers, the keyword table and the game languages.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Languages []languageDef `yaml:"languages"`
	Locations []locationDef `yaml:"locations"`
	Quests    []questDef    `yaml:"quests"`
}

type languageDef struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Prologue string `yaml:"prologue"`
}

type locationDef struct {
	Name string `yaml:"name"`
	Page string `yaml:"page"`
}

type questDef struct {
	Keyword bool              `yaml:"keyword"`
	Names   map[string]string `yaml:"names"`
}

// Catalog is a parsed game catalog.
type Catalog struct {
	languages []languageDef
	tags      []language.Tag
	locations []locationDef
	keywords  []bool
	// questNames is indexed by language, then by raw quest id.
	questNames [][]string
}

var defaultCatalog = mustLoadEmbedded()

func mustLoadEmbedded() *Catalog {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog: %v", err))
	}
	return c
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}

	if len(f.Languages) == 0 {
		return nil, fmt.Errorf("no languages defined")
	}
	if len(f.Locations) < 2 {
		return nil, fmt.Errorf("need the prologue and at least one location, got %d", len(f.Locations))
	}
	if len(f.Quests) < 2 {
		return nil, fmt.Errorf("need the two built-in quests, got %d", len(f.Quests))
	}

	c := &Catalog{
		languages: f.Languages,
		locations: f.Locations,
		keywords:  make([]bool, len(f.Quests)),
	}

	seenCodes := map[string]bool{}
	for _, l := range f.Languages {
		tag, err := language.Parse(l.Code)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", l.Code, err)
		}
		if seenCodes[l.Code] {
			return nil, fmt.Errorf("duplicate language %q", l.Code)
		}
		if l.Prologue == "" {
			return nil, fmt.Errorf("language %q: prologue name is empty", l.Code)
		}
		seenCodes[l.Code] = true
		c.tags = append(c.tags, tag)
	}

	if f.Locations[0].Name != "" {
		return nil, fmt.Errorf("location 0 is the prologue and must not have a name")
	}
	seenLocations := map[string]bool{}
	for i, l := range f.Locations[1:] {
		if l.Name == "" {
			return nil, fmt.Errorf("location %d has no name", i+1)
		}
		if seenLocations[l.Name] {
			return nil, fmt.Errorf("duplicate location name %q", l.Name)
		}
		seenLocations[l.Name] = true
	}

	c.questNames = make([][]string, len(f.Languages))
	for li, l := range f.Languages {
		names := make([]string, len(f.Quests))
		seen := map[string]bool{}
		for qi, q := range f.Quests {
			name := q.Names[l.Code]
			if name == "" {
				return nil, fmt.Errorf("quest %d has no %s name", qi, l.Code)
			}
			if seen[name] {
				return nil, fmt.Errorf("duplicate %s quest name %q", l.Code, name)
			}
			seen[name] = true
			names[qi] = name
		}
		c.questNames[li] = names
	}
	for qi, q := range f.Quests {
		c.keywords[qi] = q.Keyword
	}

	return c, nil
}

// QuestCount is the number of quests in the catalog.
func (c *Catalog) QuestCount() int { return len(c.keywords) }

// LocationCount is the number of locations in the catalog, prologue included.
func (c *Catalog) LocationCount() int { return len(c.locations) }
