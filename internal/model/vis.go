// Package model defines the journal data types and the activation rules.
package model

// Vis is the visibility of a quest or an encounter. Values are ordered by
// restrictiveness.
type Vis uint8

const (
	Visible Vis = iota
	HiddenThisCampaign
	HiddenForever
)

// Visibilities lists every Vis in order.
var Visibilities = [...]Vis{Visible, HiddenThisCampaign, HiddenForever}

// MaxVis returns the most restrictive of vs, Visible when vs is empty.
func MaxVis(vs ...Vis) Vis {
	m := Visible
	for _, v := range vs {
		if v > m {
			m = v
		}
	}
	return m
}

// CSV returns the interchange tag of v.
func (v Vis) CSV() string {
	switch v {
	case HiddenThisCampaign:
		return "hidden-this-campaign"
	case HiddenForever:
		return "hidden-forever"
	default:
		return ""
	}
}

// ParseVisCSV parses an interchange tag.
func ParseVisCSV(s string) (Vis, bool) {
	switch s {
	case "":
		return Visible, true
	case "hidden-this-campaign":
		return HiddenThisCampaign, true
	case "hidden-forever":
		return HiddenForever, true
	}
	return Visible, false
}

// Valid reports whether v is one of the declared values.
func (v Vis) Valid() bool { return v <= HiddenForever }

func (v Vis) String() string {
	switch v {
	case Visible:
		return "visible"
	case HiddenThisCampaign:
		return "hidden-this-campaign"
	case HiddenForever:
		return "hidden-forever"
	}
	return "invalid"
}

// ParseVis accepts the String form, used on the command line.
func ParseVis(s string) (Vis, bool) {
	if s == "visible" {
		return Visible, true
	}
	if s == "" {
		return Visible, false
	}
	return ParseVisCSV(s)
}
