package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rcliao/quest-journal/internal/app"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true)
	alertStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	visStyles = map[model.Vis]lipgloss.Style{
		model.Visible:            lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		model.HiddenThisCampaign: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.HiddenForever:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func visStyle(v model.Vis) lipgloss.Style {
	if s, ok := visStyles[v]; ok {
		return s
	}
	return faintStyle
}

func renderRows(rows []journal.QuestRow) string {
	if len(rows) == 0 {
		return faintStyle.Render("nothing to do")
	}
	var b strings.Builder
	for _, r := range rows {
		name := visStyle(r.Vis).Render(r.Name)
		fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(name), faintStyle.Render(r.State.String()))
		for _, h := range r.Hints {
			b.WriteString("  " + renderHint(h) + "\n")
		}
		if r.Note != "" {
			b.WriteString("  " + noteStyle.Render(r.Note) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHint(h journal.Hint) string {
	loc := h.LocationName
	if h.Page != "" {
		loc += " p." + h.Page
	}
	var types []string
	for _, t := range h.Types {
		if t.Active {
			types = append(types, activeStyle.Render(t.Type.String()))
		} else {
			types = append(types, t.Type.String())
		}
	}
	s := fmt.Sprintf("[%s] %s", visStyle(h.Vis).Render(loc), strings.Join(types, " "))
	if h.PrerequisiteName != "" {
		s += " after " + h.PrerequisiteName
	}
	if h.Outline || h.Disabled {
		return faintStyle.Render(s)
	}
	return s
}

func renderAction(v journal.ActionView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s @ %s %s\n",
		titleStyle.Render(visStyle(v.QuestVis).Render(v.QuestName)),
		v.LocationName,
		faintStyle.Render(v.State.String()))
	if len(v.Encounters) == 0 {
		b.WriteString(faintStyle.Render("  no visible encounters") + "\n")
	}
	for _, e := range v.Encounters {
		t := e.Type.String()
		if e.Active {
			t = activeStyle.Render(t)
		}
		line := fmt.Sprintf("  %s %s", t, visStyle(e.Vis).Render(e.Vis.String()))
		if e.PrerequisiteName != "" {
			line += " after " + e.PrerequisiteName
		}
		b.WriteString(line + "\n")
	}
	if v.Note != "" {
		b.WriteString("  " + noteStyle.Render(v.Note) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSettings(s app.SettingsView) string {
	lines := []string{
		fmt.Sprintf("game language  %s", s.GameLanguage),
		fmt.Sprintf("ui language    %s", s.UILanguage),
		fmt.Sprintf("quest view     %s", map[bool]string{false: "todo", true: "map"}[s.QuestsIsMap]),
		fmt.Sprintf("todo keywords  %s", s.ShowKeywords),
		fmt.Sprintf("todo type      %s", s.TodoType),
		fmt.Sprintf("dark mode      %t", s.DarkMode),
	}
	return strings.Join(lines, "\n")
}

func renderAlert(al *app.Alert) string {
	if al == nil {
		return ""
	}
	msg := al.Message
	if al.Rows != "" {
		msg += "\n" + al.Rows
	}
	if al.Level == app.AlertDanger {
		return alertStyle.BorderForeground(lipgloss.Color("1")).Render("import failed: " + msg)
	}
	return alertStyle.Render(msg)
}
