package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rcliao/quest-journal/internal/app"
	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
	"github.com/spf13/cobra"
)

var errNoEncounter = errors.New("quest has no encounter at this location")

func init() {
	action := &cobra.Command{
		Use:   "action [quest] [location]",
		Short: "Show the encounters of a quest at a location",
		Args:  cobra.ExactArgs(2),
		Run:   runAction,
	}
	action.Flags().Bool("map", false, "Map view: include hidden encounters")
	RootCmd.AddCommand(action)

	perform := &cobra.Command{
		Use:   "perform [quest] [location] [type]",
		Short: "Act on an active encounter",
		Long:  "Act on an encounter. Gain puts the quest in game, complete and lose remove it.",
		Args:  cobra.ExactArgs(3),
		Run:   runPerform,
	}
	perform.Flags().Bool("map", false, "Map view: include hidden encounters")
	RootCmd.AddCommand(perform)

	hide := &cobra.Command{
		Use:   "hide [quest] [location] [type] [visibility]",
		Short: "Hide or show one encounter",
		Args:  cobra.ExactArgs(4),
		Run:   runHide,
	}
	hide.Flags().Bool("map", false, "Map view: include hidden encounters")
	RootCmd.AddCommand(hide)

	hideQuest := &cobra.Command{
		Use:   "hide-quest [quest] [location] [visibility]",
		Short: "Hide or show a whole quest from one of its locations",
		Args:  cobra.ExactArgs(3),
		Run:   runHideQuest,
	}
	hideQuest.Flags().Bool("map", false, "Map view: include hidden encounters")
	RootCmd.AddCommand(hideQuest)

	note := &cobra.Command{
		Use:   "note [quest] [location] [text...]",
		Short: "Replace the note of a quest; no text clears it",
		Args:  cobra.MinimumNArgs(2),
		Run:   runNote,
	}
	note.Flags().Bool("map", false, "Map view: include hidden encounters")
	RootCmd.AddCommand(note)

	locationNote := &cobra.Command{
		Use:   "location-note [location] [text...]",
		Short: "Replace the note of a location; no text clears it",
		Args:  cobra.MinimumNArgs(1),
		Run:   runLocationNote,
	}
	RootCmd.AddCommand(locationNote)
}

// openAction navigates to the action pane of q at l and returns its view.
func openAction(cmd *cobra.Command, a *app.App, q catalog.QuestID, l catalog.LocationID) journal.ActionView {
	isMap, _ := cmd.Flags().GetBool("map")
	route := app.TodoAction(q, l)
	if isMap {
		dispatch(cmd.Context(), a, app.GoMsg{Route: app.MapLocation(l)})
		route = app.MapAction(l, q)
	} else {
		dispatch(cmd.Context(), a, app.GoMsg{Route: app.Todo()})
	}
	dispatch(cmd.Context(), a, app.GoMsg{Route: route})
	if a.Route() != route {
		exitErr("action", errNoEncounter)
	}

	var (
		v  journal.ActionView
		ok bool
	)
	a.Read(func(j *journal.Journal) { v, ok = j.Action(q, l, isMap) })
	if !ok {
		exitErr("action", errNoEncounter)
	}
	return v
}

func questLocationArgs(a *app.App, args []string) (catalog.QuestID, catalog.LocationID) {
	q, err := questArg(a, args[0])
	if err != nil {
		exitErr("quest", err)
	}
	l, err := locationArg(a, args[1])
	if err != nil {
		exitErr("location", err)
	}
	return q, l
}

func runAction(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	q, l := questLocationArgs(a, args)
	v := openAction(cmd, a, q, l)
	if isJSON(e) {
		printJSON(v)
		return
	}
	fmt.Println(renderAction(v))
}

func runPerform(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	q, l := questLocationArgs(a, args)
	et, err := typeArg(args[2])
	if err != nil {
		exitErr("type", err)
	}
	v := openAction(cmd, a, q, l)
	active := false
	for _, enc := range v.Encounters {
		if enc.Type == et {
			active = enc.Active
		}
	}
	if !active {
		exitErr("perform", fmt.Errorf("%s is not active for %s", et, v.QuestName))
	}

	dispatch(cmd.Context(), a, app.PerformMsg{Type: et})
	printQuestState(a, e, q)
}

func runHide(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	q, l := questLocationArgs(a, args)
	et, err := typeArg(args[2])
	if err != nil {
		exitErr("type", err)
	}
	vis, err := visArg(args[3])
	if err != nil {
		exitErr("visibility", err)
	}
	openAction(cmd, a, q, l)

	var found bool
	a.Read(func(j *journal.Journal) {
		if rec, ok := j.Quest(q); ok {
			if ql, ok := rec.Encounter[l]; ok {
				found = ql.Contains(et)
			}
		}
	})
	if !found {
		exitErr("hide", fmt.Errorf("no %s encounter", et))
	}
	dispatch(cmd.Context(), a, app.HideMsg{Type: et, Vis: vis, Back: true})
	printQuestState(a, e, q)
}

func runHideQuest(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	q, l := questLocationArgs(a, args)
	vis, err := visArg(args[2])
	if err != nil {
		exitErr("visibility", err)
	}
	openAction(cmd, a, q, l)
	dispatch(cmd.Context(), a, app.HideQuestMsg{Vis: vis})
	printQuestState(a, e, q)
}

func runNote(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	q, l := questLocationArgs(a, args)
	openAction(cmd, a, q, l)
	dispatch(cmd.Context(), a, app.ActionNoteMsg{Note: strings.Join(args[2:], " ")})
	printQuestState(a, e, q)
}

func runLocationNote(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	l, err := locationArg(a, args[0])
	if err != nil {
		exitErr("location", err)
	}
	note := strings.Join(args[1:], " ")
	dispatch(cmd.Context(), a, app.GoMsg{Route: app.MapLocation(l)}, app.LocationNoteMsg{Note: note})

	if isJSON(e) {
		printJSON(map[string]any{"ok": true, "location": args[0], "note": note})
		return
	}
	if note == "" {
		fmt.Println("note cleared")
		return
	}
	fmt.Println(noteStyle.Render(note))
}

type questState struct {
	Quest string           `json:"quest"`
	State model.QuestState `json:"state"`
	Vis   model.Vis        `json:"vis"`
	Note  string           `json:"note,omitempty"`
}

func printQuestState(a *app.App, e env, q catalog.QuestID) {
	var s questState
	a.Read(func(j *journal.Journal) {
		s.Quest = j.Locale().QuestName(q)
		if rec, ok := j.Quest(q); ok {
			s.State, s.Vis, s.Note = rec.State, rec.Vis, rec.Note
		}
	})
	if isJSON(e) {
		printJSON(s)
		return
	}
	fmt.Printf("%s %s %s\n", titleStyle.Render(s.Quest), s.State, visStyle(s.Vis).Render(s.Vis.String()))
	if s.Note != "" {
		fmt.Println(noteStyle.Render(s.Note))
	}
}
