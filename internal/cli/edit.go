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

func init() {
	cmd := &cobra.Command{
		Use:   "edit [quest]",
		Short: "Show or correct a quest record",
		Long: `Show or correct a quest record. Without flags the record is printed.

Encounters are addressed as location:type, e.g. 12:gain.`,
		Args: cobra.ExactArgs(1),
		Run:  runEdit,
	}
	cmd.Flags().String("state", "", "Quest state: not-found, in-game or removed")
	cmd.Flags().String("vis", "", "Quest visibility")
	cmd.Flags().StringSlice("encounter-vis", nil, "Encounter visibility as location:type=visibility (repeatable)")
	cmd.Flags().StringSlice("remove", nil, "Remove encounter location:type (repeatable)")
	cmd.Flags().String("note", "", "Replace the quest note")

	RootCmd.AddCommand(cmd)
}

type editEncounter struct {
	Location     string              `json:"location"`
	Type         model.EncounterType `json:"type"`
	Vis          model.Vis           `json:"vis"`
	Prerequisite string              `json:"prerequisite,omitempty"`
}

type editView struct {
	Quest      string           `json:"quest"`
	State      model.QuestState `json:"state"`
	Vis        model.Vis        `json:"vis"`
	Note       string           `json:"note,omitempty"`
	Encounters []editEncounter  `json:"encounters"`
}

func runEdit(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	q, err := questArg(a, args[0])
	if err != nil {
		exitErr("quest", err)
	}
	editQuest(cmd, a, q)

	var msgs []app.Msg
	if s, _ := cmd.Flags().GetString("state"); s != "" {
		st, err := stateArg(s)
		if err != nil {
			exitErr("state", err)
		}
		msgs = append(msgs, app.EditStateMsg{State: st})
	}
	if s, _ := cmd.Flags().GetString("vis"); s != "" {
		v, err := visArg(s)
		if err != nil {
			exitErr("vis", err)
		}
		msgs = append(msgs, app.EditVisMsg{Vis: v})
	}
	encVis, _ := cmd.Flags().GetStringSlice("encounter-vis")
	for _, s := range encVis {
		ref, vs, ok := strings.Cut(s, "=")
		if !ok {
			exitErr("encounter-vis", fmt.Errorf("%q: want location:type=visibility", s))
		}
		l, et := encounterRef(a, ref)
		v, err := visArg(vs)
		if err != nil {
			exitErr("encounter-vis", err)
		}
		msgs = append(msgs, app.EditEncounterVisMsg{Location: l, Type: et, Vis: v})
	}
	remove, _ := cmd.Flags().GetStringSlice("remove")
	for _, s := range remove {
		l, et := encounterRef(a, s)
		msgs = append(msgs, app.KillEncounterMsg{Location: l, Type: et})
	}
	var note *string
	if cmd.Flags().Changed("note") {
		n, _ := cmd.Flags().GetString("note")
		note = &n
	}
	if len(msgs) > 0 || note != nil {
		msgs = append(msgs, app.SaveQuestMsg{Note: note})
		dispatch(cmd.Context(), a, msgs...)
	}

	v := buildEditView(a, q)
	if isJSON(e) {
		printJSON(v)
		return
	}
	fmt.Printf("%s %s %s\n", titleStyle.Render(v.Quest), v.State, visStyle(v.Vis).Render(v.Vis.String()))
	for _, enc := range v.Encounters {
		line := fmt.Sprintf("  %s:%s %s", enc.Location, enc.Type, visStyle(enc.Vis).Render(enc.Vis.String()))
		if enc.Prerequisite != "" {
			line += " after " + enc.Prerequisite
		}
		fmt.Println(line)
	}
	if v.Note != "" {
		fmt.Println("  " + noteStyle.Render(v.Note))
	}
}

func encounterRef(a *app.App, s string) (catalog.LocationID, model.EncounterType) {
	ls, ts, ok := strings.Cut(s, ":")
	if !ok {
		exitErr("encounter", fmt.Errorf("%q: want location:type", s))
	}
	l, err := locationArg(a, ls)
	if err != nil {
		exitErr("encounter", err)
	}
	et, err := typeArg(ts)
	if err != nil {
		exitErr("encounter", err)
	}
	return l, et
}

func buildEditView(a *app.App, q catalog.QuestID) editView {
	var v editView
	a.Read(func(j *journal.Journal) {
		loc := j.Locale()
		v.Quest = loc.QuestName(q)
		rec, ok := j.Quest(q)
		if !ok {
			return
		}
		v.State, v.Vis, v.Note = rec.State, rec.Vis, rec.Note
		for _, l := range rec.Locations() {
			rec.Encounter[l].Each(func(et model.EncounterType, enc *model.Encounter) {
				ee := editEncounter{Location: loc.LocationName(l), Type: et, Vis: enc.Vis}
				if enc.Prerequisite != nil {
					ee.Prerequisite = loc.QuestName(*enc.Prerequisite)
				}
				v.Encounters = append(v.Encounters, ee)
			})
		}
	})
	return v
}

// editQuest navigates to the edit pane of q.
func editQuest(cmd *cobra.Command, a *app.App, q catalog.QuestID) {
	dispatch(cmd.Context(), a, app.GoMsg{Route: app.Edit()}, app.GoMsg{Route: app.EditQuest(q)})
	if a.Route() != app.EditQuest(q) {
		exitErr("edit", errors.New("quest is not in the journal yet"))
	}
}
