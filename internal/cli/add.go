package cli

import (
	"fmt"

	"github.com/rcliao/quest-journal/internal/app"
	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [location] [type] [quest]",
		Short: "Record a newly found encounter",
		Long:  "Record an encounter read at a location. Gain puts the quest in game, complete and lose remove it.",
		Args:  cobra.ExactArgs(3),
		Run:   runAdd,
	}
	cmd.Flags().StringP("prerequisite", "p", "", "Quest that must be done first (gain only)")
	cmd.Flags().StringP("note", "m", "", "Quest note")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	prereqArg, _ := cmd.Flags().GetString("prerequisite")
	note, _ := cmd.Flags().GetString("note")

	a, e := openApp(cmd)
	defer closeApp(a, e)

	l, err := locationArg(a, args[0])
	if err != nil {
		exitErr("location", err)
	}
	et, err := typeArg(args[1])
	if err != nil {
		exitErr("type", err)
	}
	q, err := questArg(a, args[2])
	if err != nil {
		exitErr("quest", err)
	}

	var prereq *catalog.QuestID
	if prereqArg != "" {
		if et != model.Gain {
			exitErr("prerequisite", fmt.Errorf("only gain encounters take a prerequisite"))
		}
		p, err := questArg(a, prereqArg)
		if err != nil {
			exitErr("prerequisite", err)
		}
		if p == q {
			exitErr("prerequisite", fmt.Errorf("a quest cannot require itself"))
		}
		prereq = &p
	}

	var allowed bool
	a.Read(func(j *journal.Journal) { allowed = j.AllowedNewEncounter(et, q) })
	if !allowed {
		exitErr("add", fmt.Errorf("%s is not possible in the current quest state", et))
	}

	dispatch(cmd.Context(), a,
		app.GoMsg{Route: app.MapLocation(l)},
		app.GoMsg{Route: app.MapNewQuest(l)},
		app.SelectEncounterTypeMsg{Type: et},
		app.SelectQuestMsg{Quest: q},
		app.SetPrerequisiteMsg{Quest: prereq},
		app.SaveEncounterMsg{Note: note},
	)
	printQuestState(a, e, q)
}
