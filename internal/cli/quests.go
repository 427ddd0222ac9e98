package cli

import (
	"fmt"

	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "List every quest of the game by name",
		Run:   runQuests,
	}
	cmd.Flags().Bool("recorded", false, "Only quests with a journal record")

	RootCmd.AddCommand(cmd)
}

type questListing struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Keyword bool   `json:"keyword"`
	State   string `json:"state,omitempty"`
	Hidden  string `json:"hidden,omitempty"`
}

func runQuests(cmd *cobra.Command, args []string) {
	recorded, _ := cmd.Flags().GetBool("recorded")

	a, e := openApp(cmd)
	defer closeApp(a, e)

	var out []questListing
	a.Read(func(j *journal.Journal) {
		for _, qn := range j.Locale().Quests() {
			ql := questListing{ID: qn.ID.Raw(), Name: qn.Name, Keyword: qn.ID.IsKeyword()}
			if rec, ok := j.Quest(qn.ID); ok {
				ql.State = rec.State.String()
			if v := rec.MaxVis(); v != model.Visible {
				ql.Hidden = v.String()
			}
			} else if recorded {
				continue
			}
			out = append(out, ql)
		}
	})

	if isJSON(e) {
		printJSON(out)
		return
	}
	for _, q := range out {
		kind := "quest"
		if q.Keyword {
			kind = "keyword"
		}
		line := fmt.Sprintf("%3d  %s %s", q.ID, q.Name, faintStyle.Render(kind))
		if q.State != "" {
			line += " " + q.State
		}
		if q.Hidden != "" {
			line += " " + faintStyle.Render(q.Hidden)
		}
		fmt.Println(line)
	}
}
