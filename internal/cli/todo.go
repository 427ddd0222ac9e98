package cli

import (
	"fmt"

	"github.com/rcliao/quest-journal/internal/app"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/spf13/cobra"
)

func init() {
	todo := &cobra.Command{
		Use:   "todo",
		Short: "Show what can be done right now",
		Long:  "Show the to-do view. Filter changes are remembered for the next run.",
		Run:   runTodo,
	}
	todo.Flags().StringP("keywords", "k", "", "Show quests, keywords or both")
	todo.Flags().StringP("type", "t", "", "Show active, gain-complete, gain or unless")
	RootCmd.AddCommand(todo)

	location := &cobra.Command{
		Use:   "location [location]",
		Short: "Show every quest with encounters at a location",
		Args:  cobra.ExactArgs(1),
		Run:   runLocation,
	}
	RootCmd.AddCommand(location)
}

func runTodo(cmd *cobra.Command, args []string) {
	keywords, _ := cmd.Flags().GetString("keywords")
	typ, _ := cmd.Flags().GetString("type")

	a, e := openApp(cmd)
	defer closeApp(a, e)

	dispatch(cmd.Context(), a, app.GoMsg{Route: app.Todo()})

	f := a.TodoFilter()
	if keywords != "" {
		k, err := journal.ParseKeywordFilter(keywords)
		if err != nil {
			exitErr("keywords", err)
		}
		f.Keywords = k
	}
	if typ != "" {
		t, err := journal.ParseTodoType(typ)
		if err != nil {
			exitErr("type", err)
		}
		f.Type = t
	}
	dispatch(cmd.Context(), a, app.TodoFilterMsg{Filter: f})

	var rows []journal.QuestRow
	a.Read(func(j *journal.Journal) { rows = j.TodoRows(f) })

	if isJSON(e) {
		printJSON(rows)
		return
	}
	fmt.Println(faintStyle.Render(fmt.Sprintf("%s / %s", f.Keywords, f.Type)))
	fmt.Println(renderRows(rows))
}

func runLocation(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	l, err := locationArg(a, args[0])
	if err != nil {
		exitErr("location", err)
	}
	dispatch(cmd.Context(), a, app.GoMsg{Route: app.MapLocation(l)})

	var (
		rows []journal.QuestRow
		note string
	)
	a.Read(func(j *journal.Journal) {
		rows = j.LocationRows(l)
		note = j.LocationNote(l)
	})

	if isJSON(e) {
		printJSON(struct {
			Location string             `json:"location"`
			Note     string             `json:"note,omitempty"`
			Quests   []journal.QuestRow `json:"quests"`
		}{args[0], note, rows})
		return
	}
	fmt.Println(titleStyle.Render("Location " + args[0]))
	if note != "" {
		fmt.Println(noteStyle.Render(note))
	}
	fmt.Println(renderRows(rows))
}
