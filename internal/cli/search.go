package cli

import (
	"fmt"
	"strings"

	"github.com/rcliao/quest-journal/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search quest and location notes",
		Long:  "Search the notes and names of the last saved journal for matching text.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().String("kind", "", "Filter by kind: quest or location")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	e := loadEnv(cmd)
	s, err := openStore(e)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.SearchNotes(cmd.Context(), store.SearchParams{
		Query: query,
		Kind:  kind,
		Limit: limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if isJSON(e) {
		if results == nil {
			results = []store.Note{}
		}
		printJSON(results)
		return
	}
	if len(results) == 0 {
		fmt.Println(faintStyle.Render("no matches"))
		return
	}
	for _, n := range results {
		fmt.Printf("%s %s\n  %s\n", faintStyle.Render(n.Kind), titleStyle.Render(n.Name), noteStyle.Render(n.Text))
	}
}
