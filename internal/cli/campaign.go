package cli

import (
	"errors"
	"fmt"

	"github.com/rcliao/quest-journal/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	newCampaign := &cobra.Command{
		Use:   "new-campaign",
		Short: "Start a new campaign, keeping encounters and notes",
		Long:  "Start a new campaign: quests go back to not found and hides for this campaign are lifted.",
		Run:   runNewCampaign,
	}
	RootCmd.AddCommand(newCampaign)

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every quest record and note",
		Run:   runClear,
	}
	clearCmd.Flags().Bool("yes", false, "Confirm deleting the journal")
	RootCmd.AddCommand(clearCmd)
}

func runNewCampaign(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	dispatch(cmd.Context(), a, app.GoMsg{Route: app.Settings()}, app.NewCampaignMsg{})
	if isJSON(e) {
		fmt.Println(`{"ok":true}`)
		return
	}
	fmt.Println("new campaign started")
}

func runClear(cmd *cobra.Command, args []string) {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		exitErr("clear", errors.New("pass --yes to delete the journal"))
	}

	a, e := openApp(cmd)
	defer closeApp(a, e)

	dispatch(cmd.Context(), a, app.GoMsg{Route: app.Settings()}, app.ClearMsg{})
	if isJSON(e) {
		fmt.Println(`{"ok":true}`)
		return
	}
	fmt.Println("journal cleared")
}
