package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rcliao/quest-journal/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the journal with a CSV export",
		Long:  "Replace the journal with a CSV export (file or stdin). Rows that cannot be read are skipped and listed.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read csv", err)
	}

	a, e := openApp(cmd)
	defer closeApp(a, e)

	dispatch(cmd.Context(), a, app.GoMsg{Route: app.Settings()}, app.ImportMsg{Data: data})
	al := a.Alert()

	if isJSON(e) {
		printJSON(map[string]any{"ok": al == nil || al.Level != app.AlertDanger, "alert": al})
	} else if al == nil {
		fmt.Println("imported")
	} else {
		fmt.Println(renderAlert(al))
	}
	if al != nil && al.Level == app.AlertDanger {
		closeApp(a, e)
		os.Exit(1)
	}
}
