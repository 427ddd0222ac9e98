package cli

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/rcliao/quest-journal/internal/csvio"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the journal as CSV",
		Long:  "Export the journal as CSV to a file, to stdout with -, or to a timestamped file in the current directory.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)
	defer closeApp(a, e)

	path := csvio.FileName(time.Now())
	if len(args) == 1 {
		path = args[0]
	}

	if path == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err := a.Export(w); err != nil {
			exitErr("export", err)
		}
		if err := w.Flush(); err != nil {
			exitErr("export", err)
		}
		return
	}

	f, err := os.Create(path)
	if err != nil {
		exitErr("create file", err)
	}
	w := bufio.NewWriter(f)
	if err := a.Export(w); err != nil {
		f.Close()
		exitErr("export", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		exitErr("export", err)
	}
	if err := f.Close(); err != nil {
		exitErr("export", err)
	}

	if isJSON(e) {
		printJSON(map[string]any{"ok": true, "file": path})
		return
	}
	fmt.Println(path)
}
