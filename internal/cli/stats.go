package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	e := loadEnv(cmd)
	s, err := openStore(e)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	if isJSON(e) {
		printJSON(stats)
		return
	}
	fmt.Printf("%s %s (%d bytes)\n", titleStyle.Render("database"), stats.DBPath, stats.DBSizeBytes)
	fmt.Printf("entries %d, notes %d\n", stats.Entries, stats.Notes)
	for _, k := range stats.Keys {
		fmt.Printf("  %-10s versions=%d latest=#%d bytes=%d\n", k.Key, k.Versions, k.Latest, k.Bytes)
	}
}
