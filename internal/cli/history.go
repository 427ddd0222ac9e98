package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rcliao/quest-journal/internal/snapshot"
	"github.com/rcliao/quest-journal/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	history := &cobra.Command{
		Use:   "history",
		Short: "List saved versions of the journal",
		Run:   runHistory,
	}
	RootCmd.AddCommand(history)

	restore := &cobra.Command{
		Use:   "restore [version]",
		Short: "Make an older journal version the current one",
		Args:  cobra.ExactArgs(1),
		Run:   runRestore,
	}
	RootCmd.AddCommand(restore)
}

type historyEntry struct {
	store.Entry
	Shape  int `json:"shape,omitempty"`
	Quests int `json:"quests"`
}

func runHistory(cmd *cobra.Command, args []string) {
	e := loadEnv(cmd)
	s, err := openStore(e)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.Get(cmd.Context(), store.GetParams{Key: store.KeyGameData, History: true})
	if err != nil {
		exitErr("history", err)
	}

	out := make([]historyEntry, 0, len(entries))
	for _, en := range entries {
		he := historyEntry{Entry: en}
		if d, v, err := snapshot.Decode([]byte(en.Value)); err == nil {
			he.Shape = int(v)
			he.Quests = len(d.Quests)
		}
		out = append(out, he)
	}

	if isJSON(e) {
		printJSON(out)
		return
	}
	for _, he := range out {
		shape := "unreadable"
		if he.Shape != 0 {
			shape = fmt.Sprintf("v%d", he.Shape)
		}
		fmt.Printf("%s  %s  %s quests=%d bytes=%d\n",
			titleStyle.Render(fmt.Sprintf("#%d", he.Version)),
			he.CreatedAt.Local().Format(time.DateTime),
			faintStyle.Render(shape), he.Quests, he.Size)
	}
}

func runRestore(cmd *cobra.Command, args []string) {
	version, err := strconv.Atoi(args[0])
	if err != nil || version <= 0 {
		exitErr("version", fmt.Errorf("%q is not a version number", args[0]))
	}

	e := loadEnv(cmd)
	s, err := openStore(e)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	old, err := s.Get(cmd.Context(), store.GetParams{Key: store.KeyGameData, Version: version})
	if err != nil {
		exitErr("restore", err)
	}
	if _, _, err := snapshot.Decode([]byte(old[0].Value)); err != nil {
		exitErr("restore", err)
	}
	entry, err := s.Restore(cmd.Context(), store.KeyGameData, version)
	if err != nil {
		exitErr("restore", err)
	}

	if isJSON(e) {
		printJSON(entry)
		return
	}
	fmt.Printf("version %d restored as #%d\n", version, entry.Version)
}
