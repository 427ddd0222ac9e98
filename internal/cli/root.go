// Package cli implements the quest-journal CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rcliao/quest-journal/internal/app"
	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/rcliao/quest-journal/internal/config"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/rcliao/quest-journal/internal/logging"
	"github.com/rcliao/quest-journal/internal/model"
	"github.com/rcliao/quest-journal/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "quest-journal",
	Short: "Quest companion journal",
	Long:  "Tracks quests, encounters and notes of a board game campaign. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringP("db", "d", "", "Database path (default: $QUEST_JOURNAL_DB or ~/.quest-journal/journal.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.quest-journal/config.yaml)")
	RootCmd.PersistentFlags().StringP("format", "f", "", "Output format: json or text")
	RootCmd.PersistentFlags().Bool("debug", false, "Log debug output to stderr")
}

// env is what every command needs once the config is read.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func loadEnv(cmd *cobra.Command) env {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		exitErr("load config", err)
	}
	log, err := logging.New(cfg.Debug)
	if err != nil {
		exitErr("init logger", err)
	}
	return env{cfg: cfg, log: log}
}

func openStore(e env) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(e.cfg.DB, e.log)
}

// openApp opens the store and loads the journal from it.
func openApp(cmd *cobra.Command) (*app.App, env) {
	e := loadEnv(cmd)
	s, err := openStore(e)
	if err != nil {
		exitErr("open store", err)
	}
	a := app.New(e.cfg, s, e.log)
	if err := a.Load(cmd.Context()); err != nil {
		a.Close()
		exitErr("load journal", err)
	}
	return a, e
}

// closeApp flushes pending settings and closes the store.
func closeApp(a *app.App, e env) {
	if err := a.Close(); err != nil {
		e.log.Warn("close", zap.Error(err))
	}
	_ = e.log.Sync()
}

func dispatch(ctx context.Context, a *app.App, msgs ...app.Msg) {
	if _, err := a.Dispatch(ctx, msgs...); err != nil {
		exitErr("save", err)
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func isJSON(e env) bool { return e.cfg.Format == "json" }

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// questArg resolves a quest by its name in the game language or by raw id.
func questArg(a *app.App, s string) (catalog.QuestID, error) {
	var (
		id catalog.QuestID
		ok bool
	)
	a.Read(func(j *journal.Journal) {
		id, ok = j.Locale().ResolveQuest(s)
	})
	if ok {
		return id, nil
	}
	if raw, err := strconv.Atoi(s); err == nil {
		if id, ok := catalog.QuestFromRaw(raw); ok {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown quest %q", s)
}

func locationArg(a *app.App, s string) (catalog.LocationID, error) {
	var (
		id catalog.LocationID
		ok bool
	)
	a.Read(func(j *journal.Journal) {
		id, ok = j.Locale().ResolveLocation(s)
	})
	if !ok {
		return 0, fmt.Errorf("unknown location %q", s)
	}
	return id, nil
}

func typeArg(s string) (model.EncounterType, error) {
	et, ok := model.ParseEncounterType(s)
	if !ok {
		return 0, fmt.Errorf("unknown encounter type %q (unless, gain, when, complete, lose)", s)
	}
	return et, nil
}

func visArg(s string) (model.Vis, error) {
	v, ok := model.ParseVis(s)
	if !ok {
		return 0, fmt.Errorf("unknown visibility %q (visible, hidden-this-campaign, hidden-forever)", s)
	}
	return v, nil
}

func stateArg(s string) (model.QuestState, error) {
	st, ok := model.ParseQuestState(s)
	if !ok {
		return 0, fmt.Errorf("unknown state %q (not-found, in-game, removed)", s)
	}
	return st, nil
}
