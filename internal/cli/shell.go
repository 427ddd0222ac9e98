package cli

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rcliao/quest-journal/internal/app"
	"github.com/rcliao/quest-journal/internal/journal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	errQuit     = errors.New("quit")
	errNoAction = errors.New("no action open, use: action [quest] [location]")
)

const shellHelp = `commands:
  todo                          show the to-do view
  location [location]           show a location
  action [quest] [location]     open an action; quote names with spaces
  perform [type]                act on an encounter of the open action
  hide [type] [visibility]      hide or show an encounter of the open action
  hide-quest [visibility]       hide or show the quest of the open action
  note [text...]                replace the note of the open action's quest
  back                          go back one view
  dark-mode on|off              change the theme setting
  quit                          leave`

func init() {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Keep the journal open and read commands from stdin",
		Long:  "Keep the journal open and read commands line by line. Settings are written every tick and on exit.",
		Args:  cobra.NoArgs,
		Run:   runShell,
	}

	RootCmd.AddCommand(cmd)
}

func runShell(cmd *cobra.Command, args []string) {
	a, e := openApp(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	err := serve(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
	stop()
	closeApp(a, e)
	if err != nil {
		exitErr("shell", err)
	}
}

// serve runs the settings ticker next to the command reader until input
// ends, quit is read or ctx is done.
func serve(ctx context.Context, a *app.App, in io.Reader, out io.Writer) error {
	eg, ctx := errgroup.WithContext(ctx)

	lines := make(chan string)
	var scanErr error
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr = sc.Err()
	}()

	eg.Go(func() error {
		return a.Run(ctx)
	})
	eg.Go(func() error {
		sh := &shell{app: a, out: out}
		sh.prompt()
		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					if scanErr != nil {
						return scanErr
					}
					return errQuit
				}
				err := sh.exec(ctx, line)
				if errors.Is(err, errQuit) {
					return err
				}
				if err != nil {
					fmt.Fprintf(out, "error: %v\n", err)
				}
				sh.prompt()
			}
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

type shell struct {
	app *app.App
	out io.Writer
}

func (sh *shell) prompt() {
	route := sh.app.Route()
	var path string
	sh.app.Read(func(j *journal.Journal) { path = route.Path(j.Locale()) })
	fmt.Fprintf(sh.out, "%s> ", path)
}

func (sh *shell) dispatch(ctx context.Context, msgs ...app.Msg) error {
	_, err := sh.app.Dispatch(ctx, msgs...)
	return err
}

func (sh *shell) exec(ctx context.Context, line string) error {
	words, err := splitWords(line)
	if err != nil || len(words) == 0 {
		return err
	}
	name, args := words[0], words[1:]

	switch name {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
		return nil
	case "todo":
		if err := sh.dispatch(ctx, app.GoMsg{Route: app.Todo()}); err != nil {
			return err
		}
		f := sh.app.TodoFilter()
		var rows []journal.QuestRow
		sh.app.Read(func(j *journal.Journal) { rows = j.TodoRows(f) })
		fmt.Fprintln(sh.out, renderRows(rows))
		return nil
	case "location":
		if len(args) != 1 {
			return errors.New("usage: location [location]")
		}
		l, err := locationArg(sh.app, args[0])
		if err != nil {
			return err
		}
		if err := sh.dispatch(ctx, app.GoMsg{Route: app.MapLocation(l)}); err != nil {
			return err
		}
		var rows []journal.QuestRow
		sh.app.Read(func(j *journal.Journal) { rows = j.LocationRows(l) })
		fmt.Fprintln(sh.out, renderRows(rows))
		return nil
	case "action":
		if len(args) != 2 {
			return errors.New("usage: action [quest] [location]")
		}
		return sh.action(ctx, args)
	case "back":
		return sh.dispatch(ctx, app.BackMsg{})
	case "dark-mode":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return errors.New("usage: dark-mode on|off")
		}
		return sh.dispatch(ctx, app.DarkModeMsg{On: args[0] == "on"})
	}

	route := sh.app.Route()
	if route.Kind != app.RouteTodoAction && route.Kind != app.RouteMapAction {
		switch name {
		case "perform", "hide", "hide-quest", "note":
			return errNoAction
		}
		return fmt.Errorf("unknown command %q, try help", name)
	}

	switch name {
	case "perform":
		if len(args) != 1 {
			return errors.New("usage: perform [type]")
		}
		et, err := typeArg(args[0])
		if err != nil {
			return err
		}
		return sh.dispatch(ctx, app.PerformMsg{Type: et})
	case "hide":
		if len(args) != 2 {
			return errors.New("usage: hide [type] [visibility]")
		}
		et, err := typeArg(args[0])
		if err != nil {
			return err
		}
		vis, err := visArg(args[1])
		if err != nil {
			return err
		}
		return sh.dispatch(ctx, app.HideMsg{Type: et, Vis: vis, Back: true})
	case "hide-quest":
		if len(args) != 1 {
			return errors.New("usage: hide-quest [visibility]")
		}
		vis, err := visArg(args[0])
		if err != nil {
			return err
		}
		return sh.dispatch(ctx, app.HideQuestMsg{Vis: vis})
	case "note":
		return sh.dispatch(ctx, app.ActionNoteMsg{Note: strings.Join(args, " ")})
	}
	return fmt.Errorf("unknown command %q, try help", name)
}

// action opens the action pane from the map when the location is shown,
// from the to-do view otherwise.
func (sh *shell) action(ctx context.Context, args []string) error {
	q, err := questArg(sh.app, args[0])
	if err != nil {
		return err
	}
	l, err := locationArg(sh.app, args[1])
	if err != nil {
		return err
	}

	isMap := sh.app.Route() == app.MapLocation(l)
	route := app.MapAction(l, q)
	if !isMap {
		route = app.TodoAction(q, l)
		if err := sh.dispatch(ctx, app.GoMsg{Route: app.Todo()}); err != nil {
			return err
		}
	}
	if err := sh.dispatch(ctx, app.GoMsg{Route: route}); err != nil {
		return err
	}
	if sh.app.Route() != route {
		return errNoEncounter
	}

	var v journal.ActionView
	sh.app.Read(func(j *journal.Journal) { v, _ = j.Action(q, l, isMap) })
	fmt.Fprintln(sh.out, renderAction(v))
	return nil
}

// splitWords splits a command line on spaces. Double quotes group words.
func splitWords(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	r.FieldsPerRecord = -1
	rec, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	words := rec[:0]
	for _, w := range rec {
		if w != "" {
			words = append(words, w)
		}
	}
	return words, nil
}
