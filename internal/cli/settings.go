package cli

import (
	"fmt"

	"github.com/rcliao/quest-journal/internal/app"
	"github.com/rcliao/quest-journal/internal/catalog"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Run:   runSettings,
	}
	cmd.Flags().String("game-language", "", "Language of quest names, e.g. en or de")
	cmd.Flags().String("ui-language", "", "Language of messages")
	cmd.Flags().Bool("dark-mode", false, "Dark mode")

	RootCmd.AddCommand(cmd)
}

func runSettings(cmd *cobra.Command, args []string) {
	gameLang, _ := cmd.Flags().GetString("game-language")
	uiLang, _ := cmd.Flags().GetString("ui-language")

	a, e := openApp(cmd)
	defer closeApp(a, e)

	msgs := []app.Msg{app.GoMsg{Route: app.Settings()}}
	if gameLang != "" {
		lang, ok := catalog.LanguageFromCode(gameLang)
		if !ok {
			exitErr("game-language", fmt.Errorf("unknown language %q", gameLang))
		}
		msgs = append(msgs, app.GameLanguageMsg{Language: lang})
	}
	if uiLang != "" {
		if _, ok := catalog.LanguageFromCode(uiLang); !ok {
			exitErr("ui-language", fmt.Errorf("unknown language %q", uiLang))
		}
		msgs = append(msgs, app.UILanguageMsg{Code: uiLang})
	}
	if cmd.Flags().Changed("dark-mode") {
		on, _ := cmd.Flags().GetBool("dark-mode")
		msgs = append(msgs, app.DarkModeMsg{On: on})
	}
	dispatch(cmd.Context(), a, msgs...)

	s := a.Settings()
	if isJSON(e) {
		printJSON(s)
		return
	}
	fmt.Println(renderSettings(s))
}
