package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MSrikanthkarthikeyan/aura-quest-grind-sub000/internal/ui"
)

const Version = "0.1.0"

var (
	configPath string
	dbPath     string
	offline    bool
)

var rootCmd = &cobra.Command{
	Use:           "aq",
	Short:         "Aura Quest: turn habits into an RPG",
	Long:          "Aura Quest is a local-first CLI/TUI habit tracker with RPG progression, optional cloud sync and generated quests.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.aura-quest/aq.{toml,yaml,json})")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Local database path")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Skip the remote store for this run")

	rootCmd.AddCommand(
		newStatusCmd(),
		newAddCmd(),
		newDoCmd(),
		newSubtaskCmd(),
		newRemoveCmd(),
		newListCmd(),
		newSuggestCmd(),
		newAcceptCmd(),
		newSessionCmd(),
		newOnboardCmd(),
		newAskCmd(),
		newBoardCmd(),
		newSyncCmd(),
		newRolesCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
