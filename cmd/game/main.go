// game is a two-level tilemap platformer.
//
// Usage:
//
//	game                    - Play from the first level
//	game --level level2     - Start at another level
//	game replay <file>      - Re-run a recording without a window
//	game levels             - List configured levels
//
// Global flags:
//
//	--config <dir>       - Directory with game.yaml and maps/ (default: built in)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "gemrun"

type rootFlags struct {
	configDir string
	logLevel  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	play := &playFlags{}

	root := &cobra.Command{
		Use:   "game",
		Short: "Collect gems, dodge skulls, reach the exit",
		Long: `A two-level platformer. Reach the exit of each level; gems add to
the score carried between levels and a skull ends the run.

Controls:
  Left/Right, A/D  - Move
  Space            - Jump
  Esc/P            - Pause
  Enter/Z          - Play again after the run ends

Examples:
  game
  game --level level2 --log-level debug
  game --config ./configs --watch
  game --record run.json
  game replay run.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags, play)
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config", "", "Directory with game.yaml and maps/ (default: built in)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	root.Flags().StringVar(&play.maps, "maps", "", "Directory to load maps from (default: <config>/maps)")
	root.Flags().StringVar(&play.level, "level", "", "Level to start at (default: first configured)")
	root.Flags().StringVar(&play.record, "record", "", "Record input to file (e.g., --record replay.json)")
	root.Flags().BoolVar(&play.watch, "watch", false, "Restart the level when its map file changes on disk")

	root.AddCommand(newReplayCmd(flags))
	root.AddCommand(newLevelsCmd(flags))
	return root
}
