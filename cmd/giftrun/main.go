// giftrun is a side-scrolling holiday runner for the terminal.
//
// Usage:
//
//	giftrun                 - Play (same as giftrun play)
//	giftrun play            - Play a run
//	giftrun scores          - Show the leaderboard
//	giftrun serve           - Start SSH server for remote play
//	giftrun config          - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.giftrun/giftrun.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "giftrun",
	Short: "Gift Runner - jump the obstacles, grab the presents",
	Long: `Gift Runner is a side-scrolling runner played in your terminal.
Jump over trees and rocks, collect presents for bonus points and
beat your high score. The game speeds up as your score grows.

Available commands:
  play     - Play a run (default)
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  giftrun
  giftrun play --name santa --difficulty hard
  giftrun scores
  giftrun serve --ssh :2222`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.giftrun/giftrun.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
