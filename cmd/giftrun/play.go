package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gift-runner/internal/core"
	"github.com/vovakirdan/gift-runner/internal/game"
	"github.com/vovakirdan/gift-runner/internal/platform/tui"
	"github.com/vovakirdan/gift-runner/internal/storage"
)

var (
	flagName string
	flagHold time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start Gift Runner. Type your name on the title screen and press Enter.

Controls:
  Space/W/Up  - Jump
  A/D, Left/Right - Move
  P/Esc       - Pause
  R           - Restart (after game over)
  Ctrl+S      - Save a screenshot to ~/.giftrun/screenshots
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Spawn interval shrinks slowly
  normal - Default progression
  hard   - Starts two levels in
  fixed  - No progression

Examples:
  giftrun play
  giftrun play --name santa
  giftrun play --difficulty hard
  giftrun play --seed 42 --config ./my-giftrun.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagName, "name", "", "Player name (prefills the title screen)")
	cmd.Flags().DurationVar(&flagHold, "hold", tui.DefaultHoldWindow, "How long a key counts as held after a press")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var logOut io.Writer = io.Discard
	if f, logErr := openLogFile(); logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", logErr)
	} else {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "giftrun")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := game.Options{Seed: seed, Logger: logger}

	// Open score storage; the game still works without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without storage", "err", err)
		store = nil
	} else {
		opts.HighScores = store.HighScores(gameCfg.Storage.HighScoreKey)
		opts.Submitter = store
	}

	g, err := game.New(gameCfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	g.SetPlayerName(flagName)

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
	runErr := tui.Run(g, cfg, tui.Options{
		HoldWindow:    flagHold,
		ScreenshotDir: filepath.Join(stateDir(), "screenshots"),
		Logger:        logger,
	})

	// Let the last run reach the leaderboard before the store closes
	g.WaitSubmissions()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
