package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gift-runner/internal/platform/tui"
	"github.com/vovakirdan/gift-runner/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagScoresPlain  bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best runs recorded in the scores database.

On a terminal this opens an interactive table; use --plain for text output.

Examples:
  giftrun scores
  giftrun scores --player santa
  giftrun scores --plain --limit 5
  giftrun scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show runs by this player")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to print with --plain")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a plain text table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every leaderboard entry")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Leaderboard cleared.")
		return
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height, sizeErr := term.GetSize(int(os.Stdout.Fd()))
		if sizeErr != nil {
			width, height = 80, 24
		}
		if err := tui.RunScoreboard(store, flagScoresPlayer, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printScores(os.Stdout, store, flagScoresPlayer, flagScoresLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

// printScores writes the leaderboard as a text table.
func printScores(w io.Writer, source tui.ScoreSource, player string, limit int) error {
	var (
		entries []storage.ScoreEntry
		err     error
	)
	if player != "" {
		entries, err = source.PlayerScores(player, limit)
	} else {
		entries, err = source.TopScores(limit)
	}
	if err != nil {
		return err
	}

	title := "High Scores"
	if player != "" {
		title = fmt.Sprintf("High Scores - %s", player)
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'giftrun play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-10s  %s\n", "Rank", "Player", "Score", "When")
	fmt.Fprintf(w, "  %-4s  %-16s  %-10s  %s\n", "----", "------", "-----", "----")
	for i, e := range entries {
		fmt.Fprintf(w, "  %-4d  %-16s  %-10s  %s\n", i+1, e.Player, humanize.Comma(int64(e.Score)), humanize.Time(e.CreatedAt))
	}

	stats, err := source.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %s over %s runs\n", humanize.Comma(int64(stats.HighScore)), humanize.Comma(int64(stats.Runs)))
	return nil
}
