package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/santa-racer/internal/config"
	"github.com/vovakirdan/santa-racer/internal/games/santa"
	"github.com/vovakirdan/santa-racer/internal/platform/tui"
	"github.com/vovakirdan/santa-racer/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 high scores of each difficulty and a summary of
every finished run.

Examples:
  santa scores
  santa scores --difficulty hard
  santa scores -i
  santa scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the tables in a full-screen view")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all high scores")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(santa.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("High scores cleared.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, santa.ID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	difficulties := config.Difficulties
	if flagDifficulty != "" {
		d, _ := config.ParseDifficulty(flagDifficulty)
		difficulties = []config.DifficultyPreset{d}
	}

	for _, d := range difficulties {
		if err := printTable(store, d); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
	}

	stats, err := store.GetGameStats(santa.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if stats.GamesCount > 0 {
		fmt.Printf("Runs: %d played, %d won, best %d, average %.0f, %s in the air\n",
			stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore, stats.PlayTime.Round(time.Second))
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printTable(store *storage.Store, d config.DifficultyPreset) error {
	scores, err := store.TopScores(santa.ID, string(d), storage.TableSize)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", strings.ToUpper(string(d)))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("  No scores recorded yet.")
		fmt.Println()
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-16s  %-8d  %s\n", i+1, entry.Name, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore(santa.ID, string(d))
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("  Best: %d\n", best)
	fmt.Println()
	return nil
}
