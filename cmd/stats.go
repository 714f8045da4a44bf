package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fluently/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer accuracy by exercise type",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		stats, err := s.EventRepo().AnswerAccuracy(context.Background())
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}

		if len(stats) == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		fmt.Println("Answer Accuracy by Exercise Type")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-22s  %8s  %8s  %9s\n", "Exercise", "Attempts", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 56))

		var totalAttempts, totalCorrect int
		for _, st := range stats {
			fmt.Printf("%-22s  %8d  %8d  %8.0f%%\n",
				st.BlockType, st.Attempts, st.Correct, percent(st.Correct, st.Attempts))
			totalAttempts += st.Attempts
			totalCorrect += st.Correct
		}

		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-22s  %8d  %8d  %8.0f%%\n",
			"TOTAL", totalAttempts, totalCorrect, percent(totalCorrect, totalAttempts))
		return nil
	},
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
