package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/fluently/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "fluently",
	Short: "Speech-therapy practice assistant",
	Long:  "Fluently — conversational check-in, exercise plan generation, and answer evaluation for speech-therapy practice sessions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event database (overrides FLUENTLY_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using the --db flag first,
// then the FLUENTLY_DB env var, then the default home path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
