package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"crypto-alarm/internal/store"
)

// addJournalCommands adds the crossing journal commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Review recorded alarm crossings",
		Long:  "List step crossings recorded while running with --journal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			dbPath, _ := cmd.Flags().GetString("db")
			limit, _ := cmd.Flags().GetInt("limit")

			js, err := store.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer js.Close()

			crossings, err := js.RecentCrossings(ctx, limit)
			if err != nil {
				return err
			}

			if len(crossings) == 0 {
				output.Info("No crossings recorded yet.")
				output.Dim("Run with --journal to record future crossings.")
				return nil
			}

			output.Bold("Alarm Journal")
			output.Printf("%-20s %-6s %-5s %14s %14s %10s\n",
				"Time", "Symbol", "Dir", "From", "To", "Step")
			for _, c := range crossings {
				// Pad before coloring so ANSI codes do not skew columns.
				dir := output.Green(fmt.Sprintf("%-5s", c.Direction))
				if c.Direction == "down" {
					dir = output.Red(fmt.Sprintf("%-5s", c.Direction))
				}
				output.Printf("%-20s %-6s %s %14.2f %14.2f %10.2f\n",
					c.At.Local().Format("2006-01-02 15:04:05"),
					c.Symbol, dir, c.OldPrice, c.NewPrice, c.Step)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum crossings to show")
	cmd.Flags().String("db", store.DefaultJournalPath(), "journal database path")
	rootCmd.AddCommand(cmd)
}
