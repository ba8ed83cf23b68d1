package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
)

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"log"},
	Short:   "Show the activity log",
	Long: `Shows recent mutations of the current user's tasks, including the ones
that failed, oldest first.`,
	Args: cobra.NoArgs,
	RunE: runActivity,
}

func init() {
	activityCmd.Flags().IntP("limit", "n", 20, "number of entries to show (0 for all)") //nolint:mnd // default page size
	rootCmd.AddCommand(activityCmd)
}

func runActivity(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	entries, err := board.ReadLog(cfg.UserPath(), limit)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		if entries == nil {
			entries = []board.LogEntry{}
		}
		return output.JSON(os.Stdout, entries)
	}
	output.ActivityTable(os.Stdout, entries)
	return nil
}
