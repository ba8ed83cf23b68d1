package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long: `Displays a single task with its description, its status for each recent
day and its completion rate over that period.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Int("days", stats.WeekDays, "days of history to show")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := task.ValidateTaskID(args[0]); err != nil {
		return err
	}
	days, _ := cmd.Flags().GetInt("days")
	days = max(days, 1)

	_, _, st, err := load(cmd.Context())
	if err != nil {
		return err
	}

	t, err := board.FindByID(st.Tasks, args[0])
	if err != nil {
		return err
	}
	sum := board.Summarize(t, st.Today, days)

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, sum)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, sum)
	default:
		output.TaskDetail(os.Stdout, sum)
	}
	return nil
}
