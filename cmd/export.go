package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

const reportMode = 0o600

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a CSV usage report",
	Long: `Writes the last 30 days of every active task as CSV, preceded by the
current streak. Today's unmarked tasks are reported as pending.

The report goes to <prefix>-usage-YYYY-MM-DD.csv in the current directory
unless -o is given; "-o -" writes to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file, or - for stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, _, st, err := load(cmd.Context())
	if err != nil {
		return err
	}

	if err := checkExportable(st.Tasks); err != nil {
		return err
	}

	dest, _ := cmd.Flags().GetString("output")
	if dest == "-" {
		return stats.WriteCSV(os.Stdout, st.Tasks, st.Derived.Streak, st.Today)
	}
	if dest == "" {
		dest = stats.ExportFilename(cfg.ExportPrefix(), st.Today)
	}

	report := stats.FormatCSV(st.Tasks, st.Derived.Streak, st.Today)
	if err := os.WriteFile(dest, []byte(report), reportMode); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}
	rows := len(stats.ExportRows(st.Tasks, st.Today))

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "exported",
			"file":   abs,
			"rows":   rows,
			"streak": st.Derived.Streak,
		})
	}

	output.Messagef(os.Stdout, "Exported %d rows to %s", rows, abs)
	return nil
}

// checkExportable refuses an empty task list. Paused tasks still count, and
// a list of only paused tasks exports a report with no rows.
func checkExportable(tasks []*task.Task) error {
	if len(tasks) == 0 {
		return clierr.New(clierr.NothingToExport, "no tasks to export")
	}
	return nil
}
