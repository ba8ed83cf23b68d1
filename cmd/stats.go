package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/stats"
	"github.com/Easwarasrisai789/TaskFlow/internal/tracker"
)

var flagWatch bool

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"summary"},
	Short:   "Show productivity statistics",
	Long: `Displays the 7-day and 30-day productivity windows, the current streak
with its badge and a per-day chart of the last week.

Use --watch to keep the display live-updating. The stats re-render whenever
the task store changes (e.g., from another terminal). Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update on task changes")
	statsCmd.Flags().String("group-by", "", "also break the windows down by field ("+strings.Join(board.ValidGroupByFields(), ", ")+")")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	groupBy, _ := cmd.Flags().GetString("group-by")
	if groupBy != "" && !slices.Contains(board.ValidGroupByFields(), groupBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --group-by field %q; valid: %s",
			groupBy, strings.Join(board.ValidGroupByFields(), ", "))
	}

	if flagWatch {
		return watchStats(cmd, groupBy)
	}

	_, _, st, err := load(cmd.Context())
	if err != nil {
		return err
	}
	return renderStats(st, groupBy)
}

// dashboard assembles everything the stats views show from one state.
func dashboard(st tracker.State, groupBy string) output.Dashboard {
	d := output.Dashboard{
		Derived:  st.Derived,
		Badge:    stats.BadgeFor(st.Derived.Streak),
		Overview: board.Summary(st.Tasks, st.Today),
	}
	if groupBy != "" {
		d.Groups = board.GroupBy(st.Tasks, groupBy, st.Today)
	}
	return d
}

func renderStats(st tracker.State, groupBy string) error {
	d := dashboard(st, groupBy)
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, d)
	case output.FormatCompact:
		output.StatsCompact(os.Stdout, d)
	default:
		output.StatsTable(os.Stdout, d)
	}
	return nil
}

func watchStats(cmd *cobra.Command, groupBy string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tr := newTracker(cfg)

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	return tr.Run(cmd.Context(), func(st tracker.State) {
		if st.Err != "" {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", st.Err)
			return
		}
		clearScreen()
		if renderErr := renderStats(st, groupBy); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering stats: %v\n", renderErr)
		}
	})
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
