package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/date"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks with today's status and a strip of recent days.
Paused tasks are hidden unless --paused or --all is given.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("all", false, "include paused tasks")
	listCmd.Flags().Bool("paused", false, "show only paused tasks")
	listCmd.Flags().StringSlice("frequency", nil, "filter by frequency (comma-separated)")
	listCmd.Flags().StringSlice("today", nil, "filter by today's status ("+strings.Join(board.TodayFilterValues(), ", ")+")")
	listCmd.Flags().StringP("search", "s", "", "search title and description (case-insensitive)")
	listCmd.Flags().String("sort", board.FieldCreated, "sort field ("+strings.Join(board.SortFields(), ", ")+")")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().Int("days", 0, "days of history to show (default from config)")
	listCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "inactive" {
			name = "paused"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	all, _ := cmd.Flags().GetBool("all")
	paused, _ := cmd.Flags().GetBool("paused")
	freqs, _ := cmd.Flags().GetStringSlice("frequency")
	todays, _ := cmd.Flags().GetStringSlice("today")
	search, _ := cmd.Flags().GetString("search")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")
	days, _ := cmd.Flags().GetInt("days")

	filter := board.FilterOptions{Search: search}
	switch {
	case paused:
		v := false
		filter.Active = &v
	case !all:
		v := true
		filter.Active = &v
	}

	for _, f := range freqs {
		freq, err := task.ParseFrequency(f)
		if err != nil {
			return err
		}
		filter.Frequencies = append(filter.Frequencies, freq)
	}
	for _, v := range todays {
		if !slices.Contains(board.TodayFilterValues(), v) {
			return clierr.Newf(clierr.InvalidInput, "invalid --today value %q; valid: %s",
				v, strings.Join(board.TodayFilterValues(), ", "))
		}
	}
	filter.Today = todays

	if !slices.Contains(board.SortFields(), sortBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --sort field %q; valid: %s",
			sortBy, strings.Join(board.SortFields(), ", "))
	}

	cfg, _, st, err := load(cmd.Context())
	if err != nil {
		return err
	}
	if days <= 0 {
		days = cfg.HistoryDays()
	}

	tasks := board.List(st.Tasks, board.ListOptions{
		Filter:  filter,
		SortBy:  sortBy,
		Reverse: reverse,
		Limit:   limit,
	}, st.Today)

	return outputTaskList(summarize(tasks, st.Today, days))
}

func summarize(tasks []*task.Task, today date.Date, days int) []board.TaskSummary {
	rows := make([]board.TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, board.Summarize(t, today, days))
	}
	return rows
}

func outputTaskList(rows []board.TaskSummary) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, rows)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, rows)
	default:
		output.TaskTable(os.Stdout, rows)
	}
	return nil
}
