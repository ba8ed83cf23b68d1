package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
	"github.com/Easwarasrisai789/TaskFlow/internal/tracker"
)

const markClear = "clear"

var markCmd = &cobra.Command{
	Use:     "mark ID[,ID,...] [completed|missed|clear]",
	Aliases: []string{"done", "check"},
	Short:   "Set today's status for a task",
	Long: `Records today's outcome for a task. Without a status the task moves one
step through the cycle unmarked -> completed -> missed -> unmarked.
"clear" removes today's entry so the day is pending again.
Only today can be marked. Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.RangeArgs(1, 2), //nolint:mnd // 1 or 2 positional args
	RunE: runMark,
}

func init() {
	rootCmd.AddCommand(markCmd)
}

// markResult is the JSON form of a mark.
type markResult struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

func runMark(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	var target *task.Status
	if len(args) == 2 { //nolint:mnd // status given
		s, err := parseMarkStatus(args[1])
		if err != nil {
			return err
		}
		target = &s
	}

	_, tr, st, err := load(cmd.Context())
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		res, err := executeMark(cmd, tr, st, ids[0], target)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, res)
		}
		output.Messagef(os.Stdout, "Marked task %s %s for %s: %s", res.ID, res.Status, res.Date, res.Title)
		return nil
	}

	return runBatch(ids, func(id string) error {
		_, err := executeMark(cmd, tr, st, id, target)
		return err
	})
}

func parseMarkStatus(arg string) (task.Status, error) {
	if arg == markClear {
		return task.StatusNone, nil
	}
	return task.ParseStatus(arg)
}

// executeMark writes today's status for one task. A nil target cycles.
func executeMark(cmd *cobra.Command, tr *tracker.Tracker, st tracker.State, id string, target *task.Status) (markResult, error) {
	t, err := board.FindByID(st.Tasks, id)
	if err != nil {
		return markResult{}, err
	}
	if !t.Active {
		return markResult{}, clierr.Newf(clierr.InvalidInput, "task %s is paused; resume it first", id).
			WithDetails(map[string]any{"id": id})
	}

	ctx := cmd.Context()
	var written task.Status
	if target == nil {
		if written, err = tr.CycleToday(ctx, t); err != nil {
			return markResult{}, err
		}
	} else {
		if err := tr.Mark(ctx, id, *target); err != nil {
			return markResult{}, err
		}
		written = *target
	}

	return markResult{
		ID:     t.ID,
		Title:  t.Title,
		Date:   st.Today.String(),
		Status: output.StatusWord(written),
	}, nil
}
