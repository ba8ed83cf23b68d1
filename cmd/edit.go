package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/store"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
	"github.com/Easwarasrisai789/TaskFlow/internal/tracker"
)

var editCmd = &cobra.Command{
	Use:   "edit ID[,ID,...]",
	Short: "Edit a task",
	Long: `Modifies fields of an existing task. Only specified fields are changed.
Pausing a task keeps its history but removes it from every statistic until
it is resumed. Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editFlags(editCmd)
	rootCmd.AddCommand(editCmd)
}

func editFlags(c *cobra.Command) {
	c.Flags().String("title", "", "new title")
	c.Flags().String("description", "", "new description (replaces the whole text)")
	c.Flags().StringP("append-description", "a", "", "append text to the description")
	c.Flags().BoolP("timestamp", "t", false, "prefix a timestamp line when appending")
	c.Flags().StringP("frequency", "f", "", "new frequency (daily, weekly, monthly)")
	c.Flags().Bool("pause", false, "pause the task")
	c.Flags().Bool("resume", false, "resume a paused task")
	c.MarkFlagsMutuallyExclusive("pause", "resume")
	c.MarkFlagsMutuallyExclusive("description", "append-description")
	c.Flags().SetNormalizeFunc(normalizeTaskFlags)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	_, tr, st, err := load(cmd.Context())
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		t, err := executeEdit(cmd, tr, st, ids[0])
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "Updated task %s: %s", t.ID, t.Title)
		return nil
	}

	return runBatch(ids, func(id string) error {
		_, err := executeEdit(cmd, tr, st, id)
		return err
	})
}

// executeEdit applies the flags to one task and returns it as stored.
func executeEdit(cmd *cobra.Command, tr *tracker.Tracker, st tracker.State, id string) (*task.Task, error) {
	t, err := board.FindByID(st.Tasks, id)
	if err != nil {
		return nil, err
	}

	p := editPatch(cmd, t, time.Now())
	ctx := cmd.Context()
	if err := tr.Update(ctx, id, p); err != nil {
		return nil, err
	}
	return reload(ctx, tr, id)
}

// editPatch builds a patch from the flags that were set.
func editPatch(cmd *cobra.Command, t *task.Task, now time.Time) store.Patch {
	var p store.Patch
	flags := cmd.Flags()

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		p.Title = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		p.Description = &v
	}
	if v, _ := flags.GetString("append-description"); v != "" {
		if stamp, _ := flags.GetBool("timestamp"); stamp {
			v = "[" + now.Format("2006-01-02 15:04") + "]\n" + v
		}
		desc := appendText(t.Description, v)
		p.Description = &desc
	}
	if flags.Changed("frequency") {
		v, _ := flags.GetString("frequency")
		f := task.Frequency(v)
		p.Frequency = &f
	}
	if v, _ := flags.GetBool("pause"); v {
		active := false
		p.Active = &active
	}
	if v, _ := flags.GetBool("resume"); v {
		active := true
		p.Active = &active
	}
	return p
}

func appendText(existing, text string) string {
	if strings.TrimSpace(existing) == "" {
		return text
	}
	return strings.TrimRight(existing, "\n") + "\n\n" + text
}

// reload returns the current stored version of a task.
func reload(ctx context.Context, tr *tracker.Tracker, id string) (*task.Task, error) {
	st, err := tr.Load(ctx)
	if err != nil {
		return nil, err
	}
	return board.FindByID(st.Tasks, id)
}
