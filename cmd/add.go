package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/store"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add [TITLE]",
	Aliases: []string{"create", "new"},
	Short:   "Add a recurring task",
	Long: `Creates a new task. The title can be given as a positional argument or
with --title. Tasks start active with an empty completion record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	addCmd.Flags().String("description", "", "task description (markdown)")
	addCmd.Flags().StringP("frequency", "f", "", "daily, weekly or monthly (default from config)")
	addCmd.Flags().SetNormalizeFunc(normalizeTaskFlags)
	rootCmd.AddCommand(addCmd)
}

// normalizeTaskFlags accepts the short spellings of task flags.
func normalizeTaskFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "desc", "body":
		name = "description"
	case "freq":
		name = "frequency"
	}
	return pflag.NormalizedName(name)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, err := resolveTitle(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in := store.NewTask{Title: title, Frequency: cfg.Defaults.Frequency}
	in.Description, _ = cmd.Flags().GetString("description")
	if v, _ := cmd.Flags().GetString("frequency"); v != "" {
		in.Frequency = task.Frequency(v)
	}

	ctx := cmd.Context()
	tr := newTracker(cfg)
	id, err := tr.Add(ctx, in)
	if err != nil {
		return err
	}

	st, err := tr.Load(ctx)
	if err != nil {
		return err
	}
	t, err := board.FindByID(st.Tasks, id)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Created task %s: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  Frequency: %s", t.Frequency)
	output.Messagef(os.Stdout, "  File: %s", t.File)
	return nil
}

// resolveTitle returns the task title from either the positional arg or --title flag.
func resolveTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", clierr.New(clierr.InvalidTitle, "title is required: provide it as an argument or with --title")
	}
}
