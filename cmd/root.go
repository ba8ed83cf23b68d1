// Package cmd implements the taskflow CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/board"
	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/config"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/store"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
	"github.com/Easwarasrisai789/TaskFlow/internal/tracker"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagUser    string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "Track recurring tasks and your productivity streak",
	Long: `taskflow keeps a per-day completion record for recurring tasks and derives
weekly and monthly productivity, a consecutive-day streak and a usage report.
Run taskflow with no arguments to open the live dashboard.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the TaskFlow data directory")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "act as this user (not saved)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	_, err := rootCmd.ExecuteContextC(ctx)
	stop()
	if err == nil {
		return
	}

	// Handle SilentError: exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// loadConfig resolves the data directory and loads its config, creating a
// default one on first use.
func loadConfig() (*config.Config, error) {
	dir, err := config.ResolveDir(flagDir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrInit(dir)
	if err != nil {
		return nil, err
	}
	if flagUser != "" {
		if err := cfg.OverrideUser(flagUser); err != nil {
			return nil, clierr.New(clierr.InvalidInput, err.Error()).
				WithDetails(map[string]any{"user": flagUser})
		}
	}
	return cfg, nil
}

// newTracker returns a tracker for the configured user backed by the file
// store. Every mutation is recorded in the user's activity log.
func newTracker(cfg *config.Config) *tracker.Tracker {
	s := store.NewFile(cfg.UsersPath()).OnWarning(printWarning)
	return tracker.New(s, cfg.UserID(), tracker.WithActivityLog(cfg.UserPath()))
}

// load is the common preamble of one-shot commands: config, tracker and a
// single snapshot.
func load(ctx context.Context) (*config.Config, *tracker.Tracker, tracker.State, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, tracker.State{}, err
	}
	tr := newTracker(cfg)
	st, err := tr.Load(ctx)
	if err != nil {
		return nil, nil, tracker.State{}, err
	}
	return cfg, tr, st, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact, config.EnvOutput())
}

// printWarning writes a task read warning to stderr.
func printWarning(w task.ReadWarning) {
	fmt.Fprintf(os.Stderr, "Warning: skipping malformed file %s: %v\n", w.File, w.Err)
}

// parseIDs splits a comma-separated ID string into deduplicated IDs.
func parseIDs(arg string) ([]string, error) {
	return board.ParseIDs(arg)
}

// runBatch executes fn for each ID and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []string, fn func(string) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		err := fn(id)
		if err != nil {
			anyFailed = true
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: cliErr.Message, Code: cliErr.Code})
			} else {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: err.Error()})
			}
		} else {
			results = append(results, output.BatchResult{ID: id, OK: true})
		}
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: task %s: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
