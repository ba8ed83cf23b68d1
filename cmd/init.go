package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/config"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a TaskFlow data directory",
	Long: `Creates the data directory with config.yml and a users/ subdirectory.
Other commands do this automatically on first use; init lets you pick the
user and defaults up front.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("default-frequency", "", "default frequency for new tasks (daily, weekly, monthly)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir, err := config.ResolveDir(flagDir)
	if err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(dir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.DataDirAlreadyExists, "TaskFlow already initialized in %s", dir).
			WithDetails(map[string]any{"dir": dir})
	}

	var freq task.Frequency
	if v, _ := cmd.Flags().GetString("default-frequency"); v != "" {
		if freq, err = task.ParseFrequency(v); err != nil {
			return err
		}
	}

	cfg, err := config.Init(dir)
	if err != nil {
		return err
	}
	if flagUser != "" || freq != "" {
		if flagUser != "" {
			cfg.User = flagUser
		}
		if freq != "" {
			cfg.Defaults.Frequency = freq
		}
		if err := cfg.Validate(); err != nil {
			return clierr.New(clierr.InvalidInput, err.Error())
		}
		if err := cfg.Save(); err != nil {
			return err
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    cfg.Dir(),
			"config": cfg.ConfigPath(),
			"users":  cfg.UsersPath(),
			"user":   cfg.UserID(),
		})
	}

	output.Messagef(os.Stdout, "Initialized TaskFlow in %s", cfg.Dir())
	output.Messagef(os.Stdout, "  Config: %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Users:  %s", cfg.UsersPath())
	output.Messagef(os.Stdout, "  User:   %s", cfg.UserID())
	return nil
}
