package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Easwarasrisai789/TaskFlow/internal/clierr"
	"github.com/Easwarasrisai789/TaskFlow/internal/config"
	"github.com/Easwarasrisai789/TaskFlow/internal/output"
	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config [KEY [VALUE]]",
	Short: "Show or change settings",
	Long: `Without arguments, prints every setting. With KEY, prints that setting.
With KEY and VALUE, stores the new value in config.yml.

Values coming from TASKFLOW_USER, TASKFLOW_USERS_DIR or --user are shown
but never written back.`,
	Args: cobra.MaximumNArgs(2), //nolint:mnd // key and value
	RunE: runConfig,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settings and what they control",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if outputFormat() == output.FormatJSON {
			docs := make(map[string]string, len(settings))
			for _, s := range settings {
				docs[s.name] = s.doc
			}
			return output.JSON(os.Stdout, docs)
		}
		for _, s := range settings {
			mode := "rw"
			if s.set == nil {
				mode = "ro"
			}
			fmt.Fprintf(os.Stdout, "%-20s %s  %s\n", s.name, mode, s.doc)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

// setting is one addressable config key. A nil set makes it read-only.
type setting struct {
	name string
	doc  string
	get  func(*config.Config) any
	set  func(*config.Config, string) error
}

var settings = []setting{
	{
		name: "version",
		doc:  "config schema version",
		get:  func(c *config.Config) any { return c.Version },
	},
	{
		name: "dir",
		doc:  "data directory holding config.yml",
		get:  func(c *config.Config) any { return c.Dir() },
	},
	{
		name: "user",
		doc:  "user whose tasks are shown",
		get:  func(c *config.Config) any { return c.UserID() },
		set: func(c *config.Config, v string) error {
			if err := config.ValidateUser(v); err != nil {
				return clierr.New(clierr.InvalidInput, err.Error())
			}
			c.User = v
			return nil
		},
	},
	{
		name: "users_dir",
		doc:  "directory with one folder per user",
		get:  func(c *config.Config) any { return c.UsersPath() },
		set: func(c *config.Config, v string) error {
			if strings.TrimSpace(v) == "" {
				return clierr.New(clierr.InvalidInput, "users_dir must not be empty")
			}
			c.UsersDir = v
			return nil
		},
	},
	{
		name: "defaults.frequency",
		doc:  "frequency given to new tasks",
		get:  func(c *config.Config) any { return c.Defaults.Frequency },
		set: func(c *config.Config, v string) error {
			f, err := task.ParseFrequency(v)
			if err != nil {
				return err
			}
			c.Defaults.Frequency = f
			return nil
		},
	},
	{
		name: "export.prefix",
		doc:  "file name prefix for usage reports",
		get:  func(c *config.Config) any { return c.ExportPrefix() },
		set: func(c *config.Config, v string) error {
			c.Export.Prefix = v
			return nil
		},
	},
	{
		name: "tui.history_days",
		doc:  "days of history drawn per dashboard row",
		get:  func(c *config.Config) any { return c.HistoryDays() },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "tui.history_days wants an integer, got %q", v)
			}
			c.TUI.HistoryDays = n
			return nil
		},
	},
	{
		name: "tui.hide_paused",
		doc:  "start the dashboard with paused tasks hidden",
		get:  func(c *config.Config) any { return c.TUI.HidePaused },
		set: func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return clierr.Newf(clierr.InvalidInput, "tui.hide_paused wants true or false, got %q", v)
			}
			c.TUI.HidePaused = b
			return nil
		},
	},
}

func lookupSetting(name string) (setting, error) {
	for _, s := range settings {
		if s.name == name {
			return s, nil
		}
	}
	return setting{}, clierr.Newf(clierr.InvalidInput, "unknown config key %q", name).
		WithDetails(map[string]any{"keys": settingNames()})
}

func settingNames() []string {
	names := make([]string, len(settings))
	for i, s := range settings {
		names[i] = s.name
	}
	return names
}

func runConfig(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch len(args) {
	case 0:
		return printSettings(cfg)
	case 1:
		s, err := lookupSetting(args[0])
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, s.get(cfg))
		}
		fmt.Fprintln(os.Stdout, s.get(cfg))
		return nil
	default:
		return storeSetting(cfg, args[0], args[1])
	}
}

func printSettings(cfg *config.Config) error {
	if outputFormat() == output.FormatJSON {
		all := make(map[string]any, len(settings))
		for _, s := range settings {
			all[s.name] = s.get(cfg)
		}
		return output.JSON(os.Stdout, all)
	}
	for _, s := range settings {
		fmt.Fprintf(os.Stdout, "%-20s %v\n", s.name, s.get(cfg))
	}
	return nil
}

func storeSetting(cfg *config.Config, name, value string) error {
	s, err := lookupSetting(name)
	if err != nil {
		return err
	}
	if s.set == nil {
		return clierr.Newf(clierr.InvalidInput, "config key %q cannot be changed", name)
	}
	if err := s.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.InvalidInput, "invalid config", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.ConfigPath(), err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": name, "value": s.get(cfg)})
	}
	output.Messagef(os.Stdout, "%s is now %v", name, s.get(cfg))
	return nil
}
