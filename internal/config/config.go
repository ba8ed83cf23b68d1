// Package config handles the TaskFlow data directory and its config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.yaml.in/yaml/v3"

	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750

	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2

	// DefaultUser is the user id used when nothing else is configured.
	DefaultUser = "default"
	// DefaultUsersDir is the users subdirectory, relative to the data directory.
	DefaultUsersDir = "users"
	// DefaultExportPrefix prefixes exported report file names.
	DefaultExportPrefix = "taskflow"
	// DefaultHistoryDays is how many days of history the dashboard shows per task.
	DefaultHistoryDays = 7
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no TaskFlow data directory found (run 'taskflow init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

var userPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.@+-]*$`)

// Config is the persisted TaskFlow configuration.
type Config struct {
	Version  int            `yaml:"version"`
	User     string         `yaml:"user"`
	UsersDir string         `yaml:"users_dir"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Export   ExportConfig   `yaml:"export,omitempty"`
	TUI      TUIConfig      `yaml:"tui,omitempty"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
	// env holds values overridden from the environment (not serialized).
	env overrides `yaml:"-"`
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Frequency task.Frequency `yaml:"frequency"`
}

// ExportConfig controls the usage report.
type ExportConfig struct {
	Prefix string `yaml:"prefix,omitempty"`
}

// TUIConfig holds dashboard display settings.
type TUIConfig struct {
	HistoryDays int  `yaml:"history_days,omitempty"`
	HidePaused  bool `yaml:"hide_paused,omitempty"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:  CurrentVersion,
		User:     DefaultUser,
		UsersDir: DefaultUsersDir,
		Defaults: DefaultsConfig{Frequency: task.Daily},
		Export:   ExportConfig{Prefix: DefaultExportPrefix},
		TUI:      TUIConfig{HistoryDays: DefaultHistoryDays},
	}
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// UserID returns the active user, preferring an environment override.
func (c *Config) UserID() string {
	if c.env.user != "" {
		return c.env.user
	}
	return c.User
}

// OverrideUser selects the active user for this process only. The value is
// never saved.
func (c *Config) OverrideUser(user string) error {
	if err := ValidateUser(user); err != nil {
		return err
	}
	c.env.user = user
	return nil
}

// UsersPath returns the absolute path to the users directory, preferring an
// environment override. Relative values are resolved against the data
// directory.
func (c *Config) UsersPath() string {
	dir := c.UsersDir
	if c.env.usersDir != "" {
		dir = c.env.usersDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.dir, dir)
}

// UserPath returns the directory holding the active user's data.
func (c *Config) UserPath() string {
	return filepath.Join(c.UsersPath(), c.UserID())
}

// HistoryDays returns the dashboard history length.
func (c *Config) HistoryDays() int {
	if c.TUI.HistoryDays == 0 {
		return DefaultHistoryDays
	}
	return c.TUI.HistoryDays
}

// ExportPrefix returns the report file name prefix.
func (c *Config) ExportPrefix() string {
	if c.Export.Prefix == "" {
		return DefaultExportPrefix
	}
	return c.Export.Prefix
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if err := ValidateUser(c.UserID()); err != nil {
		return err
	}
	if c.UsersDir == "" {
		return fmt.Errorf("%w: users_dir is required", ErrInvalid)
	}
	if _, err := task.ParseFrequency(string(c.Defaults.Frequency)); err != nil {
		return fmt.Errorf("%w: defaults.frequency: %w", ErrInvalid, err)
	}
	const maxHistoryDays = 30
	if c.TUI.HistoryDays < 0 || c.TUI.HistoryDays > maxHistoryDays {
		return fmt.Errorf("%w: tui.history_days must be between 0 and %d", ErrInvalid, maxHistoryDays)
	}
	return nil
}

// ValidateUser checks that a user id is safe to use as a directory name.
func ValidateUser(user string) error {
	if !userPattern.MatchString(user) {
		return fmt.Errorf("%w: invalid user %q", ErrInvalid, user)
	}
	return nil
}

// Init creates a data directory with default settings.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(cfg.UsersPath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating users directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file. Environment overrides are
// never persisted.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads, migrates and validates the config in dir. Environment
// overrides are applied after migration and before validation.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	cfg.env = readOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrInit loads the config in dir, creating a default one on first use.
func LoadOrInit(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrNotFound) {
		if _, err := Init(dir); err != nil {
			return nil, err
		}
		return Load(dir)
	}
	return cfg, err
}
