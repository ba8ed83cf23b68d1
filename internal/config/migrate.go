package config

import (
	"fmt"

	"github.com/Easwarasrisai789/TaskFlow/internal/task"
)

// migrate upgrades a config from its current version to CurrentVersion,
// one version at a time.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade taskflow)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}
	return nil
}

// migrations maps each version to the function that migrates it to the next
// version. Each function must increment cfg.Version.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
}

// migrateV1ToV2 adds the export and tui sections and fills in a missing
// users_dir or default frequency.
func migrateV1ToV2(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.UsersDir == "" {
		cfg.UsersDir = DefaultUsersDir
	}
	if cfg.Defaults.Frequency == "" {
		cfg.Defaults.Frequency = task.Daily
	}
	if cfg.Export.Prefix == "" {
		cfg.Export.Prefix = DefaultExportPrefix
	}
	if cfg.TUI.HistoryDays == 0 {
		cfg.TUI.HistoryDays = DefaultHistoryDays
	}
	cfg.Version = 2
	return nil
}
