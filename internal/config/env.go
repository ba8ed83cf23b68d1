package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable TaskFlow reads.
const EnvPrefix = "TASKFLOW"

// overrides are config values taken from the environment.
type overrides struct {
	user     string
	usersDir string
}

func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("user")
	_ = v.BindEnv("users_dir")
	_ = v.BindEnv("dir")
	_ = v.BindEnv("output")
	return v
}

func readOverrides() overrides {
	v := newEnv()
	return overrides{
		user:     v.GetString("user"),
		usersDir: v.GetString("users_dir"),
	}
}

// EnvOutput returns the output format requested through TASKFLOW_OUTPUT.
func EnvOutput() string {
	return strings.ToLower(newEnv().GetString("output"))
}

// ResolveDir picks the data directory: the flag value, then TASKFLOW_DIR,
// then ~/.config/taskflow.
func ResolveDir(flag string) (string, error) {
	dir := flag
	if dir == "" {
		dir = newEnv().GetString("dir")
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "taskflow")
	}
	return filepath.Abs(dir)
}
