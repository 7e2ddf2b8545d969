// config.go
// Configuration loading and type definitions for the importall CLI.
package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// LogConfig controls the file log sink.
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	LogDir  string `toml:"log_dir"`
	Verbose bool   `toml:"verbose"`
}

// MergeConfig carries default merge options applied before command line
// flags.
type MergeConfig struct {
	IncludeDeprecated bool           `toml:"include_deprecated"`
	Ignore            []string       `toml:"ignore"`
	Prioritized       map[string]int `toml:"prioritized"`
	SkipBuiltins      bool           `toml:"skip_builtin_protection"`
}

// REPLConfig tunes the interactive shell.
type REPLConfig struct {
	Prompt string `toml:"prompt"`
	Banner bool   `toml:"banner"`
}

// Config is the whole CLI configuration.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Merge MergeConfig `toml:"merge"`
	REPL  REPLConfig  `toml:"repl"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:  LogConfig{Enabled: false, LogDir: "logs"},
		REPL: REPLConfig{Prompt: ">>> ", Banner: true},
	}
}

// LoadConfig reads a TOML configuration file. A missing file is not an
// error: the defaults are returned so the CLI runs without any setup.
func LoadConfig(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	err = toml.Unmarshal(data, &config)

	return config, err
}
