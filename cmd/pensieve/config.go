package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/pensieve"
)

// config is the evaluator configuration. Values come from the config file,
// then PENSIEVE_* environment variables, then command-line flags.
type config struct {
	Mode    string        `toml:"mode"`
	Prec    int           `toml:"prec"`
	Format  string        `toml:"format"`
	Color   string        `toml:"color"`
	Debug   bool          `toml:"debug"`
	History historyConfig `toml:"history"`
	Log     logConfig     `toml:"log"`
}

type historyConfig struct {
	File string `toml:"file"`
	Max  int    `toml:"max"`
}

type logConfig struct {
	Level string `toml:"level"`
	// File is a log file path. Empty means stderr.
	File string `toml:"file"`
}

func defaultConfig() config {
	return config{
		Mode:   pensieve.Logic.Name(),
		Prec:   pensieve.DefaultPrec,
		Format: "%.15g",
		Color:  "auto",
		History: historyConfig{
			File: defaultHistoryFile(),
			Max:  1000,
		},
		Log: logConfig{Level: "warn"},
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pensieve_history")
}

// defaultConfigFile returns the config path used when --config is not given.
func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pensieve", "config.toml")
}

// loadConfig reads the config file at path over the defaults and applies
// environment overrides. A missing file is only an error if it was named
// explicitly.
func loadConfig(path string, explicit bool) (config, error) {
	cfg := defaultConfig()
	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadDotEnv loads variables from a .env file in the working directory, or
// the file named by PENSIEVE_ENV_PATH. Variables already set take
// precedence.
func loadDotEnv() error {
	path := ".env"
	if p := os.Getenv("PENSIEVE_ENV_PATH"); p != "" {
		path = p
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) && os.Getenv("PENSIEVE_ENV_PATH") == "" {
		return nil
	}
	return err
}

// applyEnv overrides fields with PENSIEVE_* variables.
func (cfg *config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
		return nil
	}
	str("PENSIEVE_MODE", &cfg.Mode)
	str("PENSIEVE_FORMAT", &cfg.Format)
	str("PENSIEVE_COLOR", &cfg.Color)
	str("PENSIEVE_HISTORY_FILE", &cfg.History.File)
	str("PENSIEVE_LOG_LEVEL", &cfg.Log.Level)
	str("PENSIEVE_LOG_FILE", &cfg.Log.File)
	if err := num("PENSIEVE_PREC", &cfg.Prec); err != nil {
		return err
	}
	if err := num("PENSIEVE_HISTORY_MAX", &cfg.History.Max); err != nil {
		return err
	}
	if v, ok := lookup("PENSIEVE_DEBUG"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PENSIEVE_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	return nil
}

// applyFlags overrides fields with flags the user set explicitly.
func (cfg *config) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("mode") {
		cfg.Mode, err = flags.GetString("mode")
		if err != nil {
			return fmt.Errorf("failed to get mode flag: %w", err)
		}
	}
	if flags.Changed("color") {
		cfg.Color, err = flags.GetString("color")
		if err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if flags.Changed("fmt") {
		cfg.Format, err = flags.GetString("fmt")
		if err != nil {
			return fmt.Errorf("failed to get fmt flag: %w", err)
		}
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, err = flags.GetString("log-level")
		if err != nil {
			return fmt.Errorf("failed to get log-level flag: %w", err)
		}
	}
	if flags.Changed("debug") {
		cfg.Debug, err = flags.GetBool("debug")
		if err != nil {
			return fmt.Errorf("failed to get debug flag: %w", err)
		}
	}
	if flags.Changed("prec") {
		cfg.Prec, err = flags.GetInt("prec")
		if err != nil {
			return fmt.Errorf("failed to get prec flag: %w", err)
		}
	}
	return nil
}

// validate checks the config and resolves its grammar.
func (cfg *config) validate() (*pensieve.Grammar, error) {
	g := pensieve.GrammarByName(cfg.Mode)
	if g == nil {
		return nil, fmt.Errorf("invalid mode %q (expected logic|arith)", cfg.Mode)
	}
	if cfg.Prec <= 0 {
		return nil, fmt.Errorf("precision (%d) must be positive", cfg.Prec)
	}
	if _, err := readColorMode(cfg.Color); err != nil {
		return nil, err
	}
	if cfg.History.Max < 0 {
		return nil, fmt.Errorf("history.max (%d) must not be negative", cfg.History.Max)
	}
	if !strings.Contains(cfg.Format, "%") {
		return nil, fmt.Errorf("invalid format %q: no verb", cfg.Format)
	}
	return g, nil
}
