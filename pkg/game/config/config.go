// Package config reads game settings from flags, the environment and an
// optional .env file. Flags win over the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"hexmath/pkg/game/puzzle"
)

// Environment variable names
const (
	EnvLevel     = "HEXMATH_LEVEL"
	EnvLevels    = "HEXMATH_LEVELS"
	EnvCooldown  = "HEXMATH_COOLDOWN"
	EnvLogLevel  = "HEXMATH_LOG_LEVEL"
	EnvLogFile   = "HEXMATH_LOG_FILE"
	EnvLocaleDir = "HEXMATH_LOCALE_DIR"
	EnvLang      = "HEXMATH_LANG"
)

// Config holds the runtime settings
type Config struct {
	StartLevel int           // 1-based level to start on
	LevelsPath string        // Level pack file; empty means the built-in pack
	Cooldown   time.Duration // How long used tiles stay locked
	LogLevel   string
	LogFile    string
	LocaleDir  string
	Language   string
	EnvFile    string
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		StartLevel: 1,
		Cooldown:   puzzle.DefaultCooldown,
		LogLevel:   "warning",
		Language:   "en",
		EnvFile:    ".env",
	}
}

// Load parses args (without the program name). A missing .env file is not an error.
func Load(args []string) (Config, error) {
	cfg := Default()

	fset := flag.NewFlagSet("hexmath", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	fset.IntVar(&cfg.StartLevel, "level", cfg.StartLevel, "starting level number")
	fset.StringVar(&cfg.LevelsPath, "levels", cfg.LevelsPath, "level pack JSON file (default: built-in levels)")
	fset.DurationVar(&cfg.Cooldown, "cooldown", cfg.Cooldown, "how long used tiles stay locked after an attempt")
	fset.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warning, error)")
	fset.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write logs to this file instead of stderr")
	fset.StringVar(&cfg.LocaleDir, "locales", cfg.LocaleDir, "directory with translation catalogues")
	fset.StringVar(&cfg.Language, "lang", cfg.Language, "interface language")
	fset.StringVar(&cfg.EnvFile, "env", cfg.EnvFile, "environment file to load")

	if err := fset.Parse(args); err != nil {
		return cfg, fmt.Errorf("parsing flags: %w", err)
	}

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("loading %s: %w", cfg.EnvFile, err)
		}
	}

	explicit := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	if err := cfg.applyEnv(explicit); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(explicit map[string]bool) error {
	if v, ok := os.LookupEnv(EnvLevel); ok && !explicit["level"] {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLevel, err)
		}
		c.StartLevel = n
	}
	if v, ok := os.LookupEnv(EnvCooldown); ok && !explicit["cooldown"] {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCooldown, err)
		}
		c.Cooldown = d
	}

	for name, target := range map[string]*string{
		"levels":    &c.LevelsPath,
		"log-level": &c.LogLevel,
		"log-file":  &c.LogFile,
		"locales":   &c.LocaleDir,
		"lang":      &c.Language,
	} {
		if explicit[name] {
			continue
		}
		if v, ok := os.LookupEnv(envFor(name)); ok {
			*target = v
		}
	}
	return nil
}

func envFor(flagName string) string {
	switch flagName {
	case "levels":
		return EnvLevels
	case "log-level":
		return EnvLogLevel
	case "log-file":
		return EnvLogFile
	case "locales":
		return EnvLocaleDir
	case "lang":
		return EnvLang
	default:
		return ""
	}
}

// Validate checks ranges that flag parsing cannot
func (c Config) Validate() error {
	if c.StartLevel < 1 {
		return fmt.Errorf("level must be 1 or greater, got %d", c.StartLevel)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("cooldown must not be negative, got %v", c.Cooldown)
	}
	return nil
}
