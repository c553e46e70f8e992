// Package config holds runtime settings for pomopet.
//
// Values are layered: defaults, then the YAML file, then POMOPET_*
// environment variables, then command-line flags. Later sources win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the state directory.
const FileName = "config.yaml"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	StateDir          string        `yaml:"state_dir"`
	Backend           string        `yaml:"backend"`
	Focus             time.Duration `yaml:"focus"`
	ShortBreak        time.Duration `yaml:"short_break"`
	LongBreak         time.Duration `yaml:"long_break"`
	Reward            int           `yaml:"reward"`
	MotivationTimeout time.Duration `yaml:"motivation_timeout"`
	GeminiAPIKey      string        `yaml:"gemini_api_key"`
	GeminiModel       string        `yaml:"gemini_model"`
	LogFile           string        `yaml:"log_file"`
}

// DefaultStateDir is ~/.config/pomopet, or ./.pomopet if there is no home.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pomopet"
	}
	return filepath.Join(home, ".config", "pomopet")
}

// LoadDefaults populates c with the defaults.
func (c *Config) LoadDefaults() {
	c.StateDir = DefaultStateDir()
	c.Backend = "json"
	c.Focus = 25 * time.Minute
	c.ShortBreak = 5 * time.Minute
	c.LongBreak = 15 * time.Minute
	c.Reward = 25
	c.MotivationTimeout = 8 * time.Second
	c.GeminiModel = "gemini-2.5-flash"
	c.LogFile = ""
}

// Load applies defaults, the YAML file and the environment. An explicit
// path must exist; otherwise <state dir>/config.yaml is used if present.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if dir := getEnv("POMOPET_STATE_DIR", ""); dir != "" {
		cfg.StateDir = dir
	}

	required := path != ""
	if !required {
		path = filepath.Join(cfg.StateDir, FileName)
	}
	if err := cfg.parseFile(path, required); err != nil {
		return nil, err
	}
	if err := cfg.parseEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) parseFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) parseEnv() error {
	c.StateDir = getEnv("POMOPET_STATE_DIR", c.StateDir)
	c.Backend = getEnv("POMOPET_BACKEND", c.Backend)
	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnv("POMOPET_GEMINI_MODEL", c.GeminiModel)
	c.LogFile = getEnv("POMOPET_LOG_FILE", c.LogFile)

	var err error
	if c.Focus, err = getEnvDuration("POMOPET_FOCUS", c.Focus); err != nil {
		return err
	}
	if c.ShortBreak, err = getEnvDuration("POMOPET_SHORT_BREAK", c.ShortBreak); err != nil {
		return err
	}
	if c.LongBreak, err = getEnvDuration("POMOPET_LONG_BREAK", c.LongBreak); err != nil {
		return err
	}
	if c.MotivationTimeout, err = getEnvDuration("POMOPET_MOTIVATION_TIMEOUT", c.MotivationTimeout); err != nil {
		return err
	}
	if c.Reward, err = getEnvInt("POMOPET_REWARD", c.Reward); err != nil {
		return err
	}
	return nil
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to config file (default <state-dir>/config.yaml)")
	fs.String("state-dir", "", "directory holding saved state")
	fs.String("backend", "", "storage backend: json or sqlite")
	fs.Duration("focus", 0, "focus session length")
	fs.Duration("short-break", 0, "short break length")
	fs.Duration("long-break", 0, "long break length")
	fs.Int("reward", 0, "coins per completed focus session")
	fs.String("log-file", "", "log file used while the TUI runs")
}

// ApplyFlags overlays the flags the user actually set.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "state-dir":
			c.StateDir = f.Value.String()
		case "backend":
			c.Backend = f.Value.String()
		case "log-file":
			c.LogFile = f.Value.String()
		case "focus":
			c.Focus, err = fs.GetDuration(f.Name)
		case "short-break":
			c.ShortBreak, err = fs.GetDuration(f.Name)
		case "long-break":
			c.LongBreak, err = fs.GetDuration(f.Name)
		case "reward":
			c.Reward, err = fs.GetInt(f.Name)
		}
	})
	if err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks the values the timer and ledger rely on.
func (c *Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"focus", c.Focus},
		{"short_break", c.ShortBreak},
		{"long_break", c.LongBreak},
	}
	for _, f := range durations {
		if f.d < time.Second || f.d%time.Second != 0 {
			return fmt.Errorf("%w: %s must be a positive whole number of seconds, got %s", ErrInvalidConfig, f.name, f.d)
		}
	}
	if c.Reward < 1 {
		return fmt.Errorf("%w: reward must be at least 1 coin, got %d", ErrInvalidConfig, c.Reward)
	}
	if c.Backend != "json" && c.Backend != "sqlite" {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if c.StateDir == "" {
		return fmt.Errorf("%w: state dir is required", ErrInvalidConfig)
	}
	return nil
}

// LogPath is the configured log file, defaulting to pomopet.log in the
// state dir.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.StateDir, "pomopet.log")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, value)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, value)
	}
	return parsed, nil
}
