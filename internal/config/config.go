package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"dprefs/internal/logging"
)

// EnvDataDir overrides store.data_dir when set.
const EnvDataDir = "DPREFS_DATA_DIR"

type Config struct {
	Store   StoreConfig   `toml:"store"`
	Codec   CodecConfig   `toml:"codec"`
	Facade  FacadeConfig  `toml:"facade"`
	Logging LoggingConfig `toml:"logging"`
}

type StoreConfig struct {
	DataDir     string `toml:"data_dir"`
	Name        string `toml:"name"`
	OpenTimeout string `toml:"open_timeout"`
}

type CodecConfig struct {
	Format string `toml:"format"`
}

type FacadeConfig struct {
	SerializeWrites bool `toml:"serialize_writes"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		Store: StoreConfig{
			DataDir:     "~/.dprefs",
			Name:        "d_prefs",
			OpenTimeout: "1s",
		},
		Codec: CodecConfig{
			Format: "json",
		},
		Facade: FacadeConfig{
			SerializeWrites: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML config file and returns the parsed Config.
// If path is empty, ~/.dprefs/config.toml is used when present,
// otherwise only defaults apply. DPREFS_DATA_DIR is applied last.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = expandHome("~/.dprefs/config.toml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.Store.DataDir = dir
	}

	return cfg, nil
}

// Validate checks field values and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Store.DataDir) == "" {
		errs = append(errs, errors.New("store.data_dir: must not be empty"))
	}
	if c.Store.Name == "" {
		errs = append(errs, errors.New("store.name: must not be empty"))
	} else if strings.ContainsAny(c.Store.Name, `/\`) {
		errs = append(errs, fmt.Errorf("store.name: %q must not contain path separators", c.Store.Name))
	}
	if c.Store.OpenTimeout != "" {
		if d, err := time.ParseDuration(c.Store.OpenTimeout); err != nil {
			errs = append(errs, fmt.Errorf("store.open_timeout: %w", err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("store.open_timeout: must not be negative"))
		}
	}

	switch strings.ToLower(c.Codec.Format) {
	case "", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("codec.format: unsupported %q (want json or yaml)", c.Codec.Format))
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unsupported %q (want text or json)", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// OpenTimeoutDuration returns store.open_timeout, or zero when unset or invalid.
func (c *Config) OpenTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Store.OpenTimeout)
	if err != nil {
		return 0
	}
	return d
}

// ExpandHome resolves a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
