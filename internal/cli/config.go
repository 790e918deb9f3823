package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/palaeoverse-community/rphylopic/pkg/errors"
)

// Config holds settings loaded from the rphylopic config file.
type Config struct {
	// APIURL overrides the PhyloPic API root, mainly for mirrors and tests.
	APIURL string `toml:"api_url"`

	// TimeoutSeconds bounds each API request. Zero keeps the client default.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// Contact is appended to the User-Agent header so the API operators
	// know who to reach about traffic.
	Contact string `toml:"contact"`
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() Config {
	return Config{TimeoutSeconds: 10}
}

// LoadConfig reads the config file at path, or the default XDG location when
// path is empty. A missing default file yields the defaults; a missing
// explicit file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to read config file %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config file %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.APIURL != "" {
		if err := errors.ValidateURL(c.APIURL); err != nil {
			return err
		}
	}
	if c.TimeoutSeconds < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	return nil
}
