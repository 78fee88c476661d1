// Package config loads CLI settings from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ukaji3/shapekit-go/pkg/shapekit"
)

// Config holds application configuration.
type Config struct {
	Extract ExtractConfig
	Output  OutputConfig
	Log     LogConfig
}

// ExtractConfig holds extraction settings.
type ExtractConfig struct {
	Mode string
}

// OutputConfig holds serialization settings.
type OutputConfig struct {
	Format string
	Pretty bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix
// SHAPEKIT_. path, when set, names the config file explicitly and must exist;
// otherwise SHAPEKIT_CONFIG or ~/.config/shapekit/config.yaml is read if present.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("extract.mode", string(shapekit.ModeStandard))
	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", false)
	v.SetDefault("log.level", "info")

	v.SetConfigType("yaml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("SHAPEKIT_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "shapekit"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SHAPEKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || (!errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist)) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, err := shapekit.ParseMode(c.Extract.Mode); err != nil {
		return fmt.Errorf("extract.mode: %w", err)
	}
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("output.format: unsupported format %q (must be json or yaml): %w",
			c.Output.Format, shapekit.ErrInvalidArgument)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unsupported level %q: %w", c.Log.Level, shapekit.ErrInvalidArgument)
	}
	return nil
}
