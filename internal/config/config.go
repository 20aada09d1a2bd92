// Package config resolves clicker-session settings from the config file,
// CLICKER_* environment variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".clicker-session"
	envPrefix  = "CLICKER"

	KeyStateDir               = "state.dir"
	KeyRejectDuplicateDevices = "roster.reject_duplicate_devices"
	KeySkipUnknownDevices     = "classify.skip_unknown_devices"
	KeyExportFormat           = "export.format"
)

// Config holds the resolved settings
type Config struct {
	State    StateConfig    `toml:"state" mapstructure:"state"`
	Roster   RosterConfig   `toml:"roster" mapstructure:"roster"`
	Classify ClassifyConfig `toml:"classify" mapstructure:"classify"`
	Export   ExportConfig   `toml:"export" mapstructure:"export"`
}

// StateConfig locates the session state directory
type StateConfig struct {
	Dir string `toml:"dir" mapstructure:"dir"`
}

// RosterConfig controls roster loading
type RosterConfig struct {
	RejectDuplicateDevices bool `toml:"reject_duplicate_devices" mapstructure:"reject_duplicate_devices"`
}

// ClassifyConfig controls response classification
type ClassifyConfig struct {
	SkipUnknownDevices bool `toml:"skip_unknown_devices" mapstructure:"skip_unknown_devices"`
}

// ExportConfig sets export defaults
type ExportConfig struct {
	Format string `toml:"format" mapstructure:"format"`
}

// DefaultDir returns $HOME/.clicker-session
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir), nil
}

// Default returns the built-in settings rooted at dir
func Default(dir string) Config {
	return Config{
		State:  StateConfig{Dir: dir},
		Export: ExportConfig{Format: "csv"},
	}
}

// Load reads settings. An explicit configFile must exist; otherwise the
// default location is optional.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	// A missing .env file is normal.
	_ = godotenv.Load()

	dir, err := DefaultDir()
	if err != nil {
		return Config{}, err
	}
	defaults := Default(dir)

	v.SetDefault(KeyStateDir, defaults.State.Dir)
	v.SetDefault(KeyRejectDuplicateDevices, defaults.Roster.RejectDuplicateDevices)
	v.SetDefault(KeySkipUnknownDevices, defaults.Classify.SkipUnknownDevices)
	v.SetDefault(KeyExportFormat, defaults.Export.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.State.Dir == "" {
		return Config{}, errors.New("state directory is empty")
	}
	return cfg, nil
}

// WriteDefault writes cfg as TOML to path, refusing to overwrite unless force
func WriteDefault(path string, cfg Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}
