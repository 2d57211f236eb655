// Package config loads modaldemo settings from flags, MODALDEMO_* environment
// variables and an optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"modalstack/internal/logging"
	"modalstack/internal/stack"
)

// EnvPrefix prefixes every environment variable, e.g. MODALDEMO_LOG_LEVEL.
const EnvPrefix = "MODALDEMO"

// Keys double as flag names.
const (
	KeyLogLevel         = "log-level"
	KeyLogFile          = "log-file"
	KeyToastTimeout     = "toast-timeout"
	KeyToastDismissable = "toast-dismissable"
	KeyTabPolicy        = "tab-policy"
	KeyAltScreen        = "alt-screen"
)

// Config holds the demo settings.
type Config struct {
	LogLevel         string
	LogFile          string
	ToastTimeout     time.Duration
	ToastDismissable bool
	TabPolicy        string
	AltScreen        bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:         "info",
		ToastTimeout:     4 * time.Second,
		ToastDismissable: true,
		TabPolicy:        stack.SelectFirst.String(),
		AltScreen:        true,
	}
}

// AddFlags registers one flag per key on fs, defaulting to Default.
func AddFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyLogLevel, d.LogLevel, "Log level: debug, info or error")
	fs.String(KeyLogFile, d.LogFile, "Write logs to this file (empty disables logging)")
	fs.Duration(KeyToastTimeout, d.ToastTimeout, "How long toasts stay up; 0 keeps them until dismissed")
	fs.Bool(KeyToastDismissable, d.ToastDismissable, "Give toasts a dismiss button")
	fs.String(KeyTabPolicy, d.TabPolicy, "Tab selected after closing the active one: first or last")
	fs.Bool(KeyAltScreen, d.AltScreen, "Run in the terminal's alternate screen")
}

// NewViper returns a viper instance reading MODALDEMO_* variables and, when
// present, config.yaml from configFile or the standard search dirs.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		for _, dir := range SearchDirs() {
			v.AddConfigPath(dir)
		}
	}
	d := Default()
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyToastTimeout, d.ToastTimeout)
	v.SetDefault(KeyToastDismissable, d.ToastDismissable)
	v.SetDefault(KeyTabPolicy, d.TabPolicy)
	v.SetDefault(KeyAltScreen, d.AltScreen)
	return v
}

// ReadFile reads the config file. A missing file is fine unless strict.
func ReadFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && !strict {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load decodes v into a validated Config.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogLevel:         v.GetString(KeyLogLevel),
		LogFile:          v.GetString(KeyLogFile),
		ToastTimeout:     v.GetDuration(KeyToastTimeout),
		ToastDismissable: v.GetBool(KeyToastDismissable),
		TabPolicy:        v.GetString(KeyTabPolicy),
		AltScreen:        v.GetBool(KeyAltScreen),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	if c.ToastTimeout < 0 {
		return fmt.Errorf("%s: must not be negative, got %s", KeyToastTimeout, c.ToastTimeout)
	}
	if _, err := stack.ParsePolicy(c.TabPolicy); err != nil {
		return fmt.Errorf("%s: %w", KeyTabPolicy, err)
	}
	return nil
}

// Policy returns the parsed tab policy. Call Validate first.
func (c Config) Policy() stack.Policy {
	p, _ := stack.ParsePolicy(c.TabPolicy)
	return p
}

// SearchDirs lists the directories searched for config.yaml.
func SearchDirs() []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		dirs = append(dirs, path)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, "modaldemo"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", "modaldemo"))
		add(filepath.Join(home, ".modaldemo"))
	}
	return dirs
}
