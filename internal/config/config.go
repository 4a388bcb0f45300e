// Package config loads plugin settings from an optional YAML file and
// TRANSLATE_* environment variables. Editor g:translate_* variables still
// take precedence at request time.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/kamecha/denops-translate.vim/internal/authkey"
	"github.com/kamecha/denops-translate.vim/internal/option"
)

const (
	envPrefix = "TRANSLATE"
	dirName   = "denops_translate"
)

// Generic backends.
const (
	ServiceWeb      = "google-web"
	ServiceGoogle   = "google"
	ServiceMyMemory = "mymemory"
)

type Config struct {
	Source   string `mapstructure:"source"`
	Target   string `mapstructure:"target"`
	Endpoint string `mapstructure:"endpoint"`
	// Service picks the generic backend.
	Service           string        `mapstructure:"service"`
	GoogleCredentials string        `mapstructure:"google_credentials"`
	GoogleProject     string        `mapstructure:"google_project"`
	MyMemoryEmail     string        `mapstructure:"mymemory_email"`
	AuthKeyFile       string        `mapstructure:"authkey_file"`
	HistoryDB         string        `mapstructure:"history_db"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// DefaultPath is <config-dir>/denops_translate/config.yaml.
func DefaultPath() (string, error) {
	dir, err := authkey.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dirName, "config.yaml"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("source", option.DefaultSource)
	v.SetDefault("target", option.DefaultTarget)
	v.SetDefault("endpoint", option.DefaultEndpoint)
	v.SetDefault("service", ServiceWeb)
	v.SetDefault("google_credentials", "")
	v.SetDefault("google_project", "")
	v.SetDefault("mymemory_email", "")
	v.SetDefault("authkey_file", "")
	v.SetDefault("history_db", "")
	v.SetDefault("timeout", 30*time.Second)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads path when given. Without a path the default location is used if
// the file exists.
func Load(path string) (*Config, error) {
	v := newViper()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the generic backend name.
func (c *Config) Validate() error {
	switch c.Service {
	case ServiceWeb, ServiceGoogle, ServiceMyMemory:
		return nil
	default:
		return fmt.Errorf("unknown service %q (want %s, %s or %s)", c.Service, ServiceWeb, ServiceGoogle, ServiceMyMemory)
	}
}

// Defaults returns the option defaults the editor variables fall back to.
func (c *Config) Defaults() option.Defaults {
	return option.Defaults{
		Source:   c.Source,
		Target:   c.Target,
		Endpoint: c.Endpoint,
	}
}

// AuthKeyPath returns the configured key file or the XDG default.
func (c *Config) AuthKeyPath() (string, error) {
	if c.AuthKeyFile != "" {
		return c.AuthKeyFile, nil
	}
	return authkey.DefaultPath()
}
