// Package config loads reconciler settings from flags, environment variables,
// .env files and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment variables, e.g. RECONCILER_LOG_LEVEL.
const EnvPrefix = "RECONCILER"

// Config holds the application configuration.
type Config struct {
	LogLevel  string
	LogFormat string
	LogOutput string

	// ProfilesFile is a YAML file adding category profiles or renaming columns.
	ProfilesFile string

	// Addr is the listen address of the HTTP service.
	Addr string

	// Format is the default report format.
	Format string

	// ConfigFile is the config file actually read, if any.
	ConfigFile string
}

// Error represents a configuration error
type Error struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error in %s: %s: %v", e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	v.SetDefault("addr", ":8080")
	v.SetDefault("format", "xlsx")
	v.SetDefault("profiles_file", "")
	return v
}

// Load reads configuration in order of precedence:
// 1. Command-line flags (bound to v by the caller)
// 2. Environment variables
// 3. .env files
// 4. Config file (--config, or .reconciler.yaml in . or $HOME)
// 5. Defaults
func Load(v *viper.Viper, configFile string) (*Config, error) {
	// .env values never override variables already set in the environment.
	_ = godotenv.Load()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".reconciler")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, &Error{Component: "config file", Message: "failed to read", Err: err}
		}
	}

	return &Config{
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
		LogOutput:    v.GetString("log_output"),
		ProfilesFile: v.GetString("profiles_file"),
		Addr:         v.GetString("addr"),
		Format:       v.GetString("format"),
		ConfigFile:   v.ConfigFileUsed(),
	}, nil
}
