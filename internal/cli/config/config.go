package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides (TYPEINFO_OUTPUT_FORMAT, ...).
const EnvPrefix = "TYPEINFO"

// Config represents the typeinfo CLI configuration
type Config struct {
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
	Registry RegistryConfig `mapstructure:"registry"`
}

// OutputConfig controls how command results are rendered
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// LogConfig controls the CLI logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RegistryConfig controls registry behavior
type RegistryConfig struct {
	AutoIntrospect bool `mapstructure:"auto_introspect"`
}

// Valid values for validated settings
var (
	OutputFormats = []string{"table", "json", "yaml"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
	LogFormats    = []string{"development", "production"}
)

// Load loads the configuration from typeinfo.yml or typeinfo.yaml in the
// working directory, or from path when it is non-empty.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("output.format", "table")
	v.SetDefault("output.no_color", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "development")
	v.SetDefault("registry.auto_introspect", true)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("typeinfo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Output:   OutputConfig{Format: "table"},
		Log:      LogConfig{Level: "warn", Format: "development"},
		Registry: RegistryConfig{AutoIntrospect: true},
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if !contains(OutputFormats, cfg.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got: %s", strings.Join(OutputFormats, ", "), cfg.Output.Format)
	}
	if !contains(LogLevels, cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of %s, got: %s", strings.Join(LogLevels, ", "), cfg.Log.Level)
	}
	if !contains(LogFormats, cfg.Log.Format) {
		return fmt.Errorf("log.format must be one of %s, got: %s", strings.Join(LogFormats, ", "), cfg.Log.Format)
	}
	return nil
}

// Validate checks a configuration assembled outside Load (flag overrides).
func Validate(cfg *Config) error {
	return validateConfig(cfg)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
