package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mrhapile/zip2ipa/pkg/classifier"
	"github.com/mrhapile/zip2ipa/pkg/types"
)

// EnvPrefix prefixes environment overrides, e.g. ZIP2IPA_SERVER_ADDR.
const EnvPrefix = "ZIP2IPA"

// Config is the complete zip2ipa configuration.
type Config struct {
	Server     ServerConfig     `json:"server" mapstructure:"server"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
	Conversion ConversionConfig `json:"conversion" mapstructure:"conversion"`

	// Markers replaces the built-in marker table when non-empty.
	Markers []types.Marker `json:"markers" mapstructure:"markers"`
}

// ServerConfig contains HTTP surface settings.
type ServerConfig struct {
	Addr           string `json:"addr" mapstructure:"addr"`
	UploadDir      string `json:"uploadDir" mapstructure:"uploadDir"`
	MaxUploadBytes int64  `json:"maxUploadBytes" mapstructure:"maxUploadBytes"`
}

// LoggingConfig contains logging settings. An empty File logs to stderr.
type LoggingConfig struct {
	Level      string `json:"level" mapstructure:"level"`
	Format     string `json:"format" mapstructure:"format"`
	File       string `json:"file" mapstructure:"file"`
	MaxSizeMB  int    `json:"maxSizeMB" mapstructure:"maxSizeMB"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays" mapstructure:"maxAgeDays"`
	Compress   bool   `json:"compress" mapstructure:"compress"`
}

// ConversionConfig controls output naming and accepted inputs.
type ConversionConfig struct {
	Suffix            string   `json:"suffix" mapstructure:"suffix"`
	AllowedExtensions []string `json:"allowedExtensions" mapstructure:"allowedExtensions"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			UploadDir:      "",
			MaxUploadBytes: 500 << 20,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  15,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
		Conversion: ConversionConfig{
			Suffix:            ".ipa",
			AllowedExtensions: []string{".zip"},
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.uploadDir", d.Server.UploadDir)
	v.SetDefault("server.maxUploadBytes", d.Server.MaxUploadBytes)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.maxSizeMB", d.Logging.MaxSizeMB)
	v.SetDefault("logging.maxBackups", d.Logging.MaxBackups)
	v.SetDefault("logging.maxAgeDays", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)
	v.SetDefault("conversion.suffix", d.Conversion.Suffix)
	v.SetDefault("conversion.allowedExtensions", d.Conversion.AllowedExtensions)
}

// Load reads configuration from path, or from zip2ipa.{yaml,json,toml} in
// the working directory when path is empty. A missing default file is not
// an error. Variables from a .env file and ZIP2IPA_* environment variables
// override file values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("zip2ipa")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
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

// MarkerTable returns the configured markers, or the built-in table.
func (c *Config) MarkerTable() types.MarkerTable {
	if len(c.Markers) == 0 {
		return classifier.DefaultMarkers
	}
	return types.NewMarkerTable(c.Markers...)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return &ConfigError{Field: "server.addr", Message: "must not be empty"}
	}
	if c.Server.MaxUploadBytes <= 0 {
		return &ConfigError{Field: "server.maxUploadBytes", Message: "must be positive"}
	}
	if c.Conversion.Suffix == "" {
		return &ConfigError{Field: "conversion.suffix", Message: "must not be empty"}
	}
	if len(c.Conversion.AllowedExtensions) == 0 {
		return &ConfigError{Field: "conversion.allowedExtensions", Message: "must list at least one extension"}
	}
	for i, m := range c.Markers {
		if m.Token == "" {
			return &ConfigError{Field: fmt.Sprintf("markers[%d].token", i), Message: "must not be empty"}
		}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}
