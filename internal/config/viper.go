// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "LEDGER"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Sheet struct {
		ID            string `mapstructure:"id" yaml:"id"`
		GID           string `mapstructure:"gid" yaml:"gid"`
		Range         string `mapstructure:"range" yaml:"range"`
		APIKey        string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
		ExportBaseURL string `mapstructure:"export_base_url" yaml:"export_base_url"`
		APIEndpoint   string `mapstructure:"api_endpoint" yaml:"api_endpoint"`
	} `mapstructure:"sheet" yaml:"sheet"`

	HTTP struct {
		TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"http" yaml:"http"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Server struct {
		Addr           string   `mapstructure:"addr" yaml:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	} `mapstructure:"server" yaml:"server"`

	Display struct {
		Currency string `mapstructure:"currency" yaml:"currency"`
	} `mapstructure:"display" yaml:"display"`

	Categories struct {
		KeywordsFile string `mapstructure:"keywords_file" yaml:"keywords_file"`
	} `mapstructure:"categories" yaml:"categories"`
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config.yaml from $HOME/.sheet-ledger, .sheet-ledger or the
// working directory, then LEDGER_* environment variables.
func InitializeConfig() (*Config, error) {
	return load("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file,
// which must exist.
func InitializeConfigFromFile(path string) (*Config, error) {
	return load(path)
}

func load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.sheet-ledger")
		v.AddConfigPath(".sheet-ledger")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key is also accepted under its conventional unprefixed name
	if err := v.BindEnv("sheet.api_key", EnvPrefix+"_SHEET_API_KEY", "GOOGLE_SHEETS_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GOOGLE_SHEETS_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("sheet.id", DefaultSheetID)
	v.SetDefault("sheet.gid", DefaultSheetGID)
	v.SetDefault("sheet.range", "Sheet1!A:D")
	v.SetDefault("sheet.api_key", "")
	v.SetDefault("sheet.export_base_url", "https://docs.google.com")
	v.SetDefault("sheet.api_endpoint", "")

	v.SetDefault("http.timeout_seconds", 15)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("display.currency", "BGN")
	v.SetDefault("categories.keywords_file", "keywords.yaml")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &parsererror.ValidationError{Field: "log.level", Reason: fmt.Sprintf("unknown level %q", config.Log.Level)}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &parsererror.ValidationError{Field: "log.format", Reason: fmt.Sprintf("%q (must be 'text' or 'json')", config.Log.Format)}
	}

	if strings.TrimSpace(config.Sheet.ID) == "" {
		return &parsererror.ValidationError{Field: "sheet.id", Reason: "must not be empty"}
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return &parsererror.ValidationError{Field: "csv.delimiter", Reason: fmt.Sprintf("must be a single character, got %q", config.CSV.Delimiter)}
	}

	if config.HTTP.TimeoutSeconds < 1 || config.HTTP.TimeoutSeconds > 300 {
		return &parsererror.ValidationError{Field: "http.timeout_seconds", Reason: fmt.Sprintf("must be between 1 and 300, got %d", config.HTTP.TimeoutSeconds)}
	}

	return nil
}

// ConfigureLoggingFromConfig returns a logrus logger set up from the log
// section of the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()
	logging.Configure(logger, config.Log.Level, config.Log.Format)
	return logger
}
