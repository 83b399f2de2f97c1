// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/khoroch-khata/internal/logging"
)

// Storage backends accepted by storage.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// MinPasswordLength is the floor for auth.min_password_length.
const MinPasswordLength = 6

// MinAdvisorTransactions is the floor for ai.min_transactions.
const MinAdvisorTransactions = 5

// MaxReminderIntervalSeconds caps reminders.interval_seconds. Reminders
// match on the exact minute, so a longer poll would skip them.
const MaxReminderIntervalSeconds = 60

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Storage struct {
		Backend string `mapstructure:"backend" yaml:"backend"`
		Path    string `mapstructure:"path" yaml:"path"`
		Key     string `mapstructure:"key" yaml:"key"`
	} `mapstructure:"storage" yaml:"storage"`

	AI struct {
		Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
		Model             string `mapstructure:"model" yaml:"model"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		MinTransactions   int    `mapstructure:"min_transactions" yaml:"min_transactions"`
		APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Locale struct {
		WeekendDays []int `mapstructure:"weekend_days" yaml:"weekend_days"`
	} `mapstructure:"locale" yaml:"locale"`

	Reminders struct {
		Enabled         bool `mapstructure:"enabled" yaml:"enabled"`
		IntervalSeconds int  `mapstructure:"interval_seconds" yaml:"interval_seconds"`
	} `mapstructure:"reminders" yaml:"reminders"`

	Categorization struct {
		KeywordsFile string `mapstructure:"keywords_file" yaml:"keywords_file"`
		HintSeconds  int    `mapstructure:"hint_seconds" yaml:"hint_seconds"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Auth struct {
		MinPasswordLength int  `mapstructure:"min_password_length" yaml:"min_password_length"`
		HashPasswords     bool `mapstructure:"hash_passwords" yaml:"hash_passwords"`
	} `mapstructure:"auth" yaml:"auth"`

	Export struct {
		CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
		BackupPrefix string `mapstructure:"backup_prefix" yaml:"backup_prefix"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFrom("")
}

// InitializeConfigFrom behaves like InitializeConfig but reads the given file
// instead of searching the standard locations when configFile is not empty.
func InitializeConfigFrom(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.khoroch-khata")
		v.AddConfigPath(".khoroch-khata")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("KHATA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key always comes from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
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

// Default returns the configuration produced by defaults alone, without
// touching the environment or the filesystem.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Unmarshalling plain defaults cannot fail.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", "khoroch_khata_data.json")
	v.SetDefault("storage.key", "khoroch_khata_data")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.min_transactions", MinAdvisorTransactions)

	// Friday and Saturday are the rest days in Bangladesh.
	v.SetDefault("locale.weekend_days", []int{5, 6})

	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.interval_seconds", 60)

	v.SetDefault("categorization.keywords_file", "")
	v.SetDefault("categorization.hint_seconds", 2)

	v.SetDefault("auth.min_password_length", MinPasswordLength)
	v.SetDefault("auth.hash_passwords", true)

	v.SetDefault("export.csv_delimiter", ",")
	v.SetDefault("export.backup_prefix", "khoroch-khata-backup")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Storage.Backend {
	case BackendFile, BackendSQLite:
		if config.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s backend", config.Storage.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'file', 'sqlite' or 'memory')", config.Storage.Backend)
	}

	if config.Storage.Key == "" {
		return fmt.Errorf("storage.key must not be empty")
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if config.AI.MinTransactions < MinAdvisorTransactions {
		return fmt.Errorf("ai.min_transactions must be at least %d, got: %d", MinAdvisorTransactions, config.AI.MinTransactions)
	}

	if len(config.Locale.WeekendDays) > 7 {
		return fmt.Errorf("locale.weekend_days lists more than seven days")
	}
	for _, day := range config.Locale.WeekendDays {
		if day < 0 || day > 6 {
			return fmt.Errorf("locale.weekend_days must be weekday indices 0-6 (Sunday=0), got: %d", day)
		}
	}

	if config.Reminders.IntervalSeconds < 1 || config.Reminders.IntervalSeconds > MaxReminderIntervalSeconds {
		return fmt.Errorf("reminders.interval_seconds must be between 1 and %d, got: %d", MaxReminderIntervalSeconds, config.Reminders.IntervalSeconds)
	}

	if config.Categorization.HintSeconds < 0 {
		return fmt.Errorf("categorization.hint_seconds must not be negative, got: %d", config.Categorization.HintSeconds)
	}

	if config.Auth.MinPasswordLength < MinPasswordLength {
		return fmt.Errorf("auth.min_password_length must be at least %d, got: %d", MinPasswordLength, config.Auth.MinPasswordLength)
	}

	if len([]rune(config.Export.CSVDelimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Export.CSVDelimiter)
	}

	return nil
}

// ConfigureLoggingFromConfig returns a logrus logger set up from the log
// section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()
	logging.Configure(logger, config.Log.Level, config.Log.Format)
	return logger
}
