package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. LEITNER_DATABASE_URL for database.url.
const EnvPrefix = "LEITNER"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":            "server.port",
	"log-level":       "server.log_level",
	"log-format":      "server.log_format",
	"database-driver": "database.driver",
	"database-url":    "database.url",
	"max-bucket":      "scheduler.max_bucket",
	"advance-cron":    "scheduler.advance_cron",
}

// RegisterFlags defines the flags understood by Load.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a config file (default ./config.yaml if present)")
	flags.String("env-file", ".env", "path to a .env file; ignored when missing")
	flags.Int("port", 0, "HTTP listen port")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: json or text")
	flags.String("database-driver", "", "database driver: postgres or sqlite")
	flags.String("database-url", "", "database connection string")
	flags.Int("max-bucket", 0, "highest Leitner bucket")
	flags.String("advance-cron", "", "cron expression for automatic day advance")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("scheduler.max_bucket", 7)
	v.SetDefault("scheduler.advance_cron", "")
}

// Load builds the configuration. Sources, from lowest to highest precedence:
// defaults, the config file, the .env file, LEITNER_ environment variables
// and explicitly set flags. flags may be nil.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	configFile, envFile := "", ".env"
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
		if f := flags.Lookup("env-file"); f != nil {
			envFile = f.Value.String()
		}
	}

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	// godotenv never overrides variables already present in the environment.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
