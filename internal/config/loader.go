package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaults also registers every key with viper, which is what lets
// APP_* variables reach Unmarshal when the YAML omits a key.
var defaults = map[string]any{
	"app.name":             "customer-pages-service",
	"app.version":          "0.1.0",
	"app.env":              "prod",
	"app.port":             8080,
	"app.read_timeout":     10,
	"app.write_timeout":    10,
	"app.shutdown_timeout": 15,

	"logger.level":         "",
	"logger.format":        "",
	"logger.output_target": "",
	"logger.time_field":    "",
	"logger.time_format":   "",
	"logger.env":           "",

	"postgres.host":                "localhost",
	"postgres.port":                5432,
	"postgres.user":                "",
	"postgres.password":            "",
	"postgres.db":                  "",
	"postgres.sslmode":             "disable",
	"postgres.max_conns":           10,
	"postgres.min_conns":           1,
	"postgres.max_conn_lifetime":   3600,
	"postgres.max_conn_idle_time":  300,
	"postgres.health_check_period": 30,
	"postgres.migrate_on_start":    false,

	"pagination.default_page_size":    10,
	"pagination.max_page_size":        100,
	"pagination.max_navigation_pages": 5,
}

// LoadDotEnv loads variables from a .env file if one exists. Variables
// already present in the environment win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the YAML file at path, applies APP_* overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}
