package config

import (
	"github.com/maxviazov/customer-pages-service/internal/logger"
)

// Config is the full application configuration as read from config.yaml and APP_* env.
type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
}

type AppConfig struct {
	Name            string `mapstructure:"name"`
	Version         string `mapstructure:"version"`
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     int    `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    int    `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// PostgresConfig holds connection and pool tuning. Durations are in seconds.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"gte=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"gte=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time" validate:"gte=0"`
	HealthCheckPeriod int    `mapstructure:"health_check_period" validate:"gte=0"`
	MigrateOnStart    bool   `mapstructure:"migrate_on_start"`
}

// PaginationConfig sets listing defaults applied when a request omits them.
type PaginationConfig struct {
	DefaultPageSize    int `mapstructure:"default_page_size" validate:"gte=1,ltefield=MaxPageSize"`
	MaxPageSize        int `mapstructure:"max_page_size" validate:"gte=1"`
	MaxNavigationPages int `mapstructure:"max_navigation_pages" validate:"gte=1"`
}
