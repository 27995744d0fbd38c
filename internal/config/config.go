// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Timers   TimersConfig   `mapstructure:"timers"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StorageConfig selects the persistence backends.
// Backend is "postgres" or "memory"; TimerBackend is "db" or "redis".
type StorageConfig struct {
	Backend      string `mapstructure:"backend"`
	TimerBackend string `mapstructure:"timer_backend"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// RedisConfig holds the optional redis timer store configuration.
type RedisConfig struct {
	URL          string `mapstructure:"url"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// EngineConfig tunes the attempt pipeline.
type EngineConfig struct {
	LockTimeout     time.Duration `mapstructure:"lock_timeout"`
	ConflictRetries int           `mapstructure:"conflict_retries"`
	RandomSeed      int64         `mapstructure:"random_seed"`
}

// TimersConfig tunes expired timer cleanup.
type TimersConfig struct {
	ReaperEnabled  bool          `mapstructure:"reaper_enabled"`
	ReaperInterval time.Duration `mapstructure:"reaper_interval"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the given directory; environment variables
// use the OMERTA_ prefix with underscores, e.g. OMERTA_DATABASE_HOST.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("OMERTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, env vars can provide all config.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("storage.backend", "postgres")
	v.SetDefault("storage.timer_backend", "db")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "omerta")
	v.SetDefault("database.name", "omerta")

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)

	v.SetDefault("engine.lock_timeout", "3s")
	v.SetDefault("engine.conflict_retries", 3)
	v.SetDefault("engine.random_seed", 0)

	v.SetDefault("timers.reaper_enabled", true)
	v.SetDefault("timers.reaper_interval", "1m")
}
