package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// MongoDB Configuration (alert archive)
	MongoDB MongoConfig `json:"mongodb"`

	// Notification pipeline configuration
	Notification NotificationConfig `json:"notification"`

	// Auth Configuration
	Auth AuthConfig `json:"auth"`

	// External collaborators
	Directory DirectoryConfig `json:"directory"`
}

// DirectoryConfig points at the profile/group service that owns membership
// data and the email relay that owns address lookup and transport.
type DirectoryConfig struct {
	BaseURL       string `json:"base_url"`
	EmailRelayURL string `json:"email_relay_url"`
	TimeoutSecs   int    `json:"timeout_secs"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains the archive store configuration. The archive only
// receives alerts the retention sweeper expires out of MySQL, so it can be
// disabled entirely.
type MongoConfig struct {
	Host              string `json:"host"`
	Port              string `json:"port"`
	Username          string `json:"username"`
	Password          string `json:"password"`
	Database          string `json:"database"`
	ArchiveCollection string `json:"archive_collection"`
	Enabled           bool   `json:"enabled"`
}

// NotificationConfig contains pipeline tuning knobs
type NotificationConfig struct {
	Workers                int  `json:"workers"`                  // Number of worker goroutines
	ChannelBufferSize      int  `json:"channel_buffer_size"`      // Async event channel buffer size
	AggregationWindowHours int  `json:"aggregation_window_hours"` // How long an unread alert keeps absorbing repeats
	LockShards             int  `json:"lock_shards"`              // Stripes for per-aggregation-key locking
	RetentionMaxAgeDays    int  `json:"retention_max_age_days"`   // Read alerts older than this get archived
	RetentionSweepMinutes  int  `json:"retention_sweep_minutes"`  // Sweep interval
	EmailEnabled           bool `json:"email_enabled"`
}

// AuthConfig contains API auth configuration. An empty secret disables auth.
type AuthConfig struct {
	JWTSecret string `json:"jwt_secret"`
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Host == "" {
		cfg.MongoDB.Host = "localhost"
	}
	if cfg.MongoDB.Port == "" {
		cfg.MongoDB.Port = "27017"
	}

	if cfg.MongoDB.Username != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s",
			cfg.MongoDB.Username, cfg.MongoDB.Password, cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
}

// AggregationWindow is how long an unread alert keeps absorbing repeat events
// before a fresh one is started.
func (cfg *Config) AggregationWindow() time.Duration {
	hours := cfg.Notification.AggregationWindowHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// RetentionMaxAge is the age past which read alerts are moved to the archive.
func (cfg *Config) RetentionMaxAge() time.Duration {
	days := cfg.Notification.RetentionMaxAgeDays
	if days <= 0 {
		days = 90
	}
	return time.Duration(days) * 24 * time.Hour
}

// RetentionSweepInterval is how often the sweeper runs.
func (cfg *Config) RetentionSweepInterval() time.Duration {
	minutes := cfg.Notification.RetentionSweepMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}
