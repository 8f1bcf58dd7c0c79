package config

import (
	"os"
	"strconv"
)

// LoadConfig builds the config from environment variables, falling back to
// development defaults. Callers load .env beforehand if they want one.
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", ""),
			Port:         getEnvOrDefault("SERVER_PORT", "7010"),
			ReadTimeout:  getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "streamalerts"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("DB_NAME", "streamalerts"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoConfig{
			Host:              getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:              getEnvOrDefault("MONGO_PORT", "27017"),
			Username:          getEnvOrDefault("MONGO_USER", ""),
			Password:          getEnvOrDefault("MONGO_PASSWORD", ""),
			Database:          getEnvOrDefault("MONGO_DB", "streamalerts"),
			ArchiveCollection: getEnvOrDefault("MONGO_ARCHIVE_COLLECTION", "alert_archive"),
			Enabled:           getEnvOrDefault("MONGO_ENABLED", "false") == "true",
		},
		Notification: NotificationConfig{
			Workers:                getEnvIntOrDefault("NOTIF_WORKERS", 5),
			ChannelBufferSize:      getEnvIntOrDefault("NOTIF_CHANNEL_BUFFER", 1000),
			AggregationWindowHours: getEnvIntOrDefault("NOTIF_AGGREGATION_WINDOW_HOURS", 24),
			LockShards:             getEnvIntOrDefault("NOTIF_LOCK_SHARDS", 64),
			RetentionMaxAgeDays:    getEnvIntOrDefault("NOTIF_RETENTION_MAX_AGE_DAYS", 90),
			RetentionSweepMinutes:  getEnvIntOrDefault("NOTIF_RETENTION_SWEEP_MINUTES", 60),
			EmailEnabled:           getEnvOrDefault("NOTIF_EMAIL_ENABLED", "false") == "true",
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrDefault("JWT_SECRET", ""),
		},
		Directory: DirectoryConfig{
			BaseURL:       getEnvOrDefault("DIRECTORY_BASE_URL", "http://localhost:7001"),
			EmailRelayURL: getEnvOrDefault("EMAIL_RELAY_URL", ""),
			TimeoutSecs:   getEnvIntOrDefault("DIRECTORY_TIMEOUT_SECS", 5),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
