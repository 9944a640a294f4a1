package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                    string
	DatabaseDSN               string
	RedisAddr                 string
	RedisEnabled              bool
	RateLimit                 int
	DispatchQueueSize         int
	ShutdownTimeoutSeconds    int
	NotificationRetentionDays int
	LogFile                   string
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := os.Getenv("REDIS_HOST")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                    fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:               getEnv("DATABASE_DSN", "tracknest.db"),
		RedisAddr:                 fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisEnabled:              redisHost != "",
		RateLimit:                 getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		DispatchQueueSize:         getEnvAsInt("DISPATCH_QUEUE_SIZE", 64),
		ShutdownTimeoutSeconds:    getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		NotificationRetentionDays: getEnvAsInt("NOTIFICATION_RETENTION_DAYS", 30),
		LogFile:                   os.Getenv("LOG_FILE"),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.DispatchQueueSize <= 0 {
		log.Fatal("DISPATCH_QUEUE_SIZE must be greater than 0")
	}
	if cfg.NotificationRetentionDays <= 0 {
		log.Fatal("NOTIFICATION_RETENTION_DAYS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
