package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort                    string
	DBHost                      string
	DBPort                      string
	DBUser                      string
	DBPassword                  string
	DBName                      string
	DBSslMode                   string
	KafkaBrokers                []string
	KafkaOrderEventsTopic       string
	RedisAddr                   string
	StoreCacheTTL               time.Duration
	JWTSecret                   string
	OrderLockMaxAge             time.Duration
	RateLimitRPS                float64
	RateLimitBurst              int
	BackOrderAllocationSchedule string
	LockReaperSchedule          string
}

// LoadConfig reads the configuration from the environment. Values in envFile are loaded
// first when the file exists; variables already set in the environment win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		HTTPPort:                    getEnv("HTTP_PORT", "8080"),
		DBHost:                      getEnv("DB_HOST", "localhost"),
		DBPort:                      getEnv("DB_PORT", "5432"),
		DBUser:                      getEnv("DB_USER", "postgres"),
		DBPassword:                  getEnv("DB_PASSWORD", ""),
		DBName:                      getEnv("DB_NAME", "commerce"),
		DBSslMode:                   getEnv("DB_SSLMODE", "disable"),
		KafkaBrokers:                getEnvAsList("KAFKA_BROKERS"),
		KafkaOrderEventsTopic:       getEnv("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
		RedisAddr:                   getEnv("REDIS_ADDR", ""),
		JWTSecret:                   getEnv("JWT_SECRET", ""),
		BackOrderAllocationSchedule: getEnv("BACKORDER_ALLOCATION_SCHEDULE", "@every 1m"),
		LockReaperSchedule:          getEnv("LOCK_REAPER_SCHEDULE", "@every 5m"),
	}

	var err error
	if cfg.StoreCacheTTL, err = getEnvAsDuration("STORE_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.OrderLockMaxAge, err = getEnvAsDuration("ORDER_LOCK_MAX_AGE", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = getEnvAsFloat("RATE_LIMIT_RPS", 0); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 20); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
