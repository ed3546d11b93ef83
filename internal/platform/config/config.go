package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	Environment   string
	RunMigrations bool
	MigrationsDir string
	MaxBodyBytes  int64

	// Daily leave cycle reset. The timezone is a deployment parameter; the
	// reset job fires once per day at ResetTime local wall-clock time.
	ResetTime     string
	ResetTimezone string

	EmailEnabled bool
	EmailFrom    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPUseTLS   bool

	MetricsEnabled bool
}

func Load() Config {
	return Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		Environment:    getEnv("APP_ENV", "development"),
		RunMigrations:  getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		ResetTime:      getEnv("LEAVE_RESET_TIME", "00:05"),
		ResetTimezone:  getEnv("LEAVE_RESET_TIMEZONE", "Asia/Kolkata"),
		EmailEnabled:   getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@example.com"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:     getEnvBool("SMTP_USE_TLS", true),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// ResetClock parses ResetTime into hour and minute.
func (c Config) ResetClock() (int, int, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(c.ResetTime))
	if err != nil {
		return 0, 0, fmt.Errorf("LEAVE_RESET_TIME must be HH:MM: %w", err)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if _, _, err := c.ResetClock(); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.ResetTimezone); err != nil {
		return fmt.Errorf("LEAVE_RESET_TIMEZONE is not a valid IANA zone: %w", err)
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}
