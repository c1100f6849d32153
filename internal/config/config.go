// Package config
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Address   string
	Mode      string
	Interval  time.Duration
	LogLevel  string
	LogFormat string

	DBPath string

	JWTSecret         string
	JWTExpiry         time.Duration
	AdminPasswordHash string
	AllowedOrigins    []string

	NotificationsEnabled bool
	DesktopNotifications bool
	NotificationIcon     string

	NotificationRetention time.Duration

	AggregateSubtree bool
	StreamFormat     string
}

const (
	ModeServe    = "serve"
	ModeStream   = "stream"
	ModeSnapshot = "snapshot"
)

const (
	StreamJSON = "json"
	StreamCBOR = "cbor"
)

// Load reads .env (when present) and the process environment.
func Load() *Config {
	godotenv.Load()
	return FromEnv()
}

// LoadFile reads the named env files instead of .env.
func LoadFile(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		return nil, err
	}
	return FromEnv(), nil
}

func FromEnv() *Config {
	return &Config{
		Address:   envString("HTTP_ADDR", "127.0.0.1:3000"),
		Mode:      envString("MODE", ModeServe),
		Interval:  envDuration("SCRAPE_INTERVAL", time.Second),
		LogLevel:  envString("LOG_LEVEL", "info"),
		LogFormat: envString("LOG_FORMAT", "text"),

		DBPath: envString("DB_PATH", "actiowatch.db"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiry:         envDuration("JWT_EXPIRY", 24*time.Hour),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AllowedOrigins:    envList("ALLOWED_ORIGINS"),

		NotificationsEnabled: envBool("NOTIFICATIONS_ENABLED", true),
		DesktopNotifications: envBool("DESKTOP_NOTIFICATIONS", true),
		NotificationIcon:     os.Getenv("NOTIFICATION_ICON"),

		NotificationRetention: envDuration("NOTIFICATION_RETENTION", 7*24*time.Hour),

		AggregateSubtree: envBool("AGGREGATE_SUBTREE", false),
		StreamFormat:     envString("STREAM_FORMAT", StreamJSON),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func envList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
