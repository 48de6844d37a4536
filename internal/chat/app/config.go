package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/events"
	httpapi "github.com/aussiebroadwan/bartabchat/internal/chat/http"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
	"github.com/joho/godotenv"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	AppSecret         string        // Required: HMAC secret for access tokens
	TokenAlgorithm    string        // Optional: HS256, HS384 or HS512 (default: HS256)
	AccessTokenTTL    time.Duration // Optional: access token lifetime (default: 30m)
	InviteValidity    time.Duration // Optional: lifetime of a new room invite (default: 24h)
	InviteReuseWindow time.Duration // Optional: remaining validity an invite needs to be reused (default: 60m)

	DB           string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile string // Optional: path to SQLite database file (default: ./chat.db)
	DatabaseURL  string // Required for postgres: connection URL
	DBMaxConns   int32  // Optional: postgres pool size (default: 10)

	BootstrapToken     string   // Optional: token required to perform bootstrap
	PepperFile         string   // Optional: path to file containing pepper for password hashing (default: ./pepper)
	CORSAllowedOrigins []string // Optional: comma separated list; empty disables CORS

	KafkaBrokers []string // Optional: comma separated list; empty disables event publishing
	KafkaTopic   string   // Optional: membership event topic (default: chat.membership)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	InviteRetention      time.Duration // How long expired invites are kept; 0 disables purging (default: 0)

	RateLimits httpapi.RateLimits
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		AppSecret:         os.Getenv("APP_SECRET"),
		TokenAlgorithm:    getEnvOrDefault("ACCESS_TOKEN_HASH_ALGORITHM", "HS256"),
		AccessTokenTTL:    getEnvMinutesOrDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		InviteValidity:    time.Duration(getEnvIntOrDefault("CHAT_INVITE_VALID_HOURS", 24)) * time.Hour,
		InviteReuseWindow: getEnvMinutesOrDefault("MAX_INVITE_REUSE_BEFORE_EXPIRY_MIN", 60),

		DB:           strings.ToLower(getEnvOrDefault("DB", DriverSQLite)),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "chat.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DBMaxConns:   int32(getEnvIntOrDefault("DB_MAX_CONNS", 10)),

		BootstrapToken:     os.Getenv("BOOTSTRAP_TOKEN"),
		PepperFile:         getEnvOrDefault("PEPPER_FILE", "pepper"),
		CORSAllowedOrigins: splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),

		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnvOrDefault("KAFKA_MEMBERSHIP_TOPIC", events.DefaultTopic),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		InviteRetention:      getEnvDurationOrDefault("INVITE_RETENTION", 0),

		RateLimits: httpapi.RateLimits{
			Strict:   httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
			Moderate: httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
			Lenient:  httpx.ParseRateLimitFromEnv("LENIENT", httpx.LenientLimit),
			Public:   httpx.ParseRateLimitFromEnv("PUBLIC", httpx.PublicLimit),
		},
	}
}

// Validate reports the first setting that would stop the service from
// running correctly.
func (c Config) Validate() error {
	if strings.TrimSpace(c.AppSecret) == "" {
		return errors.New("APP_SECRET is required")
	}

	switch c.TokenAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("ACCESS_TOKEN_HASH_ALGORITHM must be one of HS256, HS384, HS512, got %q", c.TokenAlgorithm)
	}

	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.InviteValidity <= 0 {
		return errors.New("CHAT_INVITE_VALID_HOURS must be positive")
	}
	if c.InviteReuseWindow < 0 {
		return errors.New("MAX_INVITE_REUSE_BEFORE_EXPIRY_MIN cannot be negative")
	}
	if c.InviteRetention < 0 {
		return errors.New("INVITE_RETENTION cannot be negative")
	}

	switch c.DB {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return errors.New("DATABASE_FILE cannot be empty")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when DB=postgres")
		}
	default:
		return fmt.Errorf("DB must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DB)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvMinutesOrDefault(key string, defaultMinutes int) time.Duration {
	return time.Duration(getEnvIntOrDefault(key, defaultMinutes)) * time.Minute
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitCSV(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
