package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret       string
	SessionTokenTTL time.Duration // regular login sessions
	ResetTokenTTL   time.Duration // short-lived token issued after OTP verification

	// Password reset
	OTPTTL time.Duration

	// Inference service
	InferenceURL     string
	InferenceTimeout time.Duration

	// Uploads
	MaxUploadBytes int64

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Migrations
	MigrationsDir string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// Email sending toggle
	MailSendEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getint64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "tyredetect-api"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3000"),
		GinMode: getenv("GIN_MODE", "release"),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "tyredetect"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		JWTSecret:       getenv("JWT_SECRET", "tyredetect-secret-key"),
		SessionTokenTTL: getdur("SESSION_TOKEN_TTL", 168*time.Hour),
		ResetTokenTTL:   getdur("RESET_TOKEN_TTL", 15*time.Minute),

		OTPTTL: getdur("OTP_TTL", time.Hour),

		InferenceURL:     getenv("INFERENCE_URL", "http://localhost:5000"),
		InferenceTimeout: getdur("INFERENCE_TIMEOUT", 30*time.Second),

		MaxUploadBytes: getint64("MAX_UPLOAD_BYTES", 5<<20),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS",
			"https://tyre-detection-model.vercel.app,http://localhost:5173,http://localhost:3000"),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		// Email sending toggle (default true; disable in tests and local dev)
		MailSendEnabled: getbool("MAIL_SEND_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
