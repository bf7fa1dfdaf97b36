package config

import (
	"fmt"

	pkgconfig "github.com/erico-tech-world/personal-portfolio/pkg/config"
)

// Config holds all configuration for the portfolio backend.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Admin API key. Requests to /api/v1/admin/* must carry it in the
	// X-Admin-Key header. Empty disables the check (development only).
	AdminAPIKey string `env:"ADMIN_API_KEY" envDefault:""`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"portfolio"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"portfolio_secret"`
	PostgresDB   string `env:"POSTGRES_DB_NAME" envDefault:"portfolio_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Queries slower than this are logged at WARN. Zero disables.
	SlowQueryThresholdMs int `env:"SLOW_QUERY_THRESHOLD_MS" envDefault:"200"`

	// Redis (public read cache)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Media storage backend: "cloudinary", "s3", or "memory".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`

	// Cloudinary
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME" envDefault:""`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY" envDefault:""`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET" envDefault:""`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" envDefault:"portfolio-gallery"`

	// S3
	S3Bucket string `env:"S3_BUCKET" envDefault:""`
	S3Region string `env:"S3_REGION" envDefault:"us-east-1"`

	// Base URL for media file access (used by memory storage).
	BaseURL string `env:"MEDIA_BASE_URL" envDefault:""`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// CORS
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Cache-Control max-age in seconds for public read endpoints.
	CacheMaxAge int `env:"CACHE_MAX_AGE" envDefault:"60"`

	// CIDR ranges allowed to reach /debug/pprof. Empty disables pprof.
	PprofCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`

	// Tracing
	TracingEnabled  bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string `env:"TRACING_OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load portfolio config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.StorageBackend {
	case "cloudinary", "s3", "memory":
	default:
		return fmt.Errorf("invalid storage backend: %q (must be cloudinary, s3, or memory)", c.StorageBackend)
	}
	if c.StorageBackend == "cloudinary" && (c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "") {
		return fmt.Errorf("cloudinary storage requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, and CLOUDINARY_API_SECRET")
	}
	if c.StorageBackend == "s3" && c.S3Bucket == "" {
		return fmt.Errorf("s3 storage requires S3_BUCKET")
	}
	return nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}
