package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	UploadDriverLocal = "local"
	UploadDriverS3    = "s3"

	insecureJWTSecret = "change-me"
)

type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Port int    `env:"PORT" envDefault:"5000"`

	MongoURI string `env:"MONGODB_URI" envDefault:"mongodb://127.0.0.1:27017/vanguard_launchpad"`
	MongoDB  string `env:"MONGODB_DB"`

	JWTSecret    string `env:"JWT_SECRET" envDefault:"change-me"`
	JWTExpiresIn string `env:"JWT_EXPIRES_IN" envDefault:"1d"`
	JWTIssuer    string `env:"JWT_ISSUER" envDefault:"launchpad-api"`

	DefaultAdminEmail    string `env:"DEFAULT_ADMIN_EMAIL"`
	DefaultAdminPassword string `env:"DEFAULT_ADMIN_PASSWORD"`
	DefaultAdminName     string `env:"DEFAULT_ADMIN_NAME" envDefault:"Super Admin"`

	UploadDriver   string `env:"UPLOAD_DRIVER" envDefault:"local"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`

	S3 S3Config

	RedisURL        string `env:"REDIS_URL"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"60"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Derived from JWTExpiresIn by Load.
	TokenTTL time.Duration `env:"-"`
}

type S3Config struct {
	Endpoint      string `env:"S3_ENDPOINT"`
	Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	Bucket        string `env:"S3_BUCKET"`
	UsePathStyle  bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
	KeyPrefix     string `env:"S3_KEY_PREFIX" envDefault:"uploads"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.MongoDB == "" {
		cfg.MongoDB = mongoDBFromURI(cfg.MongoURI)
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "vanguard_launchpad"
	}

	ttl, err := ParseExpiry(cfg.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	cfg.TokenTTL = ttl

	cfg.UploadDriver = strings.ToLower(strings.TrimSpace(cfg.UploadDriver))
	switch cfg.UploadDriver {
	case UploadDriverLocal:
	case UploadDriverS3:
		if cfg.S3.Bucket == "" {
			return nil, errors.New("S3_BUCKET is required when UPLOAD_DRIVER=s3")
		}
	default:
		return nil, fmt.Errorf("unsupported UPLOAD_DRIVER %q", cfg.UploadDriver)
	}
	if cfg.UploadMaxBytes <= 0 {
		return nil, errors.New("UPLOAD_MAX_BYTES must be positive")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// InsecureSecret reports whether the signing secret was left at its placeholder.
func (c *Config) InsecureSecret() bool {
	return c.JWTSecret == "" || c.JWTSecret == insecureJWTSecret
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// ParseExpiry accepts Go durations ("12h", "30m"), a day suffix ("1d", "7d")
// or a bare number of seconds ("3600").
func ParseExpiry(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("empty expiry")
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if secs <= 0 {
			return 0, errors.New("expiry must be positive")
		}
		return time.Duration(secs) * time.Second, nil
	}
	if strings.HasSuffix(raw, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("invalid expiry %q", raw)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("expiry must be positive")
	}
	return d, nil
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// mongodb URIs sometimes include extra path segments; we only support the first one as db name.
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}
