// Package config assembles the API server configuration from environment
// variables (optionally pre-loaded from a .env file) and validates it.
package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"content-api/internal/domain/entity"
	"content-api/internal/infra/db"
	"content-api/internal/observability/tracing"
	envcfg "content-api/pkg/config"
)

// Config is the complete configuration of cmd/api.
type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Articles  entity.ArticleRules
	RateLimit RateLimitConfig
	CORS      CORSConfig
	CSP       CSPConfig
	Tracing   tracing.Config
	LogLevel  string
	Version   string
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// MongoConfig holds the database connection settings.
type MongoConfig struct {
	URI            string
	Database       string
	OpTimeout      time.Duration
	ConnectTimeout time.Duration
	MaxPoolSize    int
}

// RateLimitConfig configures the per-IP token bucket.
// TrustedProxies lists CIDRs whose X-Forwarded-For header is honoured.
type RateLimitConfig struct {
	Enabled        bool
	RPS            float64
	Burst          int
	TrustedProxies []string
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// CSPConfig toggles the Content-Security-Policy header.
type CSPConfig struct {
	Enabled    bool
	ReportOnly bool
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            3000,
			RequestTimeout:  15 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "shiba-beta",
			OpTimeout:      5 * time.Second,
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    50,
		},
		Articles: entity.DefaultArticleRules(),
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     20,
			Burst:   40,
		},
		CORS: CORSConfig{AllowedOrigins: []string{"*"}},
		CSP:  CSPConfig{Enabled: true},
		Tracing: tracing.Config{
			ServiceName: "content-api",
			SampleRatio: 1.0,
		},
		LogLevel: "info",
		Version:  "dev",
	}
}

// Load reads the configuration from the environment and validates it.
// A .env file in the working directory is loaded first when present.
func Load() (Config, error) {
	if err := envcfg.LoadDotEnv(); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FromEnv overlays environment variables on Default without validating.
func FromEnv() Config {
	d := Default()
	cfg := Config{
		Server: ServerConfig{
			Port:            envcfg.GetEnvInt("PORT", d.Server.Port),
			RequestTimeout:  envcfg.GetEnvDuration("REQUEST_TIMEOUT", d.Server.RequestTimeout),
			ShutdownTimeout: envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", d.Server.ShutdownTimeout),
			MaxBodyBytes:    envcfg.GetEnvInt64("MAX_BODY_BYTES", d.Server.MaxBodyBytes),
		},
		Mongo: MongoConfig{
			URI:            envcfg.GetEnvString("MONGO_URL", d.Mongo.URI),
			Database:       envcfg.GetEnvString("DB_NAME", d.Mongo.Database),
			OpTimeout:      envcfg.GetEnvDuration("MONGO_OP_TIMEOUT", d.Mongo.OpTimeout),
			ConnectTimeout: envcfg.GetEnvDuration("MONGO_CONNECT_TIMEOUT", d.Mongo.ConnectTimeout),
			MaxPoolSize:    envcfg.GetEnvInt("MONGO_MAX_POOL_SIZE", d.Mongo.MaxPoolSize),
		},
		Articles: entity.ArticleRules{
			TitleMaxLength:   envcfg.GetEnvInt("ARTICLE_TITLE_MAX_LENGTH", d.Articles.TitleMaxLength),
			ContentMinLength: envcfg.GetEnvInt("ARTICLE_CONTENT_MIN_LENGTH", d.Articles.ContentMinLength),
		},
		RateLimit: RateLimitConfig{
			Enabled:        envcfg.GetEnvBool("RATE_LIMIT_ENABLED", d.RateLimit.Enabled),
			RPS:            envcfg.GetEnvFloat("RATE_LIMIT_RPS", d.RateLimit.RPS),
			Burst:          envcfg.GetEnvInt("RATE_LIMIT_BURST", d.RateLimit.Burst),
			TrustedProxies: envcfg.GetEnvStringList("RATE_LIMIT_TRUSTED_PROXIES", nil),
		},
		CORS: CORSConfig{
			AllowedOrigins: envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", d.CORS.AllowedOrigins),
		},
		CSP: CSPConfig{
			Enabled:    envcfg.GetEnvBool("CSP_ENABLED", d.CSP.Enabled),
			ReportOnly: envcfg.GetEnvBool("CSP_REPORT_ONLY", d.CSP.ReportOnly),
		},
		Tracing: tracing.Config{
			ServiceName: envcfg.GetEnvString("OTEL_SERVICE_NAME", d.Tracing.ServiceName),
			Endpoint:    envcfg.GetEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    envcfg.GetEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envcfg.GetEnvFloat("OTEL_TRACES_SAMPLER_RATIO", d.Tracing.SampleRatio),
		},
		LogLevel: strings.ToLower(envcfg.GetEnvString("LOG_LEVEL", d.LogLevel)),
		Version:  envcfg.GetEnvString("VERSION", d.Version),
	}
	cfg.Tracing.Version = cfg.Version
	return cfg
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server),
		validation.Field(&c.Mongo),
		validation.Field(&c.Articles, validation.By(validateRules)),
		validation.Field(&c.RateLimit),
		validation.Field(&c.CORS),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "warning", "error")),
	)
}

// Validate implements validation.Validatable.
func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&s.RequestTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&s.ShutdownTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&s.MaxBodyBytes, validation.Required, validation.Min(int64(1024))),
	)
}

// Validate implements validation.Validatable.
func (m MongoConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.URI, validation.Required, validation.By(mongoScheme)),
		validation.Field(&m.Database, validation.Required, validation.Length(1, 63)),
		validation.Field(&m.OpTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&m.ConnectTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&m.MaxPoolSize, validation.Required, validation.Min(1), validation.Max(1000)),
	)
}

// Validate implements validation.Validatable.
func (r RateLimitConfig) Validate() error {
	if !r.Enabled {
		return nil
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.RPS, validation.Required, validation.Min(0.001)),
		validation.Field(&r.Burst, validation.Required, validation.Min(1)),
		validation.Field(&r.TrustedProxies, validation.Each(validation.By(cidrOrIP))),
	)
}

// Validate implements validation.Validatable.
func (c CORSConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.AllowedOrigins, validation.Required, validation.Each(validation.By(origin))),
	)
}

func validateRules(value interface{}) error {
	r, _ := value.(entity.ArticleRules)
	return validation.ValidateStruct(&r,
		validation.Field(&r.TitleMaxLength, validation.Min(0)),
		validation.Field(&r.ContentMinLength, validation.Min(0)),
	)
}

func mongoScheme(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "mongodb://") && !strings.HasPrefix(s, "mongodb+srv://") {
		return validation.NewError("validation_mongo_uri", "must start with mongodb:// or mongodb+srv://")
	}
	return nil
}

func cidrOrIP(value interface{}) error {
	s, _ := value.(string)
	if _, err := netip.ParsePrefix(s); err == nil {
		return nil
	}
	if _, err := netip.ParseAddr(s); err == nil {
		return nil
	}
	return validation.NewError("validation_cidr", "must be an IP address or CIDR")
}

func origin(value interface{}) error {
	s, _ := value.(string)
	if s == "*" {
		return nil
	}
	return validation.Validate(s, validation.Required, is.RequestURL)
}

// ConnectionConfig converts the Mongo settings into the driver connection options.
func (m MongoConfig) ConnectionConfig() db.ConnectionConfig {
	cc := db.DefaultConnectionConfig()
	cc.URI = m.URI
	cc.Database = m.Database
	cc.ConnectTimeout = m.ConnectTimeout
	cc.MaxPoolSize = uint64(m.MaxPoolSize)
	return cc
}
