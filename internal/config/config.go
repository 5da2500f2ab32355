package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the studio-api service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Share    ShareConfig    `yaml:"share"`
	Products ProductsConfig `yaml:"products"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Logging  LoggingConfig  `yaml:"logging"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `yaml:"port" env:"STUDIO_PORT"`
	Debug   bool   `yaml:"debug" env:"STUDIO_DEBUG"`
}

// DatabaseConfig holds Postgres connection configuration.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST"`
	Port     int    `yaml:"port" env:"POSTGRES_PORT"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database string `yaml:"database" env:"POSTGRES_DB"`
	SSLMode  string `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE"`
}

// DSN returns the lib/pq connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig holds Redis connection and caching configuration.
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" env:"REDIS_ENABLED"`
	Addr         string        `yaml:"addr" env:"REDIS_ADDR"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	ProductsTTL  time.Duration `yaml:"products_ttl"`
	EventStream  string        `yaml:"event_stream"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Username      string        `yaml:"username" env:"STUDIO_AUTH_USERNAME"`
	Password      string        `yaml:"password" env:"STUDIO_AUTH_PASSWORD"`
	JWTSecret     string        `yaml:"jwt_secret" env:"STUDIO_JWT_SECRET"`
	JWTExpiration time.Duration `yaml:"jwt_expiration"`
}

// ShareConfig holds share-link and QR rendering configuration.
type ShareConfig struct {
	BaseURL    string `yaml:"base_url" env:"STUDIO_SHARE_BASE_URL"`
	QRSize     int    `yaml:"qr_size"`
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// ProductsConfig holds surfaced-products configuration.
type ProductsConfig struct {
	WarmSchedule string `yaml:"warm_schedule"` // cron spec for cache warming
}

// PipelineConfig holds pipeline status streaming configuration.
type PipelineConfig struct {
	EventBufferSize   int           `yaml:"event_buffer_size"`
	ClientBufferSize  int           `yaml:"client_buffer_size"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
	MaxClients        int           `yaml:"max_clients"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" env:"LOG_LEVEL"`
	Development bool   `yaml:"development"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled"`
	AllowedOrigins   []string `yaml:"allowed_origins" env:"CORS_ORIGINS"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

// Load loads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	cfg, err := loadWithDefaults[Config](path, setDefaults)
	if err != nil {
		return nil, err
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = "studio-api"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "1.0.0"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = 8095
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "studio"
	}
	if cfg.Database.Database == "" {
		cfg.Database.Database = "creator_studio"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.ProductsTTL == 0 {
		cfg.Redis.ProductsTTL = 5 * time.Minute
	}
	if cfg.Redis.EventStream == "" {
		cfg.Redis.EventStream = "studio:brief-events"
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5 * time.Second
	}
	if cfg.Redis.ReadTimeout == 0 {
		cfg.Redis.ReadTimeout = 3 * time.Second
	}
	if cfg.Redis.WriteTimeout == 0 {
		cfg.Redis.WriteTimeout = 3 * time.Second
	}

	if cfg.Auth.JWTExpiration == 0 {
		cfg.Auth.JWTExpiration = 24 * time.Hour
	}

	if cfg.Share.BaseURL == "" {
		cfg.Share.BaseURL = "https://studio.example.com"
	}
	if cfg.Share.QRSize == 0 {
		cfg.Share.QRSize = 256
	}
	if cfg.Share.Foreground == "" {
		cfg.Share.Foreground = "#000000"
	}
	if cfg.Share.Background == "" {
		cfg.Share.Background = "#ffffff"
	}

	if cfg.Products.WarmSchedule == "" {
		cfg.Products.WarmSchedule = "@every 5m"
	}

	if cfg.Pipeline.EventBufferSize == 0 {
		cfg.Pipeline.EventBufferSize = 100
	}
	if cfg.Pipeline.ClientBufferSize == 0 {
		cfg.Pipeline.ClientBufferSize = 10
	}
	if cfg.Pipeline.HeartbeatInterval == 0 {
		cfg.Pipeline.HeartbeatInterval = 30 * time.Second
	}
	if cfg.Pipeline.MaxClients == 0 {
		cfg.Pipeline.MaxClients = 100
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Database.Host == "" {
		return &ValidationError{Field: "database.host", Message: "is required"}
	}
	if err := ValidatePort("database.port", c.Database.Port); err != nil {
		return err
	}
	if c.Auth.JWTSecret == "" {
		return &ValidationError{Field: "auth.jwt_secret", Message: "is required"}
	}
	if len(c.Auth.JWTSecret) < minJWTSecretLength {
		return &ValidationError{
			Field:   "auth.jwt_secret",
			Message: fmt.Sprintf("must be at least %d characters", minJWTSecretLength),
		}
	}
	if c.Share.QRSize < 21 || c.Share.QRSize > 2048 {
		return &ValidationError{Field: "share.qr_size", Message: "must be between 21 and 2048 pixels"}
	}
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

const minJWTSecretLength = 32
