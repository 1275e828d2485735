package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Remote RemoteConfig
	Sync   SyncConfig
	Cache  CacheConfig
	JWT    JWTConfig
	Auth   AuthConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// RemoteConfig holds settings for the remote spreadsheet gateway.
type RemoteConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// SyncConfig holds refresh scheduling settings.
type SyncConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// CacheConfig holds local durable cache settings.
type CacheConfig struct {
	Dir      string `mapstructure:"dir"`
	InMemory bool   `mapstructure:"in_memory"`
}

// JWTConfig holds JWT signing and expiry settings for the API surface.
type JWTConfig struct {
	Secret       string        `mapstructure:"secret"`
	AccessExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer       string        `mapstructure:"issuer"`
}

// AuthConfig holds the placeholder credential check. AdminSecretHash is a
// bcrypt hash; FallbackIdentifier logs in without a secret, mirroring the
// original console's stopgap behavior. Replace the verifier for real
// deployments.
type AuthConfig struct {
	AdminIdentifier    string `mapstructure:"admin_identifier"`
	AdminSecretHash    string `mapstructure:"admin_secret_hash"`
	FallbackIdentifier string `mapstructure:"fallback_identifier"`
}

// S3Config holds optional cloud backup settings. Backups stay local when
// Bucket is empty.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the SHIPDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SHIPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Remote gateway defaults
	v.SetDefault("remote.endpoint", "")
	v.SetDefault("remote.timeout", "20s")

	// Sync defaults
	v.SetDefault("sync.interval", "30s")

	// Cache defaults
	v.SetDefault("cache.dir", "./data/cache")
	v.SetDefault("cache.in_memory", false)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "12h")
	v.SetDefault("jwt.issuer", "shipdesk")

	// Auth defaults: bcrypt of the stock admin secret. Placeholder only.
	v.SetDefault("auth.admin_identifier", "admin@app.com")
	v.SetDefault("auth.admin_secret_hash", "$2a$12$2b2cU8CPhOTaGrs1HRQuAueS7JTT5Zi9pJOmLMax1jlWEB2hQYt9y")
	v.SetDefault("auth.fallback_identifier", "user@app.com")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "backups")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "SHIPDESK_SERVER_PORT",
		"server.read_timeout":      "SHIPDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "SHIPDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":       "SHIPDESK_SERVER_ENVIRONMENT",
		"remote.endpoint":          "SHIPDESK_REMOTE_ENDPOINT",
		"remote.timeout":           "SHIPDESK_REMOTE_TIMEOUT",
		"sync.interval":            "SHIPDESK_SYNC_INTERVAL",
		"cache.dir":                "SHIPDESK_CACHE_DIR",
		"cache.in_memory":          "SHIPDESK_CACHE_IN_MEMORY",
		"jwt.secret":               "SHIPDESK_JWT_SECRET",
		"jwt.access_expiry":        "SHIPDESK_JWT_ACCESS_EXPIRY",
		"jwt.issuer":               "SHIPDESK_JWT_ISSUER",
		"auth.admin_identifier":    "SHIPDESK_AUTH_ADMIN_IDENTIFIER",
		"auth.admin_secret_hash":   "SHIPDESK_AUTH_ADMIN_SECRET_HASH",
		"auth.fallback_identifier": "SHIPDESK_AUTH_FALLBACK_IDENTIFIER",
		"s3.region":                "SHIPDESK_S3_REGION",
		"s3.bucket":                "SHIPDESK_S3_BUCKET",
		"s3.endpoint":              "SHIPDESK_S3_ENDPOINT",
		"s3.access_key":            "SHIPDESK_S3_ACCESS_KEY",
		"s3.secret_key":            "SHIPDESK_S3_SECRET_KEY",
		"s3.prefix":                "SHIPDESK_S3_PREFIX",
		"log.level":                "SHIPDESK_LOG_LEVEL",
		"log.format":               "SHIPDESK_LOG_FORMAT",
		"cors.allowed_origins":     "SHIPDESK_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	cfg.Server = ServerConfig{
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Remote = RemoteConfig{
		Endpoint: v.GetString("remote.endpoint"),
		Timeout:  v.GetDuration("remote.timeout"),
	}
	cfg.Sync = SyncConfig{
		Interval: v.GetDuration("sync.interval"),
	}
	cfg.Cache = CacheConfig{
		Dir:      v.GetString("cache.dir"),
		InMemory: v.GetBool("cache.in_memory"),
	}
	cfg.JWT = JWTConfig{
		Secret:       v.GetString("jwt.secret"),
		AccessExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:       v.GetString("jwt.issuer"),
	}
	cfg.Auth = AuthConfig{
		AdminIdentifier:    v.GetString("auth.admin_identifier"),
		AdminSecretHash:    v.GetString("auth.admin_secret_hash"),
		FallbackIdentifier: v.GetString("auth.fallback_identifier"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		Prefix:    v.GetString("s3.prefix"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
