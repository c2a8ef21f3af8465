package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once at startup
// and read-only thereafter.
type Config struct {
	Server    ServerConfig
	Google    GoogleConfig
	Microsoft MicrosoftConfig
	Keys      KeysConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// GoogleConfig holds the expected audience and key endpoint for Google
// ID token verification. An empty ClientID disables the provider.
type GoogleConfig struct {
	ClientID string `mapstructure:"client_id"`
	JWKSURL  string `mapstructure:"jwks_url"`
}

// Configured reports whether the Google provider can be enabled.
func (g *GoogleConfig) Configured() bool {
	return g.ClientID != ""
}

// MicrosoftConfig holds the expected audience, tenant, and key endpoint for
// Microsoft ID token verification. Tenant is a concrete tenant id or one of
// the aliases consumers, common, organizations. Empty ClientID or Tenant
// disables the provider.
type MicrosoftConfig struct {
	ClientID string `mapstructure:"client_id"`
	Tenant   string `mapstructure:"tenant"`
	JWKSURL  string `mapstructure:"jwks_url"`
}

// Configured reports whether the Microsoft provider can be enabled.
func (m *MicrosoftConfig) Configured() bool {
	return m.ClientID != "" && m.Tenant != ""
}

// KeysConfig holds provider key cache settings.
type KeysConfig struct {
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
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

// Load reads configuration from environment variables with the SSO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SSO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Provider defaults
	v.SetDefault("google.client_id", "")
	v.SetDefault("google.jwks_url", "https://www.googleapis.com/oauth2/v3/certs")
	v.SetDefault("microsoft.client_id", "")
	v.SetDefault("microsoft.tenant", "")
	v.SetDefault("microsoft.jwks_url", "https://login.microsoftonline.com/common/discovery/v2.0/keys")

	// Key cache defaults
	v.SetDefault("keys.fetch_timeout", "8s")
	v.SetDefault("keys.refresh_interval", "1h")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:4200,http://127.0.0.1:4200")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "SSO_SERVER_PORT",
		"server.read_timeout":   "SSO_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "SSO_SERVER_WRITE_TIMEOUT",
		"server.environment":    "SSO_SERVER_ENVIRONMENT",
		"google.client_id":      "SSO_GOOGLE_CLIENT_ID",
		"google.jwks_url":       "SSO_GOOGLE_JWKS_URL",
		"microsoft.client_id":   "SSO_MICROSOFT_CLIENT_ID",
		"microsoft.tenant":      "SSO_MICROSOFT_TENANT",
		"microsoft.jwks_url":    "SSO_MICROSOFT_JWKS_URL",
		"keys.fetch_timeout":    "SSO_KEYS_FETCH_TIMEOUT",
		"keys.refresh_interval": "SSO_KEYS_REFRESH_INTERVAL",
		"log.level":             "SSO_LOG_LEVEL",
		"log.format":            "SSO_LOG_FORMAT",
		"cors.allowed_origins":  "SSO_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// Railway/Heroku/Render set a PORT env var. Use it if SSO_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SSO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Google = GoogleConfig{
		ClientID: v.GetString("google.client_id"),
		JWKSURL:  v.GetString("google.jwks_url"),
	}
	cfg.Microsoft = MicrosoftConfig{
		ClientID: v.GetString("microsoft.client_id"),
		Tenant:   v.GetString("microsoft.tenant"),
		JWKSURL:  v.GetString("microsoft.jwks_url"),
	}
	cfg.Keys = KeysConfig{
		FetchTimeout:    v.GetDuration("keys.fetch_timeout"),
		RefreshInterval: v.GetDuration("keys.refresh_interval"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
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
