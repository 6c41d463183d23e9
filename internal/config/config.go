package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string
	ViewsDir   string
	StaticDir  string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// OIDC, optional. When OIDCIssuer is empty the UI is open.
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)
	RedisURL      string // Shared session/limiter storage; in-memory when empty

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Uploads and workspaces
	MaxUploadMB    int
	WorkspaceTTL   time.Duration
	ReaperInterval time.Duration

	// Logging
	LogFormat string // "text" or "json"

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Keyword Toolkit"
	SiteTagline string
	SiteFooter  string
	SiteLogoURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		ViewsDir:         getEnv("VIEWS_DIR", "./views"),
		StaticDir:        getEnv("STATIC_DIR", "./static"),
		TLSEnabled:       getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:      getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:       getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:        getEnv("TLS_CA_FILE", ""),
		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		RedisURL:         getEnv("REDIS_URL", ""),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),

		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 50),
		WorkspaceTTL:   getEnvDuration("WORKSPACE_TTL", 2*time.Hour),
		ReaperInterval: getEnvDuration("REAPER_INTERVAL", 5*time.Minute),
		LogFormat:      getEnv("LOG_FORMAT", "text"),

		SiteTitle:   getEnv("SITE_TITLE", "Keyword Toolkit"),
		SiteTagline: getEnv("SITE_TAGLINE", "Keyword ranking, brand matching and batch merge"),
		SiteFooter:  getEnv("SITE_FOOTER", "Keyword Toolkit"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// AuthEnabled reports whether OIDC login is configured.
func (c *Config) AuthEnabled() bool {
	return c.OIDCIssuer != ""
}

// MaxUploadBytes is the request body limit derived from MaxUploadMB.
func (c *Config) MaxUploadBytes() int {
	return c.MaxUploadMB * 1024 * 1024
}

// ArchiveExpansion is how many times the upload limit a single file inside
// a zip upload may take once extracted.
const ArchiveExpansion = 10

// MaxArchiveEntryBytes caps the extracted size of a file inside a zip upload.
func (c *Config) MaxArchiveEntryBytes() int64 {
	return int64(c.MaxUploadBytes()) * ArchiveExpansion
}
