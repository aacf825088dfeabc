package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Firebase   FirebaseConfig   `yaml:"firebase"`
	Search     SearchConfig     `yaml:"search"`
	Moderation ModerationConfig `yaml:"moderation"`
	Email      EmailConfig      `yaml:"email"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig selects and configures the primary record store.
// Type is "postgres" or "firestore".
type DatabaseConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// FirebaseConfig contains Firebase Admin SDK settings. The service account
// key is the raw JSON document, usually injected through the environment.
type FirebaseConfig struct {
	ServiceAccountKey string `yaml:"service_account_key"`
	ProjectID         string `yaml:"project_id"`
}

// SearchConfig contains the search index (Algolia) settings
type SearchConfig struct {
	AppID         string `yaml:"app_id"`
	AdminAPIKey   string `yaml:"admin_api_key"`
	IndexName     string `yaml:"index_name"`
	ForceFallback bool   `yaml:"force_fallback"` // skip the rich client, go straight to raw HTTP
}

// ModerationConfig contains the content moderation (Gemini) settings
type ModerationConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
	Model        string `yaml:"model"`
}

// EmailConfig contains transactional email (SendGrid) settings
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// AuthConfig selects the token verifier. Mode is "firebase" or "local";
// local mode validates HS256 tokens signed with JWTSecret and exists for
// development without Firebase credentials.
type AuthConfig struct {
	Mode      string `yaml:"mode"`
	JWTSecret string `yaml:"jwt_secret"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron expressions for the background jobs
type SchedulerConfig struct {
	ResyncSearchIndex string `yaml:"resync_search_index"`
	AuditSearchIndex  string `yaml:"audit_search_index"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Database
	if val := os.Getenv("DB_TYPE"); val != "" {
		c.Database.Type = val
	}
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Firebase
	if val := os.Getenv("FIREBASE_SERVICE_ACCOUNT_KEY"); val != "" {
		c.Firebase.ServiceAccountKey = val
	}
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}

	// Search index
	if val := os.Getenv("ALGOLIA_APP_ID"); val != "" {
		c.Search.AppID = val
	}
	if val := os.Getenv("ALGOLIA_ADMIN_API_KEY"); val != "" {
		c.Search.AdminAPIKey = val
	}
	if val := os.Getenv("ALGOLIA_INDEX_NAME"); val != "" {
		c.Search.IndexName = val
	}

	// Moderation
	if val := os.Getenv("GEMINI_API_KEY"); val != "" {
		c.Moderation.GeminiAPIKey = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.Email.FromEmail = val
	}

	// Auth
	if val := os.Getenv("AUTH_MODE"); val != "" {
		c.Auth.Mode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Database.Type == "" {
		c.Database.Type = "postgres"
	}
	if c.Search.IndexName == "" {
		c.Search.IndexName = "opportunities"
	}
	if c.Moderation.Model == "" {
		c.Moderation.Model = "gemini-2.5-flash"
	}
	if c.Auth.Mode == "" {
		c.Auth.Mode = "firebase"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Type {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	case "firestore":
		if c.Firebase.ServiceAccountKey == "" && c.Firebase.ProjectID == "" {
			return fmt.Errorf("firestore store requires a service account key or project id")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}

	switch c.Auth.Mode {
	case "firebase":
		// Verifier is built from the same Firebase app as the store.
	case "local":
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("local auth requires a JWT secret of at least 32 characters")
		}
	default:
		return fmt.Errorf("unsupported auth mode: %s", c.Auth.Mode)
	}

	// Search and moderation credentials are deliberately optional: both
	// collaborators degrade fail-soft when unconfigured.
	return nil
}

// GetServerAddress returns the host:port the HTTP server listens on
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseConnectionString builds the PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Database, sslMode)
}
