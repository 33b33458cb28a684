package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Security    SecurityConfig
	Google      GoogleConfig
	Ingest      IngestConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SecurityConfig struct {
	// Shared secret expected in the X-ETL-Token header of ingest triggers
	ETLToken string

	// HMAC secret used to verify caller-identity tokens issued by the
	// external auth system
	APISecretKey string
}

type GoogleConfig struct {
	ServiceAccountEmail string
	PrivateKey          string
	SheetIDs            []string
	DriveFolderID       string
}

type IngestConfig struct {
	// UseMockData forces the synthetic data source even when Google
	// credentials are configured
	UseMockData bool

	// AdminEmails is the allow-list consulted when creating users
	AdminEmails []string

	// SourceTimeout bounds the processing of a single spreadsheet
	SourceTimeout time.Duration
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "pulse")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)
	v.SetDefault("USE_MOCK_DATA", false)
	v.SetDefault("INGEST_SOURCE_TIMEOUT", 60)

	if opts.EnvFile != "" {
		if _, err := os.Stat(opts.EnvFile); err == nil {
			v.SetConfigFile(opts.EnvFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read env file %s: %w", opts.EnvFile, err)
			}
		}
	}

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Security: SecurityConfig{
			ETLToken:     v.GetString("ETL_TOKEN"),
			APISecretKey: v.GetString("API_SECRET_KEY"),
		},
		Google: GoogleConfig{
			ServiceAccountEmail: v.GetString("GOOGLE_SA_EMAIL"),
			PrivateKey:          v.GetString("GOOGLE_SA_PRIVATE_KEY"),
			SheetIDs:            splitList(v.GetString("GOOGLE_SHEET_IDS")),
			DriveFolderID:       v.GetString("GOOGLE_DRIVE_FOLDER_ID"),
		},
		Ingest: IngestConfig{
			UseMockData:   v.GetBool("USE_MOCK_DATA"),
			AdminEmails:   splitList(v.GetString("ADMIN_EMAILS")),
			SourceTimeout: time.Duration(v.GetInt("INGEST_SOURCE_TIMEOUT")) * time.Second,
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	if cfg.Security.ETLToken == "" {
		return nil, fmt.Errorf("ETL_TOKEN is required")
	}
	if cfg.Security.APISecretKey == "" {
		return nil, fmt.Errorf("API_SECRET_KEY is required")
	}

	return cfg, nil
}

// UseMockSource reports whether the run should use the synthetic data
// source: either forced by flag, or Google credentials/sources are not
// configured.
func (c *Config) UseMockSource() bool {
	if c.Ingest.UseMockData {
		return true
	}
	if c.Google.ServiceAccountEmail == "" {
		return true
	}
	return len(c.Google.SheetIDs) == 0 && c.Google.DriveFolderID == ""
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
