package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Draft    DraftConfig
	Upload   UploadConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Environment string
	LogLevel    string
	APIKey      string // shared secret every client request carries
	RedisURL    string
	NATSURL     string
}

// DraftConfig controls server-side draft persistence
type DraftConfig struct {
	TTL           time.Duration // drafts older than this are pruned
	SweepInterval time.Duration
}

// UploadConfig controls image upload storage
type UploadConfig struct {
	Dir                  string // local fallback directory
	DriveCredentialsFile string // Google Drive service account JSON (optional)
	DriveFolderID        string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "orderpad_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			APIKey:      getEnv("API_KEY", ""),
			RedisURL:    getEnv("REDIS_URL", ""),
			NATSURL:     getEnv("NATS_URL", ""),
		},
		Draft: DraftConfig{
			TTL:           getEnvAsDuration("DRAFT_TTL", 7*24*time.Hour),
			SweepInterval: getEnvAsDuration("DRAFT_SWEEP_INTERVAL", time.Hour),
		},
		Upload: UploadConfig{
			Dir:                  getEnv("UPLOAD_DIR", "./uploads"),
			DriveCredentialsFile: getEnv("DRIVE_CREDENTIALS_FILE", ""),
			DriveFolderID:        getEnv("DRIVE_FOLDER_ID", ""),
		},
	}

	if config.IsProduction() && config.App.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required in production")
	}

	return config, nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
