package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	App      AppConfig
	Google   GoogleConfig
	Apple    AppleConfig
	Tron     TronConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port           string
	FrontendURL    string
	AllowedOrigins []string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	JWTSecret string
}

// GoogleConfig holds Google OAuth settings
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// AppleConfig holds Apple Sign In settings
type AppleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// TronConfig holds TRON node and payout settings
type TronConfig struct {
	NodeURL      string
	PrivateKey   string
	OwnerAddress string
	USDTContract string
	FeeLimit     int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "creator_platform"),
		},
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
			AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		App: AppConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
		},
		Apple: AppleConfig{
			ClientID:     getEnv("APPLE_CLIENT_ID", ""),
			ClientSecret: getEnv("APPLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("APPLE_REDIRECT_URL", "http://localhost:8080/api/auth/apple/callback"),
		},
		Tron: TronConfig{
			NodeURL:      getEnv("TRON_NODE_URL", "https://api.trongrid.io"),
			PrivateKey:   getEnv("TRON_PRIVATE_KEY", ""),
			OwnerAddress: getEnv("TRON_OWNER_ADDRESS", ""),
			USDTContract: getEnv("TRON_USDT_CONTRACT", "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"),
			FeeLimit:     10_000_000,
		},
	}

	// Validate required fields
	if config.App.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
