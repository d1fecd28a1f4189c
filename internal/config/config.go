package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Storage
	DBPath string

	// Rate sync
	QuotesURL       string // source for the Official/Parallel quotes
	GlobalRatesURL  string // source for the USD-based global rate map
	SyncTimeout     time.Duration
	AlternateOffset decimal.Decimal // subtracted from the parallel rate
}

var appConfig *Config

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if present; environment variables win otherwise.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		DBPath:         getEnv("DB_PATH", "patrimonio.db"),
		QuotesURL:      getEnv("RATE_QUOTES_URL", "https://ve.dolarapi.com/v1/dolares"),
		GlobalRatesURL: getEnv("RATE_GLOBAL_URL", "https://open.er-api.com/v6/latest/USD"),
	}

	timeoutStr := getEnv("RATE_SYNC_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid RATE_SYNC_TIMEOUT value '%s', falling back to 15s\n", timeoutStr)
		timeout = 15 * time.Second
	}
	config.SyncTimeout = timeout

	// The alternate-market rate has no independent source; it is derived
	// from the parallel rate minus this offset.
	offsetStr := getEnv("ALTERNATE_RATE_OFFSET", "0.25")
	offset, err := decimal.NewFromString(offsetStr)
	if err != nil {
		log.Printf("Warning: invalid ALTERNATE_RATE_OFFSET value '%s', falling back to 0.25\n", offsetStr)
		offset = decimal.NewFromFloat(0.25)
	}
	config.AlternateOffset = offset

	appConfig = config
	return config, nil
}

// Get returns the application configuration.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
