package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// MigrationsPath is the file:// URL of the SQL migration directory.
	MigrationsPath string

	// ResultAccountNumber is the detail account number that receives the
	// yearly net result during period closing.
	ResultAccountNumber string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("RESULT_ACCOUNT_NUMBER", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         viper.GetString("PGSQL_URL"),
		Port:                viper.GetString("PORT"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		RateLimit:           viper.GetString("RATE_LIMIT"),
		MigrationsPath:      viper.GetString("MIGRATIONS_PATH"),
		ResultAccountNumber: viper.GetString("RESULT_ACCOUNT_NUMBER"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	if cfg.ResultAccountNumber == "" {
		log.Println("Warning: RESULT_ACCOUNT_NUMBER not set. Period closing will fail until it is configured.")
	}

	return cfg, nil
}
