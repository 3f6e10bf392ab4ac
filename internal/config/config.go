package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Payment    PaymentConfig
	Jobs       JobsConfig
	Enterprise EnterpriseConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
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

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// PaymentConfig holds payment gateway configuration
type PaymentConfig struct {
	PublicKey     string
	SecretKey     string
	Currency      string
	MinimumAmount decimal.Decimal
	FeePercent    decimal.Decimal
}

// JobsConfig holds background job intervals
type JobsConfig struct {
	SettlementInterval  time.Duration
	SettlementBatchSize int
	QuoteExpiryInterval time.Duration
}

// EnterpriseConfig holds B2B quote workflow settings
type EnterpriseConfig struct {
	QuoteRequestTTL time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "voltbay"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Payment: PaymentConfig{
			PublicKey:     getEnv("PAYMENT_PUBLIC_KEY", ""),
			SecretKey:     getEnv("PAYMENT_SECRET_KEY", ""),
			Currency:      getEnv("PAYMENT_CURRENCY", "usd"),
			MinimumAmount: getEnvAsDecimal("PAYMENT_MINIMUM_AMOUNT", decimal.NewFromInt(1)),
			FeePercent:    getEnvAsDecimal("PLATFORM_FEE_PERCENT", decimal.NewFromInt(5)),
		},
		Jobs: JobsConfig{
			SettlementInterval:  getEnvAsDuration("AUCTION_SETTLEMENT_INTERVAL", time.Minute),
			SettlementBatchSize: getEnvAsInt("AUCTION_SETTLEMENT_BATCH_SIZE", 100),
			QuoteExpiryInterval: getEnvAsDuration("QUOTE_EXPIRY_INTERVAL", 10*time.Minute),
		},
		Enterprise: EnterpriseConfig{
			QuoteRequestTTL: getEnvAsDuration("QUOTE_REQUEST_TTL", 72*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
