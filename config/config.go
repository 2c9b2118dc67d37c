package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port    string
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN is the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL is the form golang-migrate expects.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Host            string
	Port            string
	Password        string
	DB              int
	ProductCacheTTL time.Duration
}

type LedgerConfig struct {
	URL               string
	Timeout           time.Duration
	WebsitesMethod    string
	WebsiteDataMethod string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
	// per user, 0 disables the limit
	SummariesPerMinute float64
	SummaryBurst       int
}

type Config struct {
	Server    ServerConfig
	DB        DatabaseConfig
	Redis     RedisConfig
	Ledger    LedgerConfig
	OpenAI    OpenAIConfig
	JWTSecret string
	Env       string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "datahive"),
			Password: getEnv("DB_PASS", "datahive"),
			DBName:   getEnv("DB_NAME", "datahive"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:            getEnv("REDIS_HOST", "localhost"),
			Port:            getEnv("REDIS_PORT", "6379"),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvInt("REDIS_DB", 0),
			ProductCacheTTL: getEnvDuration("PRODUCT_CACHE_TTL", 10*time.Minute),
		},
		Ledger: LedgerConfig{
			URL:               getEnv("LEDGER_WS_URL", "ws://localhost:9944"),
			Timeout:           getEnvDuration("LEDGER_TIMEOUT", 10*time.Second),
			WebsitesMethod:    getEnv("LEDGER_WEBSITES_METHOD", "dbModule_websites"),
			WebsiteDataMethod: getEnv("LEDGER_WEBSITE_DATA_METHOD", "dbModule_websiteData"),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

			SummariesPerMinute: float64(getEnvInt("SUMMARY_RATE_PER_MINUTE", 6)),
			SummaryBurst:       getEnvInt("SUMMARY_RATE_BURST", 3),
		},
		JWTSecret: getEnv("JWT_SECRET", ""),
		Env:       getEnv("ENV", "prod"),
	}
}

// IsProduction matches the ENV values that switch gin to release mode.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
