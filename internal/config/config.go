package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string

	// Database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	DBAutoMigrate     bool

	// StoreMode is "postgres" or "local". Local keeps everything in memory.
	StoreMode string

	AdminAPIKey    string // guards /api/v1/admin routes
	TrustedProxies []string

	// Content
	CatalogPath string
	WorldPath   string

	// Shop rules
	CampaignStart           time.Time
	ShopRNG                 string
	ReservationDepositRate  float64
	ReservationPollInterval time.Duration
	SellPriceRatio          float64
	SelectionCacheSize      int
	SelectionCacheTTL       time.Duration

	WorkerPoolSize int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogDir:      getEnv("LOG_DIR", "logs"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "knightlytreasures"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		DBAutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", false),

		StoreMode:   strings.ToLower(getEnv("STORE_MODE", StoreModePostgres)),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		CatalogPath: getEnv("CATALOG_PATH", ConfigPathItems),
		WorldPath:   getEnv("WORLD_PATH", ConfigPathWorld),

		ShopRNG:                 strings.ToLower(getEnv("SHOP_RNG", "sine")),
		ReservationDepositRate:  getEnvAsFloat("RESERVATION_DEPOSIT_RATE", 0.1),
		ReservationPollInterval: getEnvAsDuration("RESERVATION_POLL_INTERVAL", time.Minute),
		SellPriceRatio:          getEnvAsFloat("SELL_PRICE_RATIO", 0.5),
		SelectionCacheSize:      getEnvAsInt("SELECTION_CACHE_SIZE", 64),
		SelectionCacheTTL:       getEnvAsDuration("SELECTION_CACHE_TTL", time.Hour),

		WorkerPoolSize: getEnvAsInt("WORKER_POOL_SIZE", 2),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	start, err := time.Parse(time.DateOnly, getEnv("CAMPAIGN_START", DefaultCampaignStart))
	if err != nil {
		return nil, fmt.Errorf("invalid CAMPAIGN_START value: %w", err)
	}
	cfg.CampaignStart = start

	if cfg.StoreMode != StoreModePostgres && cfg.StoreMode != StoreModeLocal {
		return nil, fmt.Errorf("invalid STORE_MODE %q: expected %q or %q", cfg.StoreMode, StoreModePostgres, StoreModeLocal)
	}

	if cfg.ReservationDepositRate < 0 || cfg.ReservationDepositRate > 1 {
		return nil, fmt.Errorf("RESERVATION_DEPOSIT_RATE must be between 0 and 1, got %v", cfg.ReservationDepositRate)
	}

	if cfg.AdminAPIKey == "" {
		return nil, fmt.Errorf("ADMIN_API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// LocalOnly reports whether persistence is switched off by configuration
func (c *Config) LocalOnly() bool {
	return c.StoreMode == StoreModeLocal
}
