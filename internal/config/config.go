package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string

	// Persistence backend: "file" or "postgres"
	StoreBackend string
	DataDir      string
	DBUser       string
	DBPassword   string
	DBHost       string
	DBPort       string
	DBName       string

	// Game loop timing
	TickInterval     time.Duration
	AutosaveInterval time.Duration
	MaxOfflineCredit time.Duration

	// Simulated wallet
	FaucetAmount float64
	TreasuryAddr string

	// Optional Discord webhook for harvest announcements
	DiscordWebhookID    string
	DiscordWebhookToken string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", DefaultVersion),

		StoreBackend: getEnv("STORE_BACKEND", StoreBackendFile),
		DataDir:      getEnv("DATA_DIR", DefaultDataDir),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "growroom"),

		TreasuryAddr: getEnv("TREASURY_ADDRESS", DefaultTreasuryAddr),

		DiscordWebhookID:    getEnv("DISCORD_WEBHOOK_ID", ""),
		DiscordWebhookToken: getEnv("DISCORD_WEBHOOK_TOKEN", ""),
	}

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.TickInterval, err = getDuration("TICK_INTERVAL", DefaultTickInterval); err != nil {
		return nil, err
	}
	if cfg.AutosaveInterval, err = getDuration("AUTOSAVE_INTERVAL", DefaultAutosaveInterval); err != nil {
		return nil, err
	}
	if cfg.MaxOfflineCredit, err = getDuration("MAX_OFFLINE_CREDIT", DefaultMaxOfflineCredit); err != nil {
		return nil, err
	}

	faucet, err := strconv.ParseFloat(getEnv("FAUCET_AMOUNT", DefaultFaucetAmount), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FAUCET_AMOUNT value: %w", err)
	}
	cfg.FaucetAmount = faucet

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.StoreBackend != StoreBackendFile && c.StoreBackend != StoreBackendPostgres {
		return fmt.Errorf("invalid STORE_BACKEND %q: must be %q or %q", c.StoreBackend, StoreBackendFile, StoreBackendPostgres)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.AutosaveInterval <= 0 {
		return fmt.Errorf("AUTOSAVE_INTERVAL must be positive, got %s", c.AutosaveInterval)
	}
	if c.FaucetAmount < 0 {
		return fmt.Errorf("FAUCET_AMOUNT must be non-negative, got %f", c.FaucetAmount)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
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

// DiscordEnabled reports whether the Discord webhook notifier is configured.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}
