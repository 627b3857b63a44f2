package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	// Storage
	LevelDBPath string
	RedisURL    string // optional; empty disables rate limiting and overlay events

	// Donation limits
	MinDonationUSD   float64
	MaxDonationUSD   float64
	TierTolerance    float64
	MaxMessageLength int
	ListLimitCeiling int

	// Network (informational, reported by /health)
	Network string // base-mainnet / base-sepolia

	// Server
	APIPort        string
	AllowedOrigins []string

	// Seed
	SeedDemoData bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		LevelDBPath: getEnv("LEVELDB_PATH", "./data/donations.db"),
		RedisURL:    getEnv("REDIS_URL", ""),

		MinDonationUSD:   getEnvFloat("MIN_DONATION_USD", 0.01),
		MaxDonationUSD:   getEnvFloat("MAX_DONATION_USD", 1000.0),
		TierTolerance:    getEnvFloat("TIER_TOLERANCE", 0.01),
		MaxMessageLength: getEnvInt("MAX_MESSAGE_LENGTH", 200),
		ListLimitCeiling: getEnvInt("LIST_LIMIT_CEILING", 1000),

		Network: getEnv("NETWORK", "base-sepolia"),

		APIPort:        getEnv("API_PORT", "8000"),
		AllowedOrigins: parseOriginList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8000")),

		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),
	}
}

func (c *Config) IsTestnet() bool {
	n := strings.ToLower(c.Network)
	return strings.Contains(n, "sepolia") || strings.Contains(n, "test")
}

// ChainID returns the Base chain id for the configured network.
func (c *Config) ChainID() int {
	if c.IsTestnet() {
		return 84532
	}
	return 8453
}

func (c *Config) Validate(log *zap.Logger) {
	if c.RedisURL == "" {
		log.Warn("REDIS_URL is not set, rate limiting and overlay events are disabled")
	}
	if c.MinDonationUSD <= 0 {
		log.Warn("MIN_DONATION_USD is not positive", zap.Float64("value", c.MinDonationUSD))
	}
	if c.MaxDonationUSD <= c.MinDonationUSD {
		log.Warn("MAX_DONATION_USD does not exceed MIN_DONATION_USD",
			zap.Float64("min", c.MinDonationUSD),
			zap.Float64("max", c.MaxDonationUSD),
		)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

func parseOriginList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var origins []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
