package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string

	// Fixed delivery offer: a flat TTC charge (8.1% VAT included) and the
	// HT cost billed by the courier.
	DeliveryPriceTTC float64
	DeliveryCostHT   float64
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:traiteur.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DeliveryPriceTTC = parseFloat("DELIVERY_PRICE_TTC", 25.00)
	cfg.DeliveryCostHT = parseFloat("DELIVERY_COST_HT", 0)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("invalid number for %s: %s", key, v)
			return def
		}
		return f
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
