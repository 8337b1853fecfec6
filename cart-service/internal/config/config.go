package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/fjod/go_cart/pricing/cart-service/internal/pricing"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	Env      string
	LogLevel string
	Currency string
	Output   string
}

// Load reads the optional env file named by CART_ENV_FILE (default .env)
// and then the process environment. Variables already set win over the file.
func Load() (Config, error) {
	envFile := getEnv("CART_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		Env:      getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Currency: strings.ToUpper(getEnv("CART_CURRENCY", pricing.BaseCurrency)),
		Output:   strings.ToLower(getEnv("CART_OUTPUT", OutputText)),
	}

	if _, ok := pricing.ExchangeRate(cfg.Currency); !ok {
		cfg.Currency = pricing.BaseCurrency
	}
	if cfg.Output != OutputText && cfg.Output != OutputJSON {
		cfg.Output = OutputText
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
