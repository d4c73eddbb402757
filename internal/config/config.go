package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration

	LogLevel  string
	LogFormat string

	PayPal   PayPalConfig
	Bakong   BakongConfig
	Telegram TelegramConfig
}

// PayPalConfig carries the REST credentials for the checkout integration.
// BaseURL points at the sandbox unless overridden.
type PayPalConfig struct {
	BaseURL  string
	ClientID string
	Secret   string
}

// BakongConfig carries the KHQR merchant identity and the API token used for
// transaction status polling.
type BakongConfig struct {
	BaseURL      string
	Token        string
	AccountID    string
	MerchantName string
	MerchantCity string
	Currency     string
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "storefront"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "console"),

		PayPal: PayPalConfig{
			BaseURL:  getEnvOrDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),
			ClientID: getEnvOrDefault("PAYPAL_CLIENT_ID", ""),
			Secret:   getEnvOrDefault("PAYPAL_SECRET", ""),
		},
		Bakong: BakongConfig{
			BaseURL:      getEnvOrDefault("BAKONG_BASE_URL", "https://api-bakong.nbc.gov.kh"),
			Token:        getEnvOrDefault("BAKONG_TOKEN", ""),
			AccountID:    getEnvOrDefault("BAKONG_ACCOUNT_ID", ""),
			MerchantName: getEnvOrDefault("BAKONG_MERCHANT_NAME", "Storefront"),
			MerchantCity: getEnvOrDefault("BAKONG_MERCHANT_CITY", "Phnom Penh"),
			Currency:     getEnvOrDefault("BAKONG_CURRENCY", "USD"),
		},
		Telegram: TelegramConfig{
			BotToken: getEnvOrDefault("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnvOrDefault("TELEGRAM_CHAT_ID", ""),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
