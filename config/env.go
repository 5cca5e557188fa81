package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv           string
	Port             string
	BackendAPIURL    string
	JWTSecret        string
	JWTExpiry        string
	HTTPTimeout      time.Duration
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	CartTTL          time.Duration
	ConfirmationTTL  time.Duration
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	httpTimeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "15s"))
	if err != nil {
		httpTimeout = 15 * time.Second
	}

	retryBaseDelay, err := time.ParseDuration(getEnv("RETRY_BASE_DELAY", "1s"))
	if err != nil {
		retryBaseDelay = time.Second
	}

	retryMaxAttempts, _ := strconv.Atoi(getEnv("RETRY_MAX_ATTEMPTS", "3"))
	if retryMaxAttempts < 1 {
		retryMaxAttempts = 3
	}

	AppConfig = &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("APP_PORT", getEnv("PORT", "8080")),
		BackendAPIURL:    trimTrailingSlash(getEnv("BACKEND_API_URL", "https://api.icommerce.passmcq.com")),
		JWTSecret:        getEnv("JWT_SECRET", "secret"),
		JWTExpiry:        getEnv("JWT_EXPIRY", "24h"),
		HTTPTimeout:      httpTimeout,
		RetryMaxAttempts: retryMaxAttempts,
		RetryBaseDelay:   retryBaseDelay,
		CartTTL:          7 * 24 * time.Hour,
		ConfirmationTTL:  30 * time.Minute,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
	log.Printf("Commerce backend: %s", AppConfig.BackendAPIURL)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func trimTrailingSlash(url string) string {
	for len(url) > 0 && url[len(url)-1] == '/' {
		url = url[:len(url)-1]
	}
	return url
}
