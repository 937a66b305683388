package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	Env       string // development | production
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	SendGridApiKey string
	EmailSender    string

	LocalTextApi    string
	LocalTextApiUrl string
	SmsSenderID     string

	StripeSecretKey string
	StripeApiURL    string

	StorageBucket string
	StorageToken  string
	StorageApiURL string

	RateLimitMax    int
	RateLimitWindow int // minutes
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "5000"),
		Env:       getEnv("APP_ENV", "development"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "ledgerline"),
		DBPort:     getEnv("DB_PORT", "5432"),

		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@ledgerline.in"),

		LocalTextApi:    getEnv("LOCAL_SMS_API_KEY", ""),
		LocalTextApiUrl: getEnv("LOCAL_SMS_API_URL", "https://www.fast2sms.com/dev/bulkV2"),
		SmsSenderID:     getEnv("SMS_SENDER_ID", "LDGRLN"),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		StripeApiURL:    getEnv("STRIPE_API_URL", "https://api.stripe.com/v1"),

		StorageBucket: getEnv("STORAGE_BUCKET", "ledgerline-documents"),
		StorageToken:  getEnv("STORAGE_TOKEN", ""),
		StorageApiURL: getEnv("STORAGE_API_URL", "https://storage.googleapis.com"),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW_MIN", 10),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY is not set. Payment routes will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
