package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every recognized option, resolved once at startup.
// Handlers and clients receive it by injection instead of reading
// the environment ad hoc.
type Config struct {
	Port string
	Mode string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayBaseURL       string
	RazorpayWebhookSecret string

	// Supabase Postgres connection string. Optional: without it the
	// service still verifies payments, reconciliation degrades to log-only.
	DatabaseURL string

	AllowedOrigins []string

	KafkaBrokers string
	KafkaTopic   string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
}

// Load reads .env (if present), resolves the configuration and validates it.
func Load() (*Config, error) {
	// Try loading .env from different locations
	envLocations := []string{
		".env",
		"config/.env",
		"../config/.env",
		"../../config/.env",
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port: getEnvWithDefault("PORT", "8080"),
		Mode: getEnvWithDefault("MODE", "development"),

		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayBaseURL:       getEnvWithDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),

		DatabaseURL: os.Getenv("SUPABASE_DB_URL"),

		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   getEnvWithDefault("KAFKA_TOPIC", "ssplt10.payments"),

		SMTPHost:  getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		EmailFrom: os.Getenv("EMAIL_FROM"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast, naming every missing required field at once.
func (c *Config) Validate() error {
	var missing []string
	if c.RazorpayKeyID == "" {
		missing = append(missing, "RAZORPAY_KEY_ID")
	}
	if c.RazorpayKeySecret == "" {
		missing = append(missing, "RAZORPAY_KEY_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
// Origin allowlisting is only enforced in production.
func (c *Config) IsProduction() bool {
	return c.Mode == "production"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part := strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
