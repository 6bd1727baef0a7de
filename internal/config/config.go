package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env              string
	HTTPAddr         string
	MongoURI         string
	MongoDatabase    string
	GeminiAPIKey     string
	GeminiModel      string
	ResendAPIKey     string
	EmailEnabled     bool
	EmailTransport   string // "resend" or "smtp"
	EmailFromName    string
	EmailFromAddress string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	BaseURL          string
	WebhookSecret    string
	WebhookVerify    bool
	CORSOrigins      []string
	FeedbackRate     float64
	FeedbackBurst    int
	ShutdownTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")
	transport := strings.ToLower(getEnv("EMAIL_TRANSPORT", "resend"))

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		MongoURI:         getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnv("MONGO_DB", "typeform_automation"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		EmailEnabled:     emailEnabled,
		EmailTransport:   transport,
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Form Insights"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		BaseURL:          strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		WebhookSecret:    getEnv("TYPEFORM_SECRET", ""),
		WebhookVerify:    strings.EqualFold(getEnv("WEBHOOK_VERIFY", "false"), "true"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "*")),
		FeedbackRate:     1.0, // requests per second per IP on /feedback
		FeedbackBurst:    mustInt(getEnv("FEEDBACK_RATE_BURST", "10")),
		ShutdownTimeout:  mustDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.EmailEnabled && cfg.EmailTransport == "resend" && cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is required when EMAIL_TRANSPORT is resend")
	}
	if cfg.EmailEnabled && cfg.EmailTransport == "smtp" && cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when EMAIL_TRANSPORT is smtp")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.WebhookVerify && cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("TYPEFORM_SECRET is required when WEBHOOK_VERIFY is true")
	}

	// PORT overrides HTTP_ADDR for platforms that inject only a port number.
	if port := getEnv("PORT", ""); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	var n int
	_, err := fmt.Sscanf(value, "%d", &n)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
