package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL        string
	RabbitMQURL        string
	RabbitMQWorkerMode string

	JWTSecret        string
	JWTExpirySeconds int64

	CorsAllowedOrigins []string

	// Restaurant behavior
	Timezone        string
	DuplicateWindow time.Duration
	StoreWhatsApp   string

	// Google Sheets
	SpreadsheetID           string
	MenuSpreadsheetID       string
	ClosedOrdersSheet       string
	SangriasSheet           string
	GoogleCredentialsBase64 string

	// Published-CSV menu sources
	MenuCSVURL        string
	PromotionsCSVURL  string
	DeliveryFeeCSVURL string
	BurgerCSVURL      string
	PizzaExtraCSVURL  string
	ContactCSVURL     string

	// WhatsApp Cloud API
	WhatsAppToken         string
	WhatsAppVerifyToken   string
	WhatsAppPhoneID       string
	WebhookProcessTimeout time.Duration

	// LLM + transcription
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
}

func Load() Config {
	cfg := Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8087"),

		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RabbitMQURL:        getEnv("RABBITMQ_URL", ""),
		RabbitMQWorkerMode: getEnv("RABBITMQ_WORKER_MODE", "daemon"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpirySeconds: getEnvInt64("JWT_EXPIRY", 3600),

		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),

		Timezone:        getEnv("ORDER_TIMEZONE", "America/Sao_Paulo"),
		DuplicateWindow: getEnvDuration("DUPLICATE_WINDOW", 3*time.Minute),
		StoreWhatsApp:   getEnv("STORE_WHATSAPP_NUMBER", ""),

		SpreadsheetID:           getEnv("SPREADSHEET_ID", ""),
		MenuSpreadsheetID:       getEnv("MENU_SPREADSHEET_ID", ""),
		ClosedOrdersSheet:       getEnv("CLOSED_ORDERS_SHEET_NAME", "encerrados"),
		SangriasSheet:           getEnv("SANGRIAS_SHEET_NAME", "sangrias"),
		GoogleCredentialsBase64: getEnv("GOOGLE_CREDENTIALS_BASE64", ""),

		MenuCSVURL:        getEnv("MENU_SHEET_CSV_URL", ""),
		PromotionsCSVURL:  getEnv("PROMOTIONS_SHEET_CSV_URL", ""),
		DeliveryFeeCSVURL: getEnv("DELIVERY_FEES_SHEET_CSV_URL", ""),
		BurgerCSVURL:      getEnv("BURGER_INGREDIENTS_SHEET_CSV_URL", ""),
		PizzaExtraCSVURL:  getEnv("PIZZA_EXTRAS_SHEET_CSV_URL", ""),
		ContactCSVURL:     getEnv("CONTACT_SHEET_CSV_URL", ""),

		WhatsAppToken:         getEnv("WHATSAPP_API_TOKEN", ""),
		WhatsAppVerifyToken:   getEnv("WHATSAPP_VERIFY_TOKEN", ""),
		WhatsAppPhoneID:       getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
		WebhookProcessTimeout: getEnvDuration("WEBHOOK_PROCESS_TIMEOUT", 90*time.Second),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
	}

	if cfg.DuplicateWindow <= 0 {
		cfg.DuplicateWindow = 3 * time.Minute
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt64(key string, fallback int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
