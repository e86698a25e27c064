package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	SlackBotToken string
	SlackAPIRoot  string

	AIProvider   string
	GeminiAPIKey string
	OpenAIAPIKey string
	OpenAIModel  string

	ChannelConfidenceFloor  float64
	DMConfidenceFloor       float64
	RealtimeConfidenceFloor float64
	DedupSimilarity         float64
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=taskbot port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		SlackBotToken: getEnv("SLACK_BOT_TOKEN", ""),
		SlackAPIRoot:  getEnv("SLACK_API_ROOT", ""),

		AIProvider:   getEnv("AI_PROVIDER", "auto"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		ChannelConfidenceFloor:  getFloatEnv("CHANNEL_CONFIDENCE_FLOOR", 0.4),
		DMConfidenceFloor:       getFloatEnv("DM_CONFIDENCE_FLOOR", 0.7),
		RealtimeConfidenceFloor: getFloatEnv("REALTIME_CONFIDENCE_FLOOR", 0.7),
		DedupSimilarity:         getFloatEnv("DEDUP_SIMILARITY", 0.8),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
