package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultCooldownSeconds = 5
	defaultDailyLimit      = 10
	defaultMonthlyCap      = 100
	defaultVertexLocation  = "us-central1"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	telegramToken := os.Getenv("TELEGRAM_TOKEN")
	if telegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}

	botSecret := os.Getenv("BOT_SECRET")
	if botSecret == "" {
		return nil, fmt.Errorf("BOT_SECRET environment variable is required")
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	vertexLocation := os.Getenv("VERTEX_LOCATION")
	if vertexLocation == "" {
		vertexLocation = defaultVertexLocation
	}

	return &Config{
		TelegramToken: telegramToken,
		BotSecret:     botSecret,

		// optional: missing store config means usage accounting fails open
		FirebaseURL:  strings.TrimRight(os.Getenv("FIREBASE_DB_URL"), "/"),
		FirebaseAuth: os.Getenv("FIREBASE_AUTH_TOKEN"),
		RedisURL:     os.Getenv("REDIS_URL"),

		VertexProjectID: os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation:  vertexLocation,
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),

		AdminUserIDs:      parseAdminIDs(os.Getenv("ADMIN_USER_IDS")),
		Cooldown:          time.Duration(envInt("COOLDOWN_SECONDS", defaultCooldownSeconds)) * time.Second,
		DefaultDailyLimit: envInt("DEFAULT_DAILY_LIMIT", defaultDailyLimit),
		MonthlyGlobalCap:  envInt("MONTHLY_GLOBAL_CAP", defaultMonthlyCap),

		Environment: environment,
	}, nil
}

// parses a comma-separated list of admin user ids into a set
func parseAdminIDs(raw string) map[string]bool {
	admins := make(map[string]bool)

	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			admins[id] = true
		}
	}

	return admins
}

// reads an integer environment variable with a fallback default
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return val
}
