package config

import "time"

// Config holds everything the bot needs from the environment.
type Config struct {
	TelegramToken string
	BotSecret     string

	// counter store connectivity; empty FirebaseURL means the store is
	// unavailable and usage accounting fails open
	FirebaseURL  string
	FirebaseAuth string
	RedisURL     string

	// image generation
	VertexProjectID string
	VertexLocation  string
	GeminiAPIKey    string

	// usage policy
	AdminUserIDs      map[string]bool
	Cooldown          time.Duration
	DefaultDailyLimit int
	MonthlyGlobalCap  int

	Environment string
}

// reports whether a user id belongs to the configured admin set
func (c *Config) IsAdmin(userID string) bool {
	return c.AdminUserIDs[userID]
}
