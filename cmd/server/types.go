package main

import (
	"codeberg.org/surferbot/server/internal/command"
	"codeberg.org/surferbot/server/internal/config"
	"codeberg.org/surferbot/server/internal/ledger"
	"codeberg.org/surferbot/server/internal/store"
	"codeberg.org/surferbot/server/internal/telegram"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the bot server
type Server struct {
	config     *config.Config
	router     *gin.Engine
	ledger     *ledger.Ledger
	gate       *ledger.Gatekeeper
	dispatcher *command.Dispatcher
	bot        *telegram.Client

	// non-nil only when REDIS_URL is configured
	redis *store.RedisClient
}
