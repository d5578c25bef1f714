package main

import (
	"fmt"

	"codeberg.org/surferbot/server/internal/command"
	"codeberg.org/surferbot/server/internal/config"
	"codeberg.org/surferbot/server/internal/imagegen"
	"codeberg.org/surferbot/server/internal/ledger"
	"codeberg.org/surferbot/server/internal/logger"
	"codeberg.org/surferbot/server/internal/store"
	"codeberg.org/surferbot/server/internal/telegram"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// pick the counter store strategy once at startup; everything downstream
	// just sees a store.Client
	var (
		counterStore store.Client
		redisStore   *store.RedisClient
	)

	switch {
	case cfg.RedisURL != "":
		rs, err := store.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis counter store: %w", err)
		}

		counterStore = rs
		redisStore = rs

		logger.Info("usage counters backed by redis", "atomic_increments", true)
	case cfg.FirebaseURL != "":
		counterStore = store.NewFirebaseClient(cfg.FirebaseURL, cfg.FirebaseAuth)

		logger.Info("usage counters backed by realtime database", "atomic_increments", false)
	default:
		counterStore = store.NewNopClient()

		logger.Warn("no counter store configured, usage accounting disabled (failing open)")
	}

	usageLedger := ledger.New(counterStore, cfg.DefaultDailyLimit)
	gate := ledger.NewGatekeeper(usageLedger, cfg.Cooldown, cfg.MonthlyGlobalCap)

	images := imagegen.NewVertexClient(imagegen.VertexConfig{
		ProjectID: cfg.VertexProjectID,
		Location:  cfg.VertexLocation,
		APIKey:    cfg.GeminiAPIKey,
	})

	if !images.Configured() {
		logger.Warn("vertex config missing, /image will fail until configured")
	}

	bot := telegram.NewClient(cfg.TelegramToken)
	dispatcher := command.NewDispatcher(cfg, gate, images, bot)

	router := gin.Default()

	server := &Server{
		config:     cfg,
		router:     router,
		ledger:     usageLedger,
		gate:       gate,
		dispatcher: dispatcher,
		bot:        bot,
		redis:      redisStore,
	}

	if err := RegisterRoutes(router, server); err != nil {
		return nil, err
	}

	return server, nil
}
