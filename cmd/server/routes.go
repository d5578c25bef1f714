package main

import (
	"fmt"
	"time"

	"codeberg.org/surferbot/server/api/rest/health"
	"codeberg.org/surferbot/server/api/rest/webhook"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// webhook deliveries per minute before the HTTP layer pushes back; this is
// surface protection, separate from per-user quotas in the ledger
var webhookRate = limiter.Rate{
	Period: time.Minute,
	Limit:  120,
}

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.GET("/health", health.Handler)
	router.GET("/ping", health.PingHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rateLimit, err := newRateLimitMiddleware(server)
	if err != nil {
		return err
	}

	webhook.RegisterRoutes(router, server.config.BotSecret, server.dispatcher,
		RequestIDMiddleware(), rateLimit)

	return nil
}

// builds the webhook rate-limit middleware, sharing the redis connection with
// the counter store when one is configured
func newRateLimitMiddleware(server *Server) (gin.HandlerFunc, error) {
	var (
		limiterStore limiter.Store
		err          error
	)

	if server.redis != nil {
		limiterStore, err = redisstore.NewStoreWithOptions(server.redis.Client(), limiter.StoreOptions{
			Prefix: "surferbot:httplimit",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis rate-limit store: %w", err)
		}
	} else {
		limiterStore = memorystore.NewStore()
	}

	return mgin.NewMiddleware(limiter.New(limiterStore, webhookRate)), nil
}
