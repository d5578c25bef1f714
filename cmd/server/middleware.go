package main

import (
	"codeberg.org/surferbot/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// tags each webhook delivery with a request id and threads a request-scoped
// logger through the context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		ctx := logger.WithContext(c.Request.Context(), logger.With("request_id", requestID))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
