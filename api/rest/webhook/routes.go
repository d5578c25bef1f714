package webhook

import (
	"github.com/gin-gonic/gin"
)

// registers the Telegram webhook route; middleware typically carries request
// IDs and the HTTP-level rate limit
func RegisterRoutes(router *gin.Engine, secret string, dispatcher UpdateDispatcher, middleware ...gin.HandlerFunc) {
	handlers := append(middleware, Handler(secret, dispatcher))
	router.POST("/webhook/:secret", handlers...)
}
