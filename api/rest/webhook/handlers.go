package webhook

import (
	"context"
	"net/http"

	"codeberg.org/surferbot/server/internal/errors"
	"codeberg.org/surferbot/server/internal/telegram"
	"github.com/gin-gonic/gin"
)

// UpdateDispatcher handles one decoded Telegram update.
type UpdateDispatcher interface {
	Dispatch(ctx context.Context, update *telegram.Update)
}

// Handler receives Telegram webhook deliveries. The secret path segment is
// the only authentication Telegram offers for this surface; a mismatch is
// answered as not-found so the endpoint does not confirm its own existence.
//
// The reply is 200 regardless of what the command inside did: Telegram
// redelivers non-2xx updates, and a failed command must not be replayed.
func Handler(secret string, dispatcher UpdateDispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("secret") != secret {
			errors.NotFound(c, "")
			return
		}

		var update telegram.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			errors.BadRequest(c, "malformed update", err)
			return
		}

		dispatcher.Dispatch(c.Request.Context(), &update)

		c.String(http.StatusOK, "ok")
	}
}
