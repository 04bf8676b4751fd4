package middleware

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"affiliate-bot-backend/internal/common/logger"
)

// TelegramInitDataMiddleware validates the Mini App init_data header and
// stores the authenticated Telegram user in the request context.
func TelegramInitDataMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		initDataQuery := c.GetHeader("init_data")
		if initDataQuery == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
			return
		}

		token := os.Getenv("BOT_TOKEN")
		if token == "" {
			logger.Error().Msg("BOT_TOKEN not set in environment")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			return
		}

		// Expiration check disabled: the dashboard keeps init_data for the
		// whole session.
		expIn := time.Duration(0)

		if err := initdata.Validate(initDataQuery, token, expIn); err != nil {
			logger.Debug().Err(err).Msg("init_data validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": fmt.Sprintf("Invalid init data: %v", err)})
			return
		}

		parsedData, err := initdata.Parse(initDataQuery)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to parse init data: %v", err)})
			return
		}

		c.Set("user", parsedData.User)
		c.Set("user_id", parsedData.User.ID)
		c.Next()
	}
}
