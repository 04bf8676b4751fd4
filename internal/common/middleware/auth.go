package middleware

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

func getAdminIDs() []int64 {
	adminIDsStr := os.Getenv("ADMIN_IDS")
	if adminIDsStr == "" {
		return []int64{}
	}

	var adminIDs []int64
	for _, idStr := range strings.Split(adminIDsStr, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64); err == nil {
			adminIDs = append(adminIDs, id)
		}
	}
	return adminIDs
}

// CurrentUserID returns the authenticated Telegram user ID, or 0.
func CurrentUserID(c *gin.Context) int64 {
	user, exists := c.Get("user")
	if !exists {
		return 0
	}
	tgUser, ok := user.(initdata.User)
	if !ok {
		return 0
	}
	return tgUser.ID
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
			return
		}

		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	adminIDs := getAdminIDs()

	return func(c *gin.Context) {
		userID := CurrentUserID(c)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
			return
		}

		isAdmin := false
		for _, adminID := range adminIDs {
			if userID == adminID {
				isAdmin = true
				break
			}
		}

		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}
