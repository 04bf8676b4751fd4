package notifications

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"affiliate-bot-backend/internal/common/middleware"
)

// Handler streams the caller's events over SSE.
type Handler struct {
	hub Hub
}

func NewHandler(hub Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/events", h.stream)
}

// @Summary Live event stream
// @Description Server-sent events: bot_activity, earning_update, withdrawal_status.
// @Tags events
// @Produce text/event-stream
// @Security TelegramInitData
// @Router /events [get]
func (h *Handler) stream(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	events, cancel := h.hub.Subscribe(c.Request.Context(), userID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
