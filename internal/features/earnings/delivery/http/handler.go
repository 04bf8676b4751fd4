package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"affiliate-bot-backend/internal/common/cache"
	"affiliate-bot-backend/internal/common/middleware"
	"affiliate-bot-backend/internal/features/earnings/service"
)

const snapshotTTL = 30 * time.Second

type EarningsHandler struct {
	aggregator *service.Aggregator
	cache      *cache.Service
}

// NewEarningsHandler wires the aggregator, with an optional snapshot cache
// (nil when redis is not available).
func NewEarningsHandler(aggregator *service.Aggregator, cacheSvc *cache.Service) *EarningsHandler {
	return &EarningsHandler{aggregator: aggregator, cache: cacheSvc}
}

func (h *EarningsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/earnings", h.getEarnings)
}

// @Summary Poll aggregated earnings
// @Description Live snapshot of per-provider earnings and their sum. Read-only; credits are applied by the bot cycle.
// @Tags earnings
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} service.Snapshot "Earnings snapshot"
// @Router /earnings [get]
func (h *EarningsHandler) getEarnings(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	if h.cache != nil {
		var snapshot service.Snapshot
		key := fmt.Sprintf("earnings:snapshot:%d", userID)
		err := h.cache.GetOrSet(c.Request.Context(), key, &snapshot, snapshotTTL, func() (interface{}, error) {
			return h.aggregator.Collect(c.Request.Context()), nil
		})
		if err == nil {
			c.JSON(http.StatusOK, snapshot)
			return
		}
	}

	c.JSON(http.StatusOK, h.aggregator.Collect(c.Request.Context()))
}
