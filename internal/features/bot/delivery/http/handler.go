package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "affiliate-bot-backend/internal/common/errors"
	"affiliate-bot-backend/internal/common/middleware"
	"affiliate-bot-backend/internal/features/bot/service"
)

type BotHandler struct {
	service service.BotService
}

func NewBotHandler(service service.BotService) *BotHandler {
	return &BotHandler{service: service}
}

func (h *BotHandler) RegisterRoutes(router *gin.RouterGroup) {
	bots := router.Group("/bots")
	{
		bots.POST("/start", h.start)
		bots.POST("/stop", h.stop)
		bots.POST("/cycle", h.cycle)
		bots.GET("/status", h.status)
	}
}

type startRequest struct {
	Platform  string   `json:"platform" binding:"required"`
	Keywords  []string `json:"keywords"`
	Platforms []string `json:"platforms"`
}

type stopRequest struct {
	Platform string `json:"platform" binding:"required"`
}

type cycleRequest struct {
	Platform string `json:"platform" binding:"required"`
	Keyword  string `json:"keyword"`
}

// start godoc
// @Summary Start the posting bot
// @Description Starts (or restarts) the recurring posting cycle for a platform
// @Tags bots
// @Accept json
// @Produce json
// @Param request body startRequest true "Start parameters"
// @Success 200 {object} models.BotStatus
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security TelegramInitData
// @Router /bots/start [post]
func (h *BotHandler) start(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		middleware.AbortWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	status, err := h.service.Start(c.Request.Context(), userID, req.Platform, req.Keywords, req.Platforms)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// stop godoc
// @Summary Stop the posting bot
// @Description Stops the recurring posting cycle; safe to call when not running
// @Tags bots
// @Accept json
// @Produce json
// @Param request body stopRequest true "Stop parameters"
// @Success 200 {object} models.BotStatus
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security TelegramInitData
// @Router /bots/stop [post]
func (h *BotHandler) stop(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		middleware.AbortWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req stopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	status, err := h.service.Stop(c.Request.Context(), userID, req.Platform)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// cycle godoc
// @Summary Run one posting cycle now
// @Description Runs a single ad-hoc cycle; the bot must have been started first
// @Tags bots
// @Accept json
// @Produce json
// @Param request body cycleRequest true "Cycle parameters"
// @Success 200 {object} service.ManualCycleResult
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security TelegramInitData
// @Router /bots/cycle [post]
func (h *BotHandler) cycle(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		middleware.AbortWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req cycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	result, err := h.service.TriggerCycle(c.Request.Context(), userID, req.Platform, req.Keyword)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// status godoc
// @Summary Get bot status
// @Tags bots
// @Produce json
// @Param platform query string true "Platform name"
// @Success 200 {object} models.BotStatus
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Security TelegramInitData
// @Router /bots/status [get]
func (h *BotHandler) status(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		middleware.AbortWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	platform := c.Query("platform")
	status, err := h.service.Status(c.Request.Context(), userID, platform)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
