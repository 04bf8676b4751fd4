package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "affiliate-bot-backend/internal/common/errors"
	"affiliate-bot-backend/internal/common/middleware"
	"affiliate-bot-backend/internal/features/withdrawal/service"
)

type WithdrawalHandler struct {
	service service.WithdrawalService
}

func NewWithdrawalHandler(service service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{service: service}
}

func (h *WithdrawalHandler) RegisterRoutes(router *gin.RouterGroup) {
	withdrawals := router.Group("/withdrawals")
	{
		withdrawals.POST("", h.submit)
		withdrawals.GET("", h.history)
	}
}

type submitRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Method      string  `json:"method" binding:"required"`
	Destination string  `json:"destination" binding:"required"`
}

// submit godoc
// @Summary Withdraw funds
// @Description Sends funds to the given destination via the chosen payout method
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param request body submitRequest true "Withdrawal parameters"
// @Success 200 {object} models.Withdrawal
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 402 {object} middleware.ErrorResponse
// @Security TelegramInitData
// @Router /withdrawals [post]
func (h *WithdrawalHandler) submit(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		middleware.AbortWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	withdrawal, err := h.service.Submit(c.Request.Context(), userID, req.Amount, req.Method, req.Destination)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawal)
}

// history godoc
// @Summary List past withdrawals
// @Description Returns the user's withdrawal ledger, newest first
// @Tags withdrawals
// @Produce json
// @Param limit query int false "Maximum entries to return" default(50)
// @Success 200 {array} models.Withdrawal
// @Failure 401 {object} middleware.ErrorResponse
// @Security TelegramInitData
// @Router /withdrawals [get]
func (h *WithdrawalHandler) history(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		middleware.AbortWithError(c, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	withdrawals, err := h.service.History(c.Request.Context(), userID, limit)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}
