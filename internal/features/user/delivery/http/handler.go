package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"affiliate-bot-backend/internal/common/middleware"
	"affiliate-bot-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.GET("/:id", middleware.RequireAdmin(), h.getUser)
	}
}

// @Summary Get current user
// @Description Get or create the current dashboard user from Telegram init data.
// @Tags users
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} models.UserResponse "User data"
// @Failure 401 {object} middleware.ErrorResponse "Missing init data"
// @Router /users/me [get]
func (h *UserHandler) getMe(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	tgUser, ok := user.(initdata.User)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user data format"})
		return
	}

	resp, err := h.service.GetOrCreateUser(c.Request.Context(), tgUser.ID, tgUser.Username)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get user by ID
// @Description Get user information by ID (admin only).
// @Tags users
// @Produce json
// @Security TelegramInitData
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse "User data"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	resp, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
