package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"affiliate-bot-backend/internal/common/errors"
	"affiliate-bot-backend/internal/common/logger"
)

// ErrorHandler recovers panics and renders them as structured errors.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := getRequestID(c)

		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithRequestID(requestID).
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		sendErrorResponse(c, appErr)
	})
}

// RequestID assigns every request an ID, honoring an incoming X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorResponse is the JSON envelope for failed requests.
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
	Method    string           `json:"method,omitempty"`
}

// AbortWithError renders err in the standard envelope and aborts the request.
func AbortWithError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "Unexpected error")
	}
	sendErrorResponse(c, appErr)
	c.Abort()
}

func sendErrorResponse(c *gin.Context, appErr *errors.AppError) {
	requestID := getRequestID(c)

	appErr.WithRequestID(requestID).
		WithContext("path", c.Request.URL.Path).
		WithContext("method", c.Request.Method)

	logError(appErr, c)

	c.JSON(getHTTPStatusCode(appErr), ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
	})
}

func getHTTPStatusCode(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest, errors.ErrCodeUnknownPlatform, errors.ErrCodeUnknownMethod:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeUserNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden, errors.ErrCodeUserBanned:
		return http.StatusForbidden
	case errors.ErrCodeBotNotStarted:
		return http.StatusConflict
	case errors.ErrCodeInsufficientFunds, errors.ErrCodePaymentFailed:
		return http.StatusPaymentRequired
	case errors.ErrCodeTooManyRequests, errors.ErrCodeRateLimit:
		return http.StatusTooManyRequests
	case errors.ErrCodeProviderError, errors.ErrCodeExternalAPI:
		return http.StatusBadGateway
	case errors.ErrCodeCacheError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func logError(appErr *errors.AppError, c *gin.Context) {
	event := logger.Error()
	switch {
	case appErr.IsCaller():
		event = logger.Info()
	case appErr.IsNotFound():
		event = logger.Info()
	case appErr.Code == errors.ErrCodeUnauthorized || appErr.Code == errors.ErrCodeForbidden:
		event = logger.Warn()
	}

	event.
		Str("request_id", getRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message)

	if appErr.UserID != 0 {
		event.Int64("user_id", appErr.UserID)
	}
	if appErr.Cause != nil {
		event.Err(appErr.Cause)
	}

	event.Msg("Request failed")
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}
