package errors

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode identifies an application error class.
type ErrorCode string

const (
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"

	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserBanned   ErrorCode = "USER_BANNED"

	ErrCodeBotNotStarted   ErrorCode = "BOT_NOT_STARTED"
	ErrCodeUnknownPlatform ErrorCode = "UNKNOWN_PLATFORM"

	ErrCodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodePaymentFailed     ErrorCode = "PAYMENT_FAILED"
	ErrCodeUnknownMethod     ErrorCode = "UNKNOWN_PAYOUT_METHOD"

	ErrCodeNotConfigured ErrorCode = "NOT_CONFIGURED"
	ErrCodeProviderError ErrorCode = "PROVIDER_ERROR"
	ErrCodeExternalAPI   ErrorCode = "EXTERNAL_API_ERROR"
	ErrCodeRateLimit     ErrorCode = "RATE_LIMIT_EXCEEDED"

	ErrCodeStorageError ErrorCode = "STORAGE_ERROR"
	ErrCodeCacheError   ErrorCode = "CACHE_ERROR"
)

// AppError is the typed application error carried across layers.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Context   map[string]string      `json:"context,omitempty"`
	Stack     []string               `json:"stack,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	UserID    int64                  `json:"user_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether the error is a "not found" class error.
func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound || e.Code == ErrCodeUserNotFound
}

// IsValidation reports whether the error is a validation class error.
func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeBadRequest
}

// IsCaller reports whether the error is an explicit precondition rejection,
// something the caller got wrong, as opposed to a provider failure.
func (e *AppError) IsCaller() bool {
	return e.Code == ErrCodeBotNotStarted ||
		e.Code == ErrCodeInsufficientFunds ||
		e.Code == ErrCodeUnknownPlatform ||
		e.Code == ErrCodeUnknownMethod ||
		e.IsValidation()
}

// IsInternal reports whether the error should be treated as a server fault.
func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal ||
		e.Code == ErrCodeStorageError ||
		e.Code == ErrCodeCacheError ||
		e.Code == ErrCodeExternalAPI
}

// WithContext attaches a request-scoped key/value pair.
func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithDetail attaches a structured detail value.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

func (e *AppError) WithUserID(userID int64) *AppError {
	e.UserID = userID
	return e
}

// New creates a new application error with a captured stack.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Stack:     getStackTrace(),
	}
}

// Wrap wraps an existing error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func getStackTrace() []string {
	var stack []string
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.Contains(fn.Name(), "internal/common/errors") {
			continue
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		if len(stack) >= 10 {
			break
		}
	}
	return stack
}

// Constructors for the common cases.

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

func NewUserNotFoundError(userID int64) *AppError {
	return New(ErrCodeUserNotFound, fmt.Sprintf("User not found: %d", userID)).
		WithDetail("user_id", userID)
}

func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

// NewBotNotStartedError rejects operations that require a started bot.
func NewBotNotStartedError(userID int64, platform string) *AppError {
	return New(ErrCodeBotNotStarted, fmt.Sprintf("Bot not started for platform %s", platform)).
		WithUserID(userID).
		WithDetail("platform", platform)
}

// NewInsufficientFundsError rejects a withdrawal exceeding the balance.
func NewInsufficientFundsError(requested, available float64) *AppError {
	return New(ErrCodeInsufficientFunds, "Withdrawal amount exceeds available balance").
		WithDetail("requested", requested).
		WithDetail("available", available)
}

// NewPaymentFailedError carries a processor-reported failure to the caller.
func NewPaymentFailedError(method string, err error) *AppError {
	return Wrap(err, ErrCodePaymentFailed, fmt.Sprintf("Payment processor rejected %s payout", method)).
		WithDetail("method", method)
}

func NewProviderError(provider string, err error) *AppError {
	return Wrap(err, ErrCodeProviderError, fmt.Sprintf("Provider call failed: %s", provider)).
		WithDetail("provider", provider)
}

func NewStorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageError, fmt.Sprintf("Storage operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError converts err to an AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
