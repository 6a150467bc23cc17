package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Machine-readable error codes surfaced to clients so they can
// distinguish "refresh needed" from "re-login needed".
const (
	CodeNoToken                 = "NO_TOKEN"
	CodeTokenExpired            = "TOKEN_EXPIRED"
	CodeInvalidToken            = "INVALID_TOKEN"
	CodeInvalidTokenType        = "INVALID_TOKEN_TYPE"
	CodeAuthFailed              = "AUTH_FAILED"
	CodeNoRefreshToken          = "NO_REFRESH_TOKEN"
	CodeRefreshTokenInvalid     = "REFRESH_TOKEN_INVALID"
	CodeNoAuth                  = "NO_AUTH"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeValidationError         = "VALIDATION_ERROR"
	CodeRateLimited             = "RATE_LIMITED"
	CodeInvalidOTP              = "INVALID_OTP"
	CodeServerError             = "SERVER_ERROR"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse represents an error response with a machine-readable code
type ErrorResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Code     string   `json:"code,omitempty"`
	Required []string `json:"required,omitempty"`
	Current  string   `json:"current,omitempty"`
}

// SuccessResponse sends a success response with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends an error response with a machine-readable code
func ErrorResponseHandler(c echo.Context, statusCode int, message, code string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Message: message,
		Code:    code,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, message, CodeValidationError)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message, code string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, message, code)
}

// ForbiddenResponse sends a 403 Forbidden response carrying the required
// role set and the caller's actual role for diagnostics
func ForbiddenResponse(c echo.Context, message string, required []string, current string) error {
	if message == "" {
		message = "Forbidden"
	}
	return c.JSON(http.StatusForbidden, ErrorResponse{
		Success:  false,
		Message:  message,
		Code:     CodeInsufficientPermissions,
		Required: required,
		Current:  current,
	})
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// TooManyRequestsResponse sends a 429 Too Many Requests response
func TooManyRequestsResponse(c echo.Context, message string) error {
	return ErrorResponseHandler(c, http.StatusTooManyRequests, message, CodeRateLimited)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response.
// The message is intentionally generic; details belong in the server log.
func InternalServerErrorResponse(c echo.Context, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return ErrorResponseHandler(c, http.StatusInternalServerError, message, CodeServerError)
}
