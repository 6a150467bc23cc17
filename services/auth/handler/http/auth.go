package http

import (
	"errors"
	"net/http"

	"github.com/busbee/busbee-auth/internal/pkg/jwt"
	"github.com/busbee/busbee-auth/internal/pkg/logger"
	"github.com/busbee/busbee-auth/internal/pkg/middleware"
	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/busbee/busbee-auth/internal/utils"
	"github.com/busbee/busbee-auth/services/auth"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles HTTP requests for authentication operations
type AuthHandler struct {
	authUC auth.AuthUC
	cfg    *models.Config
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authUC auth.AuthUC, cfg *models.Config) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		cfg:    cfg,
	}
}

// RequestOTP handles OTP generation requests
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req models.RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.PhoneNumber == "" {
		return utils.BadRequestResponse(c, "Phone number is required")
	}

	resp, err := h.authUC.RequestOTP(c.Request().Context(), req.PhoneNumber)
	if err != nil {
		return h.handleOTPError(c, err, "RequestOTP")
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP sent successfully", resp)
}

// ResendOTP handles OTP resend requests, subject to a cooldown
func (h *AuthHandler) ResendOTP(c echo.Context) error {
	var req models.RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.PhoneNumber == "" {
		return utils.BadRequestResponse(c, "Phone number is required")
	}

	resp, err := h.authUC.ResendOTP(c.Request().Context(), req.PhoneNumber)
	if err != nil {
		return h.handleOTPError(c, err, "ResendOTP")
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP resent successfully", resp)
}

// VerifyOTP handles OTP verification and login
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.PhoneNumber == "" {
		return utils.BadRequestResponse(c, "Phone number is required")
	}

	resp, err := h.authUC.VerifyOTP(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidPhoneNumber):
			return utils.BadRequestResponse(c, "Invalid phone number")
		case errors.Is(err, auth.ErrMissingOTPCode):
			return utils.BadRequestResponse(c, "OTP code is required")
		case errors.Is(err, auth.ErrInvalidOTP):
			return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid or expired OTP", utils.CodeInvalidOTP)
		}
		logger.Error("OTP verification failed",
			logger.ErrorField(err),
			logger.String("endpoint", "VerifyOTP"),
		)
		return utils.InternalServerErrorResponse(c, "Failed to verify OTP")
	}

	message := "Login successful"
	if resp.IsNewUser {
		message = "Account created successfully"
	}
	return utils.SuccessResponse(c, http.StatusOK, message, resp)
}

// Refresh issues a new token pair from a valid refresh token
func (h *AuthHandler) Refresh(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(string)

	tokens, err := h.authUC.RefreshTokens(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return utils.UnauthorizedResponse(c, "User no longer exists", utils.CodeRefreshTokenInvalid)
		}
		logger.Error("Token refresh failed",
			logger.ErrorField(err),
			logger.String("user_id", userID),
		)
		return utils.InternalServerErrorResponse(c, "Failed to refresh tokens")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tokens refreshed successfully", tokens)
}

// Logout revokes the presented session, or all sessions for the user
// when the all=true query parameter is set
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(string)

	accessToken := middleware.ExtractBearerToken(c)
	if c.QueryParam("all") == "true" {
		accessToken = ""
	}

	if err := h.authUC.Logout(c.Request().Context(), userID, accessToken); err != nil {
		logger.Error("Logout failed",
			logger.ErrorField(err),
			logger.String("user_id", userID),
		)
		return utils.InternalServerErrorResponse(c, "Failed to log out")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(string)

	user, err := h.authUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		logger.Error("Profile retrieval failed",
			logger.ErrorField(err),
			logger.String("user_id", userID),
		)
		return utils.InternalServerErrorResponse(c, "Failed to retrieve profile")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", user)
}

// VerifyToken validates an access token for other services and
// returns its claims without touching the database
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	token := middleware.ExtractBearerToken(c)
	if token == "" {
		return utils.UnauthorizedResponse(c, "Authorization token required", utils.CodeNoToken)
	}

	claims, err := jwt.ValidateToken(token, models.TokenTypeAccess, h.cfg.JWT)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return utils.UnauthorizedResponse(c, "Token has expired", utils.CodeTokenExpired)
		case errors.Is(err, jwt.ErrWrongTokenType):
			return utils.UnauthorizedResponse(c, "Wrong token type", utils.CodeInvalidTokenType)
		}
		return utils.UnauthorizedResponse(c, "Invalid token", utils.CodeInvalidToken)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Token is valid", echo.Map{
		"user_id":      claims.UserID,
		"phone_number": claims.PhoneNumber,
		"role":         claims.Role,
		"expires_at":   claims.ExpiresAt.Time,
	})
}

func (h *AuthHandler) handleOTPError(c echo.Context, err error, endpoint string) error {
	switch {
	case errors.Is(err, auth.ErrInvalidPhoneNumber):
		return utils.BadRequestResponse(c, "Invalid phone number")
	case errors.Is(err, auth.ErrRateLimited):
		return utils.TooManyRequestsResponse(c, "OTP recently requested, please wait before retrying")
	}
	logger.Error("OTP request failed",
		logger.ErrorField(err),
		logger.String("endpoint", endpoint),
	)
	return utils.InternalServerErrorResponse(c, "Failed to send OTP")
}
