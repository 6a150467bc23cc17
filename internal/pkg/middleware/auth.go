package middleware

import (
	"errors"
	"strings"

	jwtpkg "github.com/busbee/busbee-auth/internal/pkg/jwt"
	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/busbee/busbee-auth/internal/utils"
	"github.com/labstack/echo/v4"
)

// Echo context keys carrying the authenticated identity
const (
	ContextUserID      = "user_id"
	ContextPhoneNumber = "phone_number"
	ContextRole        = "role"
)

// ExtractBearerToken pulls the token out of the Authorization header.
// The header must be exactly "Bearer <token>"; anything else yields "".
func ExtractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// RequireAuth creates middleware that rejects requests without a valid
// access token. On success the identity claims are attached to the
// request context.
func RequireAuth(cfg models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractBearerToken(c)
			if token == "" {
				return utils.UnauthorizedResponse(c, "Access token required", utils.CodeNoToken)
			}

			claims, err := jwtpkg.ValidateToken(token, models.TokenTypeAccess, cfg)
			if err != nil {
				switch {
				case errors.Is(err, jwtpkg.ErrTokenExpired):
					return utils.UnauthorizedResponse(c, "Token has expired", utils.CodeTokenExpired)
				case errors.Is(err, jwtpkg.ErrWrongTokenType):
					return utils.UnauthorizedResponse(c, "Invalid token type", utils.CodeInvalidTokenType)
				case errors.Is(err, jwtpkg.ErrTokenInvalid):
					return utils.UnauthorizedResponse(c, "Invalid token", utils.CodeInvalidToken)
				default:
					return utils.UnauthorizedResponse(c, "Authentication failed", utils.CodeAuthFailed)
				}
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextPhoneNumber, claims.PhoneNumber)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}

// OptionalAuth creates middleware that attaches the identity when a
// valid access token is present but never rejects the request.
func OptionalAuth(cfg models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractBearerToken(c)
			if token != "" {
				if claims, err := jwtpkg.ValidateToken(token, models.TokenTypeAccess, cfg); err == nil {
					c.Set(ContextUserID, claims.UserID)
					c.Set(ContextPhoneNumber, claims.PhoneNumber)
					c.Set(ContextRole, claims.Role)
				}
			}

			return next(c)
		}
	}
}

// RequireRefreshToken creates middleware for the token refresh endpoint.
// Refresh tokens carry no role claim, so only user ID and phone number
// are attached.
func RequireRefreshToken(cfg models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractBearerToken(c)
			if token == "" {
				return utils.UnauthorizedResponse(c, "Refresh token required", utils.CodeNoRefreshToken)
			}

			claims, err := jwtpkg.ValidateToken(token, models.TokenTypeRefresh, cfg)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid refresh token", utils.CodeRefreshTokenInvalid)
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextPhoneNumber, claims.PhoneNumber)

			return next(c)
		}
	}
}

// RequireRole creates middleware that rejects requests whose identity
// role is not in the allowed set. Must run after RequireAuth.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextRole).(string)
			if !ok || role == "" {
				return utils.UnauthorizedResponse(c, "Authentication required", utils.CodeNoAuth)
			}

			for _, allowed := range allowedRoles {
				if role == allowed {
					return next(c)
				}
			}

			return utils.ForbiddenResponse(c, "Insufficient permissions", allowedRoles, role)
		}
	}
}
