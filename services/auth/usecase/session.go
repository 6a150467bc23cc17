package usecase

import (
	"context"
	"fmt"

	"github.com/busbee/busbee-auth/internal/pkg/jwt"
	"github.com/busbee/busbee-auth/internal/pkg/logger"
	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/busbee/busbee-auth/services/auth"
	"github.com/google/uuid"
)

// RefreshTokens mints a new token pair for the user identified by a
// valid refresh token. Claims are re-read from the user row so a role
// change since the refresh token was issued lands in the new access
// token. Active sessions are rotated onto the new access token.
func (uc *AuthUC) RefreshTokens(ctx context.Context, userID string) (*models.TokenPair, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, auth.ErrUserNotFound
	}

	user, err := uc.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tokens, err := jwt.GenerateTokenPair(user, uc.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := uc.repo.RotateAccessToken(ctx, id, tokens.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	logger.Info("tokens refreshed", logger.String("user_id", userID))
	return tokens, nil
}

// Logout revokes the session carrying the presented access token, or
// every active session for the user when no token was presented.
// Revocation is advisory: an already-issued token stays
// cryptographically valid until its expiry.
func (uc *AuthUC) Logout(ctx context.Context, userID, accessToken string) error {
	if accessToken != "" {
		if err := uc.repo.RevokeSessionByToken(ctx, accessToken); err != nil {
			return fmt.Errorf("failed to revoke session: %w", err)
		}
	} else {
		id, err := uuid.Parse(userID)
		if err != nil {
			return auth.ErrUserNotFound
		}
		if err := uc.repo.RevokeAllSessions(ctx, id); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
	}

	logger.Info("user logged out", logger.String("user_id", userID))
	return nil
}

// GetProfile returns the account for an authenticated user
func (uc *AuthUC) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, auth.ErrUserNotFound
	}
	return uc.repo.GetUserByID(ctx, id)
}
