package repository

import (
	"context"
	"fmt"

	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/google/uuid"
)

// CreateSession inserts a new session row. Multiple concurrent active
// sessions per user are legal; each device gets its own row.
func (r *AuthRepo) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	now := models.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	session.IsActive = true

	query := `
		INSERT INTO user_sessions (id, user_id, access_token, device_info, is_active, created_at, updated_at, expires_at)
		VALUES (:id, :user_id, :access_token, :device_info, :is_active, :created_at, :updated_at, :expires_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// RotateAccessToken rewrites the access token on the user's active
// sessions after a refresh
func (r *AuthRepo) RotateAccessToken(ctx context.Context, userID uuid.UUID, newAccessToken string) error {
	query := `
		UPDATE user_sessions
		SET access_token = $2, updated_at = $3
		WHERE user_id = $1 AND is_active = TRUE
	`
	_, err := r.db.ExecContext(ctx, query, userID, newAccessToken, models.Now())
	if err != nil {
		return fmt.Errorf("failed to rotate access token: %w", err)
	}

	return nil
}

// RevokeSessionByToken marks the single session holding the given
// access token inactive. Soft revocation only; rows are never deleted.
func (r *AuthRepo) RevokeSessionByToken(ctx context.Context, accessToken string) error {
	query := `
		UPDATE user_sessions
		SET is_active = FALSE, updated_at = $2
		WHERE access_token = $1
	`
	_, err := r.db.ExecContext(ctx, query, accessToken, models.Now())
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

// RevokeAllSessions marks every session for the user inactive. Used as
// the logout-everywhere fallback when no token accompanies the logout.
func (r *AuthRepo) RevokeAllSessions(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE user_sessions
		SET is_active = FALSE, updated_at = $2
		WHERE user_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, userID, models.Now())
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}
