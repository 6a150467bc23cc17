package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/google/uuid"
)

// ReplaceOTP invalidates any unused OTP rows for the phone number and
// inserts the new one. Both statements run in one transaction so two
// near-simultaneous requests cannot leave two valid-looking codes.
func (r *AuthRepo) ReplaceOTP(ctx context.Context, otp *models.OTP) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM otps WHERE phone_number = $1 AND purpose = $2 AND is_used = FALSE`,
		otp.PhoneNumber, otp.Purpose,
	)
	if err != nil {
		return fmt.Errorf("failed to invalidate previous OTPs: %w", err)
	}

	query := `
		INSERT INTO otps (id, phone_number, code, purpose, is_used, created_at, expires_at)
		VALUES (:id, :phone_number, :code, :purpose, :is_used, :created_at, :expires_at)
	`
	_, err = tx.NamedExecContext(ctx, query, otp)
	if err != nil {
		return fmt.Errorf("failed to create OTP: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetActiveOTP retrieves the most recent unused OTP for a phone number.
// Expiry is not filtered here; the caller compares timestamps at
// verification time.
func (r *AuthRepo) GetActiveOTP(ctx context.Context, phoneNumber, purpose string) (*models.OTP, error) {
	query := `
		SELECT id, phone_number, code, purpose, is_used, created_at, expires_at
		FROM otps
		WHERE phone_number = $1 AND purpose = $2 AND is_used = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp models.OTP
	err := r.db.GetContext(ctx, &otp, query, phoneNumber, purpose)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get OTP: %w", err)
	}

	return &otp, nil
}

// LatestOTPCreatedAt returns the creation time of the most recent OTP
// for a phone number of any used-state, or nil when none exists. Used
// by the resend cooldown check.
func (r *AuthRepo) LatestOTPCreatedAt(ctx context.Context, phoneNumber string) (*time.Time, error) {
	query := `
		SELECT created_at FROM otps
		WHERE phone_number = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var createdAt time.Time
	err := r.db.GetContext(ctx, &createdAt, query, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest OTP timestamp: %w", err)
	}

	return &createdAt, nil
}

// MarkOTPUsed marks an OTP as used so it cannot be replayed
func (r *AuthRepo) MarkOTPUsed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE otps SET is_used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark OTP as used: %w", err)
	}

	return nil
}
