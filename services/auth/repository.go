package auth

import (
	"context"
	"time"

	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/busbee/busbee-auth/services/auth AuthRepo

// AuthRepo represents the authentication repository interface
type AuthRepo interface {
	// OTP records. ReplaceOTP invalidates any unused codes for the
	// phone number and inserts the new one in a single transaction.
	ReplaceOTP(ctx context.Context, otp *models.OTP) error
	GetActiveOTP(ctx context.Context, phoneNumber, purpose string) (*models.OTP, error)
	LatestOTPCreatedAt(ctx context.Context, phoneNumber string) (*time.Time, error)
	MarkOTPUsed(ctx context.Context, id uuid.UUID) error

	// Users
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	MarkUserVerified(ctx context.Context, id uuid.UUID) error

	// Sessions
	CreateSession(ctx context.Context, session *models.Session) error
	RotateAccessToken(ctx context.Context, userID uuid.UUID, newAccessToken string) error
	RevokeSessionByToken(ctx context.Context, accessToken string) error
	RevokeAllSessions(ctx context.Context, userID uuid.UUID) error
}
