package auth

import (
	"context"

	"github.com/busbee/busbee-auth/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/busbee/busbee-auth/services/auth AuthUC

// AuthUC represents the authentication usecase interface
type AuthUC interface {
	// OTP lifecycle
	RequestOTP(ctx context.Context, phoneNumber string) (*models.RequestOTPResponse, error)
	ResendOTP(ctx context.Context, phoneNumber string) (*models.RequestOTPResponse, error)
	VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.LoginResponse, error)

	// Token and session lifecycle
	RefreshTokens(ctx context.Context, userID string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID, accessToken string) error

	// Profile
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}
