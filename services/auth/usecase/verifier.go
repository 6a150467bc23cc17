package usecase

import (
	"context"
	"fmt"

	"github.com/busbee/busbee-auth/internal/pkg/logger"
	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/busbee/busbee-auth/internal/utils"
	"github.com/busbee/busbee-auth/services/auth"
)

// StoreChallengeVerifier validates submitted codes against the OTP
// store. A code verifies at most once: matching marks it used inside
// the same call.
type StoreChallengeVerifier struct {
	repo auth.AuthRepo
}

// NewStoreChallengeVerifier creates a verifier backed by the OTP repository
func NewStoreChallengeVerifier(repo auth.AuthRepo) *StoreChallengeVerifier {
	return &StoreChallengeVerifier{repo: repo}
}

// BypassChallengeVerifier accepts a fixed code before delegating to
// the wrapped verifier. Wired only in non-production environments so
// app-store reviewers can log in without SMS delivery.
type BypassChallengeVerifier struct {
	code string
	next auth.ChallengeVerifier
}

// NewBypassChallengeVerifier wraps next with a fixed accepted code
func NewBypassChallengeVerifier(code string, next auth.ChallengeVerifier) *BypassChallengeVerifier {
	return &BypassChallengeVerifier{code: code, next: next}
}

// Verify accepts the bypass code outright, otherwise delegates
func (v *BypassChallengeVerifier) Verify(ctx context.Context, phoneNumber, code string) error {
	if code == v.code {
		logger.Warn("bypass code accepted",
			logger.String("phone_number", utils.MaskPhoneNumber(phoneNumber)))
		return nil
	}
	return v.next.Verify(ctx, phoneNumber, code)
}

// Verify checks the code against the latest unused OTP for the phone
// number. Expiry is checked here rather than in the query so a stale
// row and a wrong code are indistinguishable to the caller.
func (v *StoreChallengeVerifier) Verify(ctx context.Context, phoneNumber, code string) error {
	otp, err := v.repo.GetActiveOTP(ctx, phoneNumber, models.OTPPurposeLogin)
	if err != nil {
		return fmt.Errorf("failed to load otp: %w", err)
	}
	if otp == nil || models.Now().After(otp.ExpiresAt) || otp.Code != code {
		return auth.ErrInvalidOTP
	}

	if err := v.repo.MarkOTPUsed(ctx, otp.ID); err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}

	logger.Info("OTP verified",
		logger.String("phone_number", utils.MaskPhoneNumber(phoneNumber)))
	return nil
}
