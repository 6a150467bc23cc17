package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/busbee/busbee-auth/internal/pkg/jwt"
	"github.com/busbee/busbee-auth/internal/pkg/logger"
	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/busbee/busbee-auth/internal/utils"
	"github.com/busbee/busbee-auth/services/auth"
	"github.com/google/uuid"
)

// RequestOTP generates a fresh login code for the phone number,
// supersedes any outstanding one, and dispatches it over SMS. Delivery
// is best-effort: a gateway failure is logged and the request still
// succeeds, since the code remains valid and can be resent.
func (uc *AuthUC) RequestOTP(ctx context.Context, phoneNumber string) (*models.RequestOTPResponse, error) {
	normalized, err := utils.ValidatePhoneNumber(phoneNumber)
	if err != nil {
		return nil, auth.ErrInvalidPhoneNumber
	}

	return uc.issueOTP(ctx, normalized)
}

// ResendOTP re-issues a login code, enforcing a cooldown since the
// last issuance so a client cannot hammer the SMS gateway.
func (uc *AuthUC) ResendOTP(ctx context.Context, phoneNumber string) (*models.RequestOTPResponse, error) {
	normalized, err := utils.ValidatePhoneNumber(phoneNumber)
	if err != nil {
		return nil, auth.ErrInvalidPhoneNumber
	}

	lastIssued, err := uc.repo.LatestOTPCreatedAt(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check otp history: %w", err)
	}
	if lastIssued != nil {
		cooldown := time.Duration(uc.cfg.OTP.ResendCooldownSeconds) * time.Second
		if models.Now().Sub(*lastIssued) < cooldown {
			return nil, auth.ErrRateLimited
		}
	}

	return uc.issueOTP(ctx, normalized)
}

func (uc *AuthUC) issueOTP(ctx context.Context, phoneNumber string) (*models.RequestOTPResponse, error) {
	code, err := utils.GenerateOTPCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp code: %w", err)
	}

	now := models.Now()
	otp := &models.OTP{
		ID:          uuid.New(),
		PhoneNumber: phoneNumber,
		Code:        code,
		Purpose:     models.OTPPurposeLogin,
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Duration(uc.cfg.OTP.TTLSeconds) * time.Second),
	}
	if err := uc.repo.ReplaceOTP(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}

	if err := uc.notifier.SendOTP(ctx, phoneNumber, code); err != nil {
		logger.Warn("OTP dispatch failed",
			logger.String("phone_number", utils.MaskPhoneNumber(phoneNumber)),
			logger.Err(err))
	}

	logger.Info("OTP issued",
		logger.String("phone_number", utils.MaskPhoneNumber(phoneNumber)))

	return &models.RequestOTPResponse{
		PhoneNumber: phoneNumber,
		ExpiresIn:   uc.cfg.OTP.TTLSeconds,
	}, nil
}

// VerifyOTP checks the submitted code and, on success, logs the user
// in: an account is created on first login, a token pair is minted and
// a session row is recorded for later revocation.
func (uc *AuthUC) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.LoginResponse, error) {
	normalized, err := utils.ValidatePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, auth.ErrInvalidPhoneNumber
	}
	if req.Code == "" {
		return nil, auth.ErrMissingOTPCode
	}

	if err := uc.verifier.Verify(ctx, normalized, req.Code); err != nil {
		return nil, err
	}

	user, err := uc.repo.GetUserByPhone(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	isNewUser := user == nil
	if isNewUser {
		user = newUserForPhone(normalized, req.Role)
		if err := uc.repo.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		logger.Info("new user registered",
			logger.String("user_id", user.ID.String()),
			logger.String("role", user.Role))
	} else if !user.IsVerified {
		if err := uc.repo.MarkUserVerified(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to mark user verified: %w", err)
		}
		user.IsVerified = true
	}

	tokens, err := jwt.GenerateTokenPair(user, uc.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := uc.createSession(ctx, user.ID, tokens.AccessToken, req.DeviceInfo); err != nil {
		return nil, err
	}

	logger.Info("user logged in",
		logger.String("user_id", user.ID.String()),
		logger.Bool("is_new_user", isNewUser))

	return &models.LoginResponse{
		User:      user,
		Tokens:    tokens,
		IsNewUser: isNewUser,
	}, nil
}

func (uc *AuthUC) createSession(ctx context.Context, userID uuid.UUID, accessToken string, deviceInfo map[string]string) error {
	var device string
	if len(deviceInfo) > 0 {
		raw, err := json.Marshal(deviceInfo)
		if err != nil {
			return fmt.Errorf("failed to encode device info: %w", err)
		}
		device = string(raw)
	}

	now := models.Now()
	session := &models.Session{
		ID:          uuid.New(),
		UserID:      userID,
		AccessToken: accessToken,
		DeviceInfo:  device,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.AddDate(0, 0, uc.cfg.OTP.SessionTTLDays),
	}
	if err := uc.repo.CreateSession(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// newUserForPhone builds a first-login account. The declared role is
// honored when it is a known one; anything else registers as a plain
// user.
func newUserForPhone(phoneNumber, role string) *models.User {
	if role != models.RoleBusOwner {
		role = models.RoleUser
	}

	name := "User"
	if role == models.RoleBusOwner {
		name = "Bus Owner"
	}

	now := models.Now()
	return &models.User{
		ID:          uuid.New(),
		PhoneNumber: phoneNumber,
		Name:        name,
		Role:        role,
		IsVerified:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
