package models

import (
	"time"

	"github.com/google/uuid"
)

// OTP purposes. Only login is issued today; the column exists so new
// flows (e.g. phone-number change) can reuse the same table.
const (
	OTPPurposeLogin = "login"
)

// OTP represents a one-time passcode for phone number verification.
// At most one unused, unexpired row exists per (phone_number, purpose);
// requesting a new code supersedes any prior unused rows.
type OTP struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Code        string    `json:"code" db:"code"`
	Purpose     string    `json:"purpose" db:"purpose"`
	IsUsed      bool      `json:"is_used" db:"is_used"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" db:"expires_at"`
}

// RequestOTPRequest represents a request to send an OTP
type RequestOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Role        string `json:"user_type"`
}

// VerifyOTPRequest represents a request to verify an OTP
type VerifyOTPRequest struct {
	PhoneNumber string            `json:"phone_number" validate:"required"`
	Code        string            `json:"otp" validate:"required"`
	Role        string            `json:"user_type"`
	DeviceInfo  map[string]string `json:"device_info"`
}

// RequestOTPResponse represents the response after an OTP was dispatched
type RequestOTPResponse struct {
	PhoneNumber string `json:"phone_number"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}
