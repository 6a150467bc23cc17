package auth

import "errors"

// Domain failures surfaced by the usecase layer. Handlers map these to
// HTTP statuses and machine-readable codes; anything else becomes a
// generic server error with the detail kept in the server log.
var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrMissingOTPCode     = errors.New("otp code is required")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrRateLimited        = errors.New("otp recently requested, retry later")
	ErrUserNotFound       = errors.New("user not found")
)
