package auth

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_verifier.go -package=mocks github.com/busbee/busbee-auth/services/auth ChallengeVerifier

// ChallengeVerifier checks a submitted passcode against the current
// challenge for a phone number. The production implementation consults
// the OTP store; a static-code double exists for non-production
// environments so builds cannot accidentally ship a bypass literal in
// the verification path.
type ChallengeVerifier interface {
	Verify(ctx context.Context, phoneNumber, code string) error
}

// StaticChallengeVerifier accepts a single fixed code. Intended for
// local and staging environments only.
type StaticChallengeVerifier struct {
	code string
}

// NewStaticChallengeVerifier creates a verifier that accepts only the
// given code
func NewStaticChallengeVerifier(code string) *StaticChallengeVerifier {
	return &StaticChallengeVerifier{code: code}
}

// Verify compares the submitted code against the fixed one
func (v *StaticChallengeVerifier) Verify(_ context.Context, _ string, code string) error {
	if code != v.code {
		return ErrInvalidOTP
	}
	return nil
}
