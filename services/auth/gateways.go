package auth

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/busbee/busbee-auth/services/auth NotificationGW

// NotificationGW is the boundary to the external notification
// collaborator that delivers OTP codes over SMS. Dispatch is
// best-effort: failures are logged by the caller and never fail the
// OTP request itself.
type NotificationGW interface {
	SendOTP(ctx context.Context, phoneNumber, code string) error
}
