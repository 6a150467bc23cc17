package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a durable record of an issued token pair, used as a
// revocation handle by the logout paths. Token validity itself is
// cryptographic; a session row going inactive does not invalidate the
// token before its natural expiry unless the logout path matched it.
type Session struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	AccessToken string    `json:"-" db:"access_token"`
	DeviceInfo  string    `json:"device_info,omitempty" db:"device_info"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	ExpiresAt   time.Time `json:"expires_at" db:"expires_at"`
}
