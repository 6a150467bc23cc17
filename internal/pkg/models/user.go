package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. The role is fixed at registration from the request's
// declared intent and is not silently changed afterwards.
const (
	RoleUser     = "user"
	RoleBusOwner = "bus_owner"
)

// User represents an account keyed by phone number (passenger or bus owner)
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email,omitempty" db:"email"`
	Role        string    `json:"role" db:"role"`
	IsVerified  bool      `json:"is_verified" db:"is_verified"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// LoginResponse represents the response after successful OTP verification
type LoginResponse struct {
	User      *User      `json:"user"`
	Tokens    *TokenPair `json:"tokens"`
	IsNewUser bool       `json:"is_new_user"`
}
