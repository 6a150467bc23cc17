package usecase

import (
	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/busbee/busbee-auth/services/auth"
)

// AuthUC implements the authentication usecase
type AuthUC struct {
	repo     auth.AuthRepo
	notifier auth.NotificationGW
	verifier auth.ChallengeVerifier
	cfg      *models.Config
}

// NewAuthUC creates a new authentication usecase instance
func NewAuthUC(
	repo auth.AuthRepo,
	notifier auth.NotificationGW,
	verifier auth.ChallengeVerifier,
	cfg *models.Config,
) *AuthUC {
	return &AuthUC{
		repo:     repo,
		notifier: notifier,
		verifier: verifier,
		cfg:      cfg,
	}
}
