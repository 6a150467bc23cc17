package repository

import (
	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/jmoiron/sqlx"
)

// AuthRepo implements the authentication repository interface
type AuthRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewAuthRepo creates a new authentication repository instance
func NewAuthRepo(cfg *models.Config, db *sqlx.DB) *AuthRepo {
	return &AuthRepo{
		cfg: cfg,
		db:  db,
	}
}
