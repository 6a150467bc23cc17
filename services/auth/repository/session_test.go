package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/busbee/busbee-auth/internal/pkg/models"
)

func TestCreateSession(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	mock.ExpectExec("^INSERT INTO user_sessions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.Session{
		UserID:      uuid.New(),
		AccessToken: "token-abc",
		DeviceInfo:  `{"platform":"android"}`,
		ExpiresAt:   time.Now().AddDate(0, 0, 30),
	}
	err := repo.CreateSession(context.Background(), session)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.True(t, session.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateAccessToken(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	mock.ExpectExec("^UPDATE user_sessions").
		WithArgs(userID, "new-token", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.RotateAccessToken(context.Background(), userID, "new-token")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeSessionByToken(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	mock.ExpectExec("^UPDATE user_sessions").
		WithArgs("token-abc", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RevokeSessionByToken(context.Background(), "token-abc")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeAllSessions(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	mock.ExpectExec("^UPDATE user_sessions").
		WithArgs(userID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.RevokeAllSessions(context.Background(), userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
