package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/busbee/busbee-auth/services/auth"
)

func userColumns() []string {
	return []string{"id", "phone_number", "name", "email", "role", "is_verified", "created_at", "updated_at"}
}

func TestGetUserByPhone(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(userColumns()).
		AddRow(userID, "9876543210", "Asha", "", "user", true, now, now)
	mock.ExpectQuery("^SELECT (.+) FROM users WHERE phone_number").
		WithArgs("9876543210").
		WillReturnRows(rows)

	user, err := repo.GetUserByPhone(context.Background(), "9876543210")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsVerified)
}

func TestGetUserByPhone_NotRegistered(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("^SELECT (.+) FROM users WHERE phone_number").
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	user, err := repo.GetUserByPhone(context.Background(), "9876543210")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetUserByID(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(userColumns()).
		AddRow(userID, "9876543210", "Bus Owner", "", "bus_owner", true, now, now)
	mock.ExpectQuery("^SELECT (.+) FROM users WHERE id").
		WithArgs(userID).
		WillReturnRows(rows)

	user, err := repo.GetUserByID(context.Background(), userID)

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleBusOwner, user.Role)
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	mock.ExpectQuery("^SELECT (.+) FROM users WHERE id").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	user, err := repo.GetUserByID(context.Background(), userID)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestCreateUser(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	mock.ExpectExec("^INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{
		PhoneNumber: "9876543210",
		Name:        "User",
		Role:        models.RoleUser,
		IsVerified:  true,
	}
	err := repo.CreateUser(context.Background(), user)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkUserVerified(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	mock.ExpectExec("^UPDATE users").
		WithArgs(userID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkUserVerified(context.Background(), userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
