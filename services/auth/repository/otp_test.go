package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busbee/busbee-auth/internal/pkg/models"
)

func setupAuthRepoTest(t *testing.T) (*AuthRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	repo := &AuthRepo{
		db:  sqlxDB,
		cfg: &models.Config{},
	}

	cleanup := func() {
		sqlxDB.Close()
	}

	return repo, mock, cleanup
}

func TestReplaceOTP(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	otp := &models.OTP{
		ID:          uuid.New(),
		PhoneNumber: "9876543210",
		Code:        "482913",
		Purpose:     models.OTPPurposeLogin,
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(2 * time.Minute),
	}

	mock.ExpectBegin()
	mock.ExpectExec("^DELETE FROM otps WHERE phone_number").
		WithArgs(otp.PhoneNumber, otp.Purpose).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("^INSERT INTO otps").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.ReplaceOTP(context.Background(), otp)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceOTP_InsertFails(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	otp := &models.OTP{
		ID:          uuid.New(),
		PhoneNumber: "9876543210",
		Code:        "482913",
		Purpose:     models.OTPPurposeLogin,
	}

	mock.ExpectBegin()
	mock.ExpectExec("^DELETE FROM otps WHERE phone_number").
		WithArgs(otp.PhoneNumber, otp.Purpose).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("^INSERT INTO otps").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.ReplaceOTP(context.Background(), otp)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveOTP(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	otpID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "phone_number", "code", "purpose", "is_used", "created_at", "expires_at"}).
		AddRow(otpID, "9876543210", "482913", "login", false, now, now.Add(2*time.Minute))
	mock.ExpectQuery("^SELECT (.+) FROM otps").
		WithArgs("9876543210", "login").
		WillReturnRows(rows)

	otp, err := repo.GetActiveOTP(context.Background(), "9876543210", "login")

	assert.NoError(t, err)
	require.NotNil(t, otp)
	assert.Equal(t, otpID, otp.ID)
	assert.Equal(t, "482913", otp.Code)
	assert.False(t, otp.IsUsed)
}

func TestGetActiveOTP_NotFound(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("^SELECT (.+) FROM otps").
		WithArgs("9876543210", "login").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	otp, err := repo.GetActiveOTP(context.Background(), "9876543210", "login")

	assert.NoError(t, err)
	assert.Nil(t, otp)
}

func TestLatestOTPCreatedAt(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	issued := time.Now().Add(-10 * time.Second)
	mock.ExpectQuery("^SELECT created_at FROM otps").
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(issued))

	got, err := repo.LatestOTPCreatedAt(context.Background(), "9876543210")

	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.WithinDuration(t, issued, *got, time.Second)
}

func TestLatestOTPCreatedAt_NoHistory(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("^SELECT created_at FROM otps").
		WithArgs("9876543210").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))

	got, err := repo.LatestOTPCreatedAt(context.Background(), "9876543210")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMarkOTPUsed(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	otpID := uuid.New()
	mock.ExpectExec("^UPDATE otps SET is_used").
		WithArgs(otpID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkOTPUsed(context.Background(), otpID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
