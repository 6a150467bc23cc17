package jwt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busbee/busbee-auth/internal/pkg/models"
)

func testJWTConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:            "test-secret",
		AccessExpiration:  7 * 24 * 60,
		RefreshExpiration: 30 * 24 * 60,
		Issuer:            "busbee-api",
		Audience:          "busbee-app",
	}
}

func testUser() *models.User {
	return &models.User{
		ID:          uuid.New(),
		PhoneNumber: "9876543210",
		Name:        "Asha",
		Role:        models.RoleBusOwner,
		IsVerified:  true,
	}
}

func TestGenerateTokenPair(t *testing.T) {
	cfg := testJWTConfig()
	user := testUser()

	pair, err := GenerateTokenPair(user, cfg)

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(7*24*60*60), pair.ExpiresIn)
}

func TestValidateToken_AccessToken(t *testing.T) {
	cfg := testJWTConfig()
	user := testUser()
	pair, err := GenerateTokenPair(user, cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(pair.AccessToken, models.TokenTypeAccess, cfg)

	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.PhoneNumber, claims.PhoneNumber)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, models.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "busbee-api", claims.Issuer)
}

func TestValidateToken_RefreshTokenHasNoRole(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := GenerateTokenPair(testUser(), cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(pair.RefreshToken, models.TokenTypeRefresh, cfg)

	require.NoError(t, err)
	assert.Empty(t, claims.Role)
	assert.Equal(t, models.TokenTypeRefresh, claims.TokenType)
}

func TestValidateToken_WrongType(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := GenerateTokenPair(testUser(), cfg)
	require.NoError(t, err)

	// A refresh token must not pass as an access token and vice versa
	_, err = ValidateToken(pair.RefreshToken, models.TokenTypeAccess, cfg)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = ValidateToken(pair.AccessToken, models.TokenTypeRefresh, cfg)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := GenerateTokenPair(testUser(), cfg)
	require.NoError(t, err)

	otherCfg := cfg
	otherCfg.Secret = "another-secret"
	_, err = ValidateToken(pair.AccessToken, models.TokenTypeAccess, otherCfg)

	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiration = -1
	pair, err := GenerateTokenPair(testUser(), cfg)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, models.TokenTypeAccess, cfg)

	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := GenerateTokenPair(testUser(), cfg)
	require.NoError(t, err)

	otherCfg := cfg
	otherCfg.Issuer = "someone-else"
	_, err = ValidateToken(pair.AccessToken, models.TokenTypeAccess, otherCfg)

	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := GenerateTokenPair(testUser(), cfg)
	require.NoError(t, err)

	otherCfg := cfg
	otherCfg.Audience = "other-app"
	_, err = ValidateToken(pair.AccessToken, models.TokenTypeAccess, otherCfg)

	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_Garbage(t *testing.T) {
	cfg := testJWTConfig()

	_, err := ValidateToken("not.a.token", models.TokenTypeAccess, cfg)

	assert.ErrorIs(t, err, ErrTokenInvalid)
}
