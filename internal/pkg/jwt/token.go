package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/busbee/busbee-auth/internal/pkg/models"
	"github.com/golang-jwt/jwt/v4"
)

// Verification failures. Revocation is not checked here: token validity
// is purely cryptographic, session state is consulted by the logout
// paths one layer up.
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims represents the registered JWT claims plus our custom fields
type Claims struct {
	UserID      string `json:"user_id"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role,omitempty"`
	TokenType   string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateTokenPair mints an access/refresh token pair for the given
// user. Access tokens carry the role; refresh tokens deliberately do
// not, so a stolen refresh token cannot be replayed as an access token.
func GenerateTokenPair(user *models.User, cfg models.JWTConfig) (*models.TokenPair, error) {
	now := time.Now()
	accessTTL := time.Duration(cfg.AccessExpiration) * time.Minute
	refreshTTL := time.Duration(cfg.RefreshExpiration) * time.Minute

	accessToken, err := signToken(Claims{
		UserID:      user.ID.String(),
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		TokenType:   models.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
		},
	}, cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := signToken(Claims{
		UserID:      user.ID.String(),
		PhoneNumber: user.PhoneNumber,
		TokenType:   models.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL)),
		},
	}, cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTTL.Seconds()),
	}, nil
}

func signToken(claims Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken verifies a token's signature, expiry, issuer, audience
// and type claim, and returns its claims. Verification is stateless.
func ValidateToken(tokenString, expectedType string, cfg models.JWTConfig) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	if !claims.VerifyIssuer(cfg.Issuer, true) {
		return nil, ErrTokenInvalid
	}
	if !claims.VerifyAudience(cfg.Audience, true) {
		return nil, ErrTokenInvalid
	}

	if claims.TokenType != expectedType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
