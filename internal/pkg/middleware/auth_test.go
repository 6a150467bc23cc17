package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtpkg "github.com/busbee/busbee-auth/internal/pkg/jwt"
	"github.com/busbee/busbee-auth/internal/pkg/models"
)

func testJWTConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:            "test-secret",
		AccessExpiration:  60,
		RefreshExpiration: 120,
		Issuer:            "busbee-api",
		Audience:          "busbee-app",
	}
}

func issueTokens(t *testing.T, role string) (*models.User, *models.TokenPair) {
	t.Helper()
	user := &models.User{
		ID:          uuid.New(),
		PhoneNumber: "9876543210",
		Role:        role,
	}
	pair, err := jwtpkg.GenerateTokenPair(user, testJWTConfig())
	require.NoError(t, err)
	return user, pair
}

func runMiddleware(mw echo.MiddlewareFunc, authHeader string, setup ...func(echo.Context)) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for _, fn := range setup {
		fn(c)
	}

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, c, err
}

func responseCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

func TestExtractBearerToken(t *testing.T) {
	testCases := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "Valid header", header: "Bearer abc123", expected: "abc123"},
		{name: "Missing header", header: "", expected: ""},
		{name: "Wrong scheme", header: "Basic abc123", expected: ""},
		{name: "No token", header: "Bearer", expected: ""},
		{name: "Extra parts", header: "Bearer abc 123", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			assert.Equal(t, tc.expected, ExtractBearerToken(c))
		})
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	user, pair := issueTokens(t, models.RoleUser)

	rec, c, err := runMiddleware(RequireAuth(testJWTConfig()), "Bearer "+pair.AccessToken)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID.String(), c.Get(ContextUserID))
	assert.Equal(t, "9876543210", c.Get(ContextPhoneNumber))
	assert.Equal(t, models.RoleUser, c.Get(ContextRole))
}

func TestRequireAuth_MissingToken(t *testing.T) {
	rec, _, err := runMiddleware(RequireAuth(testJWTConfig()), "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "NO_TOKEN", responseCode(t, rec))
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	_, pair := issueTokens(t, models.RoleUser)

	rec, _, err := runMiddleware(RequireAuth(testJWTConfig()), "Bearer "+pair.RefreshToken)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN_TYPE", responseCode(t, rec))
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	rec, _, err := runMiddleware(RequireAuth(testJWTConfig()), "Bearer not.a.token")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", responseCode(t, rec))
}

func TestOptionalAuth_AttachesIdentityWhenPresent(t *testing.T) {
	user, pair := issueTokens(t, models.RoleUser)

	rec, c, err := runMiddleware(OptionalAuth(testJWTConfig()), "Bearer "+pair.AccessToken)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID.String(), c.Get(ContextUserID))
}

func TestOptionalAuth_PassesThroughWithoutToken(t *testing.T) {
	rec, c, err := runMiddleware(OptionalAuth(testJWTConfig()), "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get(ContextUserID))
}

func TestOptionalAuth_PassesThroughWithBadToken(t *testing.T) {
	rec, c, err := runMiddleware(OptionalAuth(testJWTConfig()), "Bearer garbage")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get(ContextUserID))
}

func TestRequireRefreshToken_ValidToken(t *testing.T) {
	user, pair := issueTokens(t, models.RoleUser)

	rec, c, err := runMiddleware(RequireRefreshToken(testJWTConfig()), "Bearer "+pair.RefreshToken)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID.String(), c.Get(ContextUserID))
	assert.Nil(t, c.Get(ContextRole))
}

func TestRequireRefreshToken_AccessTokenRejected(t *testing.T) {
	_, pair := issueTokens(t, models.RoleUser)

	rec, _, err := runMiddleware(RequireRefreshToken(testJWTConfig()), "Bearer "+pair.AccessToken)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "REFRESH_TOKEN_INVALID", responseCode(t, rec))
}

func TestRequireRefreshToken_MissingToken(t *testing.T) {
	rec, _, err := runMiddleware(RequireRefreshToken(testJWTConfig()), "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "NO_REFRESH_TOKEN", responseCode(t, rec))
}

func TestRequireRole_Allowed(t *testing.T) {
	rec, _, err := runMiddleware(RequireRole(models.RoleBusOwner), "", func(c echo.Context) {
		c.Set(ContextRole, models.RoleBusOwner)
	})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	rec, _, err := runMiddleware(RequireRole(models.RoleBusOwner), "", func(c echo.Context) {
		c.Set(ContextRole, models.RoleUser)
	})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", body["code"])
	assert.Equal(t, models.RoleUser, body["current"])
}

func TestRequireRole_NoIdentity(t *testing.T) {
	rec, _, err := runMiddleware(RequireRole(models.RoleBusOwner), "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "NO_AUTH", responseCode(t, rec))
}
