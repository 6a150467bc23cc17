package models

// Token types embedded in the "type" claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenPair represents an access/refresh token pair. Derived from a
// user and never persisted as a row; the session keeps only the access
// token string as a revocation handle.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // always "Bearer"
	ExpiresIn    int64  `json:"expires_in"` // access token validity in seconds
}
