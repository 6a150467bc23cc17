package constants

// Redis key formats
const (
	// Rate Limiting
	KeyRateLimitOTP  = "rate:limit:otp"  // prefix for OTP endpoints
	KeyRateLimitAuth = "rate:limit:auth" // prefix for authenticated endpoints
)
