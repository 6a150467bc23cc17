package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// phonePattern matches a 10-digit Indian mobile subscriber number:
// leading digit 6-9 followed by nine more digits.
var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// ValidatePhoneNumber validates a phone number and returns its
// normalized 10-digit form. Separators and the country code prefix
// (+91 / 91 / leading 0) are stripped before validation.
func ValidatePhoneNumber(phoneNumber string) (string, error) {
	// Clean the input by removing any separator characters
	stripped := strings.ReplaceAll(phoneNumber, "-", "")
	stripped = strings.ReplaceAll(stripped, " ", "")
	stripped = strings.ReplaceAll(stripped, "+", "")

	// Remove country code or trunk prefix if present
	if strings.HasPrefix(stripped, "91") && len(stripped) == 12 {
		stripped = stripped[2:]
	} else if strings.HasPrefix(stripped, "0") && len(stripped) == 11 {
		stripped = stripped[1:]
	}

	if !phonePattern.MatchString(stripped) {
		return "", fmt.Errorf("invalid phone number: must be a 10-digit mobile number")
	}

	return stripped, nil
}

// GenerateOTPCode generates a uniformly random 6-digit passcode in the
// range [100000, 999999]. Leading-zero codes are excluded so the code
// survives clients that parse it as a number.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
