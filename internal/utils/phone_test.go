package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneNumber(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "Plain 10-digit number",
			input:    "9876543210",
			expected: "9876543210",
		},
		{
			name:     "With country code prefix",
			input:    "+919876543210",
			expected: "9876543210",
		},
		{
			name:     "With bare country code",
			input:    "919876543210",
			expected: "9876543210",
		},
		{
			name:     "With trunk zero",
			input:    "09876543210",
			expected: "9876543210",
		},
		{
			name:     "With spaces and dashes",
			input:    "+91 98765-43210",
			expected: "9876543210",
		},
		{
			name:    "Too short",
			input:   "12345",
			wantErr: true,
		},
		{
			name:    "Invalid leading digit",
			input:   "1234567890",
			wantErr: true,
		},
		{
			name:    "Contains letters",
			input:   "98765abcde",
			wantErr: true,
		},
		{
			name:    "Empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Too long without country code",
			input:   "98765432101",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidatePhoneNumber(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Empty(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTPCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestMaskPhoneNumber(t *testing.T) {
	assert.Equal(t, "******3210", MaskPhoneNumber("9876543210"))
	assert.Equal(t, "********3210", MaskPhoneNumber("+91 98765 43210"))
	assert.Equal(t, "1234", MaskPhoneNumber("1234"))
	assert.Equal(t, "", MaskPhoneNumber(""))
}

func TestGenerateRandomHex(t *testing.T) {
	a, err := GenerateRandomHex(64)
	assert.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := GenerateRandomHex(64)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
