package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticChallengeVerifier(t *testing.T) {
	verifier := NewStaticChallengeVerifier("123456")

	assert.NoError(t, verifier.Verify(context.Background(), "9876543210", "123456"))
	assert.ErrorIs(t, verifier.Verify(context.Background(), "9876543210", "654321"), ErrInvalidOTP)
}
