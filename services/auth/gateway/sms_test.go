package gateway

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendOTP_WithoutBroker(t *testing.T) {
	gw := NewSMSGW(nil)

	err := gw.SendOTP(context.Background(), "9876543210", "482913")

	assert.NoError(t, err)
}

func TestOTPMessage_Encoding(t *testing.T) {
	msg := OTPMessage{
		PhoneNumber: "9876543210",
		Code:        "482913",
		RequestedAt: "2025-01-02T15:04:05Z",
	}

	data, err := json.Marshal(msg)

	assert.NoError(t, err)
	assert.JSONEq(t, `{"phone_number":"9876543210","code":"482913","requested_at":"2025-01-02T15:04:05Z"}`, string(data))
}
