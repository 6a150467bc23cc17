package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/busbee/busbee-auth/internal/pkg/constants"
	"github.com/busbee/busbee-auth/internal/pkg/logger"
	"github.com/busbee/busbee-auth/internal/pkg/models"
	natspkg "github.com/busbee/busbee-auth/internal/pkg/nats"
	"github.com/busbee/busbee-auth/internal/utils"
)

// OTPMessage is the payload published for the SMS worker
type OTPMessage struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
	RequestedAt string `json:"requested_at"`
}

// SMSGW publishes OTP delivery requests to the notification stream.
// When no NATS connection is configured the gateway degrades to
// logging the masked request, which keeps local development working
// without a broker.
type SMSGW struct {
	client *natspkg.Client
}

// NewSMSGW creates a new SMS gateway. client may be nil.
func NewSMSGW(client *natspkg.Client) *SMSGW {
	return &SMSGW{client: client}
}

// SendOTP hands the code off to the notification stream
func (g *SMSGW) SendOTP(_ context.Context, phoneNumber, code string) error {
	if g.client == nil {
		logger.Info("SMS gateway not configured, skipping dispatch",
			logger.String("phone_number", utils.MaskPhoneNumber(phoneNumber)))
		return nil
	}

	msg := OTPMessage{
		PhoneNumber: phoneNumber,
		Code:        code,
		RequestedAt: models.FormatTime(models.Now()),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode otp message: %w", err)
	}

	if err := g.client.Publish(constants.SubjectNotificationSMSOTP, data); err != nil {
		return fmt.Errorf("failed to publish otp message: %w", err)
	}

	logger.Info("OTP dispatch published",
		logger.String("phone_number", utils.MaskPhoneNumber(phoneNumber)),
		logger.String("subject", constants.SubjectNotificationSMSOTP))
	return nil
}
