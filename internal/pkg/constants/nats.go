package constants

// NATS Subjects
const (
	// Notification collaborator: OTP codes to be delivered over SMS
	SubjectNotificationSMSOTP = "notifications.sms.otp"
)
