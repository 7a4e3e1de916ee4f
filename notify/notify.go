// Package notify delivers one-time passcodes over email and SMS.
// Providers are external collaborators; handlers only see the Sender
// interface.
package notify

import (
	"log"

	"cloud-kitchen-api/models"
)

// Sender delivers an OTP code to a target over one channel. A failed
// delivery propagates as a hard error to the caller.
type Sender interface {
	SendOTP(to, code string, purpose models.OTPPurpose) error
}

// isSignup collapses the four purposes onto the two message templates.
func isSignup(p models.OTPPurpose) bool {
	return p == models.OTPSignup || p == models.OTPAdminSignup
}

// LogSender writes codes to the process log instead of delivering them.
// Used in development when no provider is configured, and in tests.
type LogSender struct {
	Channel string
}

func (s *LogSender) SendOTP(to, code string, purpose models.OTPPurpose) error {
	log.Printf("[%s OTP] to=%s purpose=%s code=%s", s.Channel, to, purpose, code)
	return nil
}
