package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud-kitchen-api/models"
)

// SMSSender delivers OTP codes through the Twilio messages API.
type SMSSender struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	Client     *http.Client
}

// SMSFromEnv builds an SMS sender from TWILIO_* env vars, falling back
// to a log sender when the provider is not connected.
func SMSFromEnv() Sender {
	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_FROM_NUMBER")
	if sid == "" || token == "" || from == "" {
		return &LogSender{Channel: "sms"}
	}
	return &SMSSender{
		AccountSID: sid,
		AuthToken:  token,
		FromNumber: from,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SMSSender) SendOTP(to, code string, purpose models.OTPPurpose) error {
	msg := fmt.Sprintf("Your Stones & Spices password reset OTP is: %s. Valid for 10 minutes.", code)
	if isSignup(purpose) {
		msg = fmt.Sprintf("Your Stones & Spices account verification OTP is: %s. Valid for 10 minutes.", code)
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.FromNumber)
	form.Set("Body", msg)

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.AccountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.AccountSID, s.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio: unexpected status %d", resp.StatusCode)
	}
	return nil
}
