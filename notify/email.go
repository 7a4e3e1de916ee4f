package notify

import (
	"fmt"
	"net/smtp"
	"os"

	"cloud-kitchen-api/models"
)

// EmailSender delivers OTP codes over SMTP.
type EmailSender struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// EmailFromEnv builds an email sender from EMAIL_* env vars, falling
// back to a log sender when no credentials are configured.
func EmailFromEnv() Sender {
	user := os.Getenv("EMAIL_USER")
	pass := os.Getenv("EMAIL_PASS")
	if user == "" || pass == "" {
		return &LogSender{Channel: "email"}
	}
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &EmailSender{Host: host, Port: port, User: user, Pass: pass, From: user}
}

func (s *EmailSender) SendOTP(to, code string, purpose models.OTPPurpose) error {
	subject := "Reset your Stones & Spices password"
	intro := "Use the OTP below to reset your password."
	if isSignup(purpose) {
		subject = "Verify your Stones & Spices account"
		intro = "Welcome to Stones & Spices! Use the OTP below to verify your account."
	}

	body := fmt.Sprintf(
		"From: Stones & Spices <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n\r\nYour OTP is: %s\r\nIt expires in 10 minutes. Do not share it with anyone.\r\n",
		s.From, to, subject, intro, code)

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	return smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{to}, []byte(body))
}
