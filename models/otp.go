package models

import "time"

// OTPPurpose scopes a code to the flow that requested it
type OTPPurpose string

const (
	OTPSignup      OTPPurpose = "signup"
	OTPReset       OTPPurpose = "reset"
	OTPAdminSignup OTPPurpose = "admin_signup"
	OTPAdminReset  OTPPurpose = "admin_reset"
)

// OTPTargetType says which delivery channel the target identifies
type OTPTargetType string

const (
	OTPTargetEmail OTPTargetType = "email"
	OTPTargetPhone OTPTargetType = "phone"
)

// OTP is a single-use six-digit code. At most one unconsumed, unexpired
// row exists per (target, purpose): issuing a new code deletes prior rows
// for the pair. Used flips true exactly once, on successful verification.
type OTP struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	Target     string        `json:"target" gorm:"not null;index"`
	TargetType OTPTargetType `json:"target_type" gorm:"not null"`
	Code       string        `json:"-" gorm:"column:otp_code;not null"`
	Purpose    OTPPurpose    `json:"otp_type" gorm:"column:otp_type;not null"`
	ExpiresAt  time.Time     `json:"expires_at" gorm:"not null"`
	Used       bool          `json:"used" gorm:"default:false"`
	CreatedAt  time.Time     `json:"created_at"`
}
