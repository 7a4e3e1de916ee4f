// Package otp issues and single-use-verifies six-digit codes scoped by
// (target, purpose).
package otp

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"cloud-kitchen-api/models"

	"gorm.io/gorm"
)

// TTL is how long an issued code stays verifiable.
const TTL = 10 * time.Minute

// GenerateCode returns a uniformly random six-digit code, 100000–999999.
func GenerateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}

// NormalizeTarget canonicalizes a target for storage and lookup. Email
// targets compare case-insensitively.
func NormalizeTarget(target string, targetType models.OTPTargetType) string {
	target = strings.TrimSpace(target)
	if targetType == models.OTPTargetEmail {
		target = strings.ToLower(target)
	}
	return target
}

// Issue stores a fresh code for (target, purpose), superseding any prior
// code for the pair. The delete and insert run in one transaction so at
// most one unconsumed row exists per pair. Returns the stored code.
func Issue(db *gorm.DB, target string, targetType models.OTPTargetType, purpose models.OTPPurpose) (string, error) {
	target = NormalizeTarget(target, targetType)
	code := GenerateCode()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("LOWER(target) = LOWER(?) AND otp_type = ?", target, purpose).
			Delete(&models.OTP{}).Error; err != nil {
			return err
		}
		rec := models.OTP{
			Target:     target,
			TargetType: targetType,
			Code:       code,
			Purpose:    purpose,
			ExpiresAt:  time.Now().Add(TTL),
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// Verify consumes a code. It matches on case-insensitive target, exact
// code and purpose, requires the record unused and unexpired, and flips
// used=true on success. A code verifies at most once; any non-match
// (wrong code, expired, already used, wrong purpose) returns false with
// no side effect.
func Verify(db *gorm.DB, target, code string, purpose models.OTPPurpose) (bool, error) {
	var rec models.OTP
	err := db.Where(
		"LOWER(target) = LOWER(?) AND otp_code = ? AND otp_type = ? AND used = ? AND expires_at > ?",
		strings.TrimSpace(target), code, purpose, false, time.Now(),
	).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	if err := db.Model(&rec).Update("used", true).Error; err != nil {
		return false, err
	}
	return true, nil
}
