package handlers

import (
	"log"
	"net/http"
	"strings"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/middleware"
	"cloud-kitchen-api/models"
	"cloud-kitchen-api/otp"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminLogin authenticates an active console account
func AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
		return
	}

	var admin models.AdminUser
	err := config.DB.Where("LOWER(email) = ? AND is_active = ?", normEmail(req.Email), true).
		First(&admin).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials or account disabled"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := middleware.GenerateAdminToken(&admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "name": admin.Name, "email": admin.Email, "role": admin.Role},
	})
}

type AdminSendOTPRequest struct {
	Target     string `json:"target" binding:"required"`
	TargetType string `json:"target_type" binding:"required,oneof=email phone"`
	OTPType    string `json:"otp_type" binding:"required,oneof=admin_signup admin_reset"`
}

// AdminSendOTP issues an admin_signup or admin_reset code
func AdminSendOTP(c *gin.Context) {
	var req AdminSendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}
	targetType := models.OTPTargetType(req.TargetType)
	purpose := models.OTPPurpose(req.OTPType)
	target := otp.NormalizeTarget(req.Target, targetType)

	query := config.DB.Model(&models.AdminUser{})
	if targetType == models.OTPTargetEmail {
		query = query.Where("LOWER(email) = ?", target)
	} else {
		query = query.Where("phone = ?", target)
	}

	var count int64
	switch purpose {
	case models.OTPAdminSignup:
		if err := query.Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
			return
		}
		if count > 0 {
			label := "Email"
			if targetType == models.OTPTargetPhone {
				label = "Phone"
			}
			c.JSON(http.StatusConflict, gin.H{"error": label + " already registered"})
			return
		}
	case models.OTPAdminReset:
		if err := query.Where("is_active = ?", true).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No admin account found with this " + req.TargetType})
			return
		}
	}

	if err := deliverOTP(target, targetType, purpose); err != nil {
		log.Printf("OTP delivery failed for %s: %v", target, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// AdminCompleteSignup verifies an admin_signup OTP and creates a STAFF
// account. New console accounts always start as STAFF; only an owner can
// promote.
func AdminCompleteSignup(c *gin.Context) {
	var req CompleteSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields required"})
		return
	}
	email := normEmail(req.Email)

	var existing models.AdminUser
	if err := config.DB.Where("LOWER(email) = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	ok, err := otp.Verify(config.DB, req.OTPTarget, req.OTPCode, models.OTPAdminSignup)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}
	admin := models.AdminUser{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         models.RoleStaff,
		IsActive:     true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}

	token, err := middleware.GenerateAdminToken(&admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "name": admin.Name, "email": admin.Email, "role": admin.Role},
	})
}

// AdminResetPassword verifies an admin_reset OTP and replaces the hash
func AdminResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}
	targetType := models.OTPTargetType(req.TargetType)
	target := otp.NormalizeTarget(req.Target, targetType)

	ok, err := otp.Verify(config.DB, target, req.OTPCode, models.OTPAdminReset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset failed"})
		return
	}

	query := config.DB.Model(&models.AdminUser{})
	if targetType == models.OTPTargetPhone {
		query = query.Where("phone = ?", target)
	} else {
		query = query.Where("LOWER(email) = ?", target)
	}
	res := query.Update("password_hash", string(hash))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// AdminFindAccount returns the masked email for an active admin phone
func AdminFindAccount(c *gin.Context) {
	var req FindAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone required"})
		return
	}
	var admin models.AdminUser
	err := config.DB.Where("phone = ? AND is_active = ?", strings.TrimSpace(req.Phone), true).
		First(&admin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No admin account found with this phone"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"maskedEmail": maskEmail(admin.Email)})
}
