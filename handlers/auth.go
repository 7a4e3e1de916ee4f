package handlers

import (
	"log"
	"net/http"
	"strings"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/middleware"
	"cloud-kitchen-api/models"
	"cloud-kitchen-api/notify"
	"cloud-kitchen-api/otp"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Delivery collaborators, swapped out from main (and in tests).
var (
	EmailSender notify.Sender = &notify.LogSender{Channel: "email"}
	SMSSender   notify.Sender = &notify.LogSender{Channel: "sms"}
)

func normEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// deliverOTP issues a fresh code and sends it over the target's channel.
// The code is persisted before delivery is attempted: a delivery failure
// leaves an unconsumed code that simply expires unused.
func deliverOTP(target string, targetType models.OTPTargetType, purpose models.OTPPurpose) error {
	code, err := otp.Issue(config.DB, target, targetType, purpose)
	if err != nil {
		return err
	}
	if targetType == models.OTPTargetPhone {
		return SMSSender.SendOTP(target, code, purpose)
	}
	return EmailSender.SendOTP(target, code, purpose)
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a customer account directly (non-OTP variant)
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required"})
		return
	}
	email := normEmail(req.Email)

	var existing models.User
	if err := config.DB.Where("LOWER(email) = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := middleware.GenerateUserToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
	})
}

// Login authenticates a customer and returns a JWT
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	var user models.User
	if err := config.DB.Where("LOWER(email) = ?", normEmail(req.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := middleware.GenerateUserToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
	})
}

type SendOTPRequest struct {
	Target     string `json:"target" binding:"required"`
	TargetType string `json:"target_type" binding:"required,oneof=email phone"`
	OTPType    string `json:"otp_type" binding:"required,oneof=signup reset"`
}

// SendOTP issues a signup or reset code for a customer target
func SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}
	targetType := models.OTPTargetType(req.TargetType)
	purpose := models.OTPPurpose(req.OTPType)
	target := otp.NormalizeTarget(req.Target, targetType)

	query := config.DB.Model(&models.User{})
	if targetType == models.OTPTargetEmail {
		query = query.Where("LOWER(email) = ?", target)
	} else {
		query = query.Where("phone = ?", target)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	switch purpose {
	case models.OTPSignup:
		if count > 0 {
			label := "Email"
			if targetType == models.OTPTargetPhone {
				label = "Phone"
			}
			c.JSON(http.StatusConflict, gin.H{"error": label + " already registered"})
			return
		}
	case models.OTPReset:
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found with this " + req.TargetType})
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

type CompleteSignupRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Phone         string `json:"phone"`
	OTPCode       string `json:"otp_code" binding:"required"`
	OTPTarget     string `json:"otp_target" binding:"required"`
	OTPTargetType string `json:"otp_target_type"`
}

// CompleteSignup verifies a signup OTP and creates the customer account
func CompleteSignup(c *gin.Context) {
	var req CompleteSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields required"})
		return
	}
	email := normEmail(req.Email)

	var existing models.User
	if err := config.DB.Where("LOWER(email) = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	ok, err := otp.Verify(config.DB, req.OTPTarget, req.OTPCode, models.OTPSignup)
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
	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}

	token, err := middleware.GenerateUserToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
	})
}

type ResetPasswordRequest struct {
	Target      string `json:"target" binding:"required"`
	TargetType  string `json:"target_type"`
	OTPCode     string `json:"otp_code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ResetPassword verifies a reset OTP and replaces the password hash
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}
	targetType := models.OTPTargetType(req.TargetType)
	target := otp.NormalizeTarget(req.Target, targetType)

	ok, err := otp.Verify(config.DB, target, req.OTPCode, models.OTPReset)
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

	query := config.DB.Model(&models.User{})
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

// maskEmail hides most of the local part: ko****@example.com
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	keep := 2
	if len(local) < keep {
		keep = len(local)
	}
	stars := len(local) - keep
	if stars < 1 {
		stars = 1
	}
	return local[:keep] + strings.Repeat("*", stars) + "@" + domain
}

type FindAccountRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// FindAccount returns the masked email registered for a phone number
func FindAccount(c *gin.Context) {
	var req FindAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone required"})
		return
	}
	var user models.User
	if err := config.DB.Where("phone = ?", strings.TrimSpace(req.Phone)).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No account found with this phone"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"maskedEmail": maskEmail(user.Email)})
}
