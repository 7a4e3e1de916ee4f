package handlers

import (
	"net/http"
	"strings"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type staffRow struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Role      models.AdminRole `json:"role"`
	IsActive  bool             `json:"is_active"`
	CreatedAt string           `json:"created_at"`
}

// AdminListStaff returns all console accounts (owner only)
func AdminListStaff(c *gin.Context) {
	var rows []staffRow
	err := config.DB.Model(&models.AdminUser{}).
		Select("id, name, email, phone, role, is_active, created_at").
		Order("created_at").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// AdminCreateStaff creates a console account (owner only). Unknown
// roles fall back to STAFF.
func AdminCreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password required"})
		return
	}
	email := normEmail(req.Email)

	role := models.AdminRole(strings.ToUpper(req.Role))
	if role != models.RoleOwner && role != models.RoleStaff {
		role = models.RoleStaff
	}

	var existing models.AdminUser
	if err := config.DB.Where("LOWER(email) = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff"})
		return
	}
	admin := models.AdminUser{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		IsActive:     true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id": admin.ID, "name": admin.Name, "email": admin.Email,
		"role": admin.Role, "is_active": admin.IsActive, "created_at": admin.CreatedAt,
	})
}

type UpdateStaffRequest struct {
	IsActive    *bool  `json:"is_active"`
	NewPassword string `json:"new_password"`
}

// AdminUpdateStaff resets a password and/or toggles the active flag
// (owner only). Accounts are never deleted, only disabled.
func AdminUpdateStaff(c *gin.Context) {
	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var admin models.AdminUser
	if err := config.DB.First(&admin, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		return
	}

	if req.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff"})
			return
		}
		if err := config.DB.Model(&admin).Update("password_hash", string(hash)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff"})
			return
		}
	}
	if req.IsActive != nil {
		if err := config.DB.Model(&admin).Update("is_active", *req.IsActive).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff"})
			return
		}
	}

	config.DB.First(&admin, admin.ID)
	c.JSON(http.StatusOK, gin.H{
		"id": admin.ID, "name": admin.Name, "email": admin.Email,
		"role": admin.Role, "is_active": admin.IsActive, "created_at": admin.CreatedAt,
	})
}
