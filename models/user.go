package models

import (
	"time"
)

// AdminRole defines allowed roles for admin console accounts
type AdminRole string

const (
	RoleStaff AdminRole = "STAFF"
	RoleOwner AdminRole = "OWNER"
)

// User is a customer account. Accounts are never hard-deleted.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminUser is a staff or owner console account. Disabled via IsActive,
// never hard-deleted.
type AdminUser struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Phone        string    `json:"phone"`
	Role         AdminRole `json:"role" gorm:"not null;default:'STAFF'"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
