package middleware

import (
	"net/http"
	"strings"
	"time"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims identifies a customer principal.
type UserClaims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AdminClaims identifies a staff/owner console principal.
type AdminClaims struct {
	AdminID uint             `json:"admin_id"`
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Role    models.AdminRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateUserToken creates a signed 30-day JWT for a customer
func GenerateUserToken(user *models.User) (string, error) {
	claims := UserClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// GenerateAdminToken creates a signed 7-day JWT for an admin
func GenerateAdminToken(admin *models.AdminUser) (string, error) {
	claims := AdminClaims{
		AdminID: admin.ID,
		Name:    admin.Name,
		Email:   admin.Email,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// AuthRequired validates a customer JWT and injects claims into context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		claims := &UserClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid || claims.UserID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("userName", claims.Name)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// AdminRequired validates an admin JWT and injects claims into context
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}
		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		if claims.AdminID == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not an admin account"})
			c.Abort()
			return
		}
		c.Set("adminID", claims.AdminID)
		c.Set("adminName", claims.Name)
		c.Set("adminRole", string(claims.Role))
		c.Next()
	}
}

// OwnerOnly enforces role==OWNER on routes behind AdminRequired
func OwnerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAdminRole(c) != models.RoleOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "Owner access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts the caller's user ID from context
func GetUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	return val.(uint)
}

// GetUserName extracts the caller's name from context
func GetUserName(c *gin.Context) string {
	val, _ := c.Get("userName")
	return val.(string)
}

// GetAdminID extracts the caller's admin ID from context
func GetAdminID(c *gin.Context) uint {
	val, _ := c.Get("adminID")
	return val.(uint)
}

// GetAdminRole extracts the caller's admin role from context
func GetAdminRole(c *gin.Context) models.AdminRole {
	val, _ := c.Get("adminRole")
	return models.AdminRole(val.(string))
}
