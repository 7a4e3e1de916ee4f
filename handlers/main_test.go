package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/handlers"
	"cloud-kitchen-api/middleware"
	"cloud-kitchen-api/models"
	"cloud-kitchen-api/notify"
	"cloud-kitchen-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// recordingSender captures delivered OTP codes for assertions.
type recordingSender struct {
	To      []string
	Codes   []string
	FailAll bool
}

func (s *recordingSender) SendOTP(to, code string, purpose models.OTPPurpose) error {
	if s.FailAll {
		return errAlwaysFail
	}
	s.To = append(s.To, to)
	s.Codes = append(s.Codes, code)
	return nil
}

func (s *recordingSender) lastCode() string {
	if len(s.Codes) == 0 {
		return ""
	}
	return s.Codes[len(s.Codes)-1]
}

var errAlwaysFail = &deliveryError{}

type deliveryError struct{}

func (e *deliveryError) Error() string { return "provider unreachable" }

// setupServer gives each test a fresh in-memory database and a fully
// routed engine.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(":memory:")
	require.NoError(t, err)
	config.DB = db

	handlers.EmailSender = &notify.LogSender{Channel: "email"}
	handlers.SMSSender = &notify.LogSender{Channel: "sms"}

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func createUser(t *testing.T, name, email, phone string) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, PasswordHash: string(hash), Phone: phone}
	require.NoError(t, config.DB.Create(&user).Error)
	token, err := middleware.GenerateUserToken(&user)
	require.NoError(t, err)
	return user, token
}

func createAdmin(t *testing.T, name, email string, role models.AdminRole) (models.AdminUser, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Admin@2024"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.AdminUser{Name: name, Email: email, PasswordHash: string(hash), Role: role, IsActive: true}
	require.NoError(t, config.DB.Create(&admin).Error)
	token, err := middleware.GenerateAdminToken(&admin)
	require.NoError(t, err)
	return admin, token
}

func createMenuItem(t *testing.T, name string, price float64) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name: name, Price: price, Category: "Mains",
		IsAvailable: true, StockStatus: models.StockIn, IsActive: true,
	}
	require.NoError(t, config.DB.Create(&item).Error)
	return item
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func closeKitchen(t *testing.T) {
	t.Helper()
	require.NoError(t, config.DB.Model(&models.KitchenStatus{}).
		Where("id = ?", 1).Update("is_open", false).Error)
}
