package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hackmatehq/hackmate/config"
	"github.com/hackmatehq/hackmate/internal/profile"
	"github.com/hackmatehq/hackmate/pkg/responses"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&profile.Profile{}); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	appConfig := &config.Config{}
	appConfig.JWT.Secret = "test-secret"
	appConfig.JWT.TokenExpiryHours = 1

	router := gin.New()
	api := router.Group("/api")
	RegisterAuthRoutes(api, db, appConfig)
	return router, db
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	router, _ := setupAuthRouter(t)

	rec := postJSON(t, router, "/api/auth/register", RegisterRequest{
		DisplayName: "Ada",
		Email:       "ada@example.com",
		SecretCode:  "482913",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Same email again must be refused.
	rec = postJSON(t, router, "/api/auth/register", RegisterRequest{
		DisplayName: "Ada Again",
		Email:       "ada@example.com",
		SecretCode:  "482913",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, router, "/api/auth/login", LoginRequest{
		Identifier: "ada@example.com",
		SecretCode: "482913",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, router, "/api/auth/login", LoginRequest{
		Identifier: "ada@example.com",
		SecretCode: "999999",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterReportsLookupFailure(t *testing.T) {
	router, db := setupAuthRouter(t)

	// Break the store so the duplicate-identifier lookup errors out. The
	// handler must surface that, not treat it as "identifier free".
	if err := db.Migrator().DropTable(&profile.Profile{}); err != nil {
		t.Fatalf("Failed to drop table: %v", err)
	}

	rec := postJSON(t, router, "/api/auth/register", RegisterRequest{
		DisplayName: "Ada",
		Email:       "ada@example.com",
		SecretCode:  "482913",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}

	var body responses.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if !strings.Contains(body.Message, "look up profile") {
		t.Errorf("expected a lookup failure message, got %q", body.Message)
	}
}
