// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"wagate-server/crypto"
	"wagate-server/db"
	"wagate-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB(t *testing.T) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.Conn = conn
}

func seedAPIKey(t *testing.T, mutate func(*models.APIKey)) (string, *models.APIKey) {
	t.Helper()

	user := models.User{
		AccountID:    "acct_0123456789abcdef",
		AccountToken: "token",
		Email:        "keys@wagate.test",
		Password:     "hashed",
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	keyID, err := crypto.GenerateRandomString("wk_", 16, "hex")
	if err != nil {
		t.Fatalf("Failed to generate key ID: %v", err)
	}
	secret, err := crypto.GenerateRandomString("", 16, "hex")
	if err != nil {
		t.Fatalf("Failed to generate secret: %v", err)
	}
	fullKey := keyID + secret

	hashedKey, err := crypto.NewCrypto().HashSecret(fullKey)
	if err != nil {
		t.Fatalf("Failed to hash key: %v", err)
	}

	apiKey := models.APIKey{
		KeyID:     keyID,
		HashedKey: hashedKey,
		KeySuffix: fullKey[len(fullKey)-4:],
		Name:      "Test key",
		Scopes:    []string{models.ScopeMessagesSend},
		IsActive:  true,
		UserID:    user.ID,
	}
	if mutate != nil {
		mutate(&apiKey)
	}
	if err := db.Conn.Create(&apiKey).Error; err != nil {
		t.Fatalf("Failed to create test API key: %v", err)
	}
	return fullKey, &apiKey
}

func runAPIKeyAuth(t *testing.T, setHeader func(*http.Request)) (error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	setHeader(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := VerifyAuthMiddleware(AuthMethodAPIKey)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return err, called
}

func TestAPIKeyAuthTracksUsage(t *testing.T) {
	setupAuthTestDB(t)
	fullKey, apiKey := seedAPIKey(t, nil)

	err, called := runAPIKeyAuth(t, func(req *http.Request) {
		req.Header.Set("X-API-Key", fullKey)
	})
	if err != nil {
		t.Fatalf("Expected valid key to authenticate, got: %v", err)
	}
	if !called {
		t.Fatal("Expected handler to run for a valid key")
	}

	var stored models.APIKey
	if err := db.Conn.First(&stored, apiKey.ID).Error; err != nil {
		t.Fatalf("Failed to reload key: %v", err)
	}
	if stored.UsageCount != 1 {
		t.Errorf("Expected usage count 1, got %d", stored.UsageCount)
	}
	if stored.LastUsedAt == nil {
		t.Error("Expected last_used_at to be recorded")
	}
	if stored.LastIPAddress == nil || *stored.LastIPAddress == "" {
		t.Error("Expected caller IP to be recorded")
	}
}

func TestAPIKeyAuthViaBearerHeader(t *testing.T) {
	setupAuthTestDB(t)
	fullKey, _ := seedAPIKey(t, nil)

	err, called := runAPIKeyAuth(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+fullKey)
	})
	if err != nil {
		t.Fatalf("Expected Bearer-carried key to authenticate, got: %v", err)
	}
	if !called {
		t.Error("Expected handler to run for a Bearer-carried key")
	}
}

func TestExpiredAPIKeyFailsAuth(t *testing.T) {
	setupAuthTestDB(t)
	fullKey, _ := seedAPIKey(t, func(apiKey *models.APIKey) {
		past := time.Now().Add(-time.Hour)
		apiKey.ExpiresAt = &past
	})

	err, called := runAPIKeyAuth(t, func(req *http.Request) {
		req.Header.Set("X-API-Key", fullKey)
	})
	if called {
		t.Error("Expected handler not to run for an expired key")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for expired key, got %v", err)
	}
}

func TestInactiveAPIKeyFailsAuth(t *testing.T) {
	setupAuthTestDB(t)
	fullKey, _ := seedAPIKey(t, func(apiKey *models.APIKey) {
		apiKey.IsActive = false
	})

	err, called := runAPIKeyAuth(t, func(req *http.Request) {
		req.Header.Set("X-API-Key", fullKey)
	})
	if called {
		t.Error("Expected handler not to run for an inactive key")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for inactive key, got %v", err)
	}
}

func TestTamperedAPIKeyFailsAuth(t *testing.T) {
	setupAuthTestDB(t)
	_, apiKey := seedAPIKey(t, nil)

	tampered := apiKey.KeyID + strings.Repeat("0", 32)
	err, called := runAPIKeyAuth(t, func(req *http.Request) {
		req.Header.Set("X-API-Key", tampered)
	})
	if called {
		t.Error("Expected handler not to run for a tampered key")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for tampered key, got %v", err)
	}
}
