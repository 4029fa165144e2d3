// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"wagate-server/crypto"
	"wagate-server/db"
	"wagate-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRoutesTest(t *testing.T) *echo.Echo {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.Conn = conn

	e := echo.New()
	RegisterRoutes(e)
	return e
}

func seedScopedKey(t *testing.T, scopes []string) string {
	t.Helper()
	user := models.User{
		AccountID:    "acct_0123456789abcdef",
		AccountToken: "token",
		Email:        "routes@wagate.test",
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
		Name:      "Routes key",
		Scopes:    scopes,
		IsActive:  true,
		UserID:    user.ID,
	}
	if err := db.Conn.Create(&apiKey).Error; err != nil {
		t.Fatalf("Failed to create test API key: %v", err)
	}
	return fullKey
}

func TestPresenceSubscribeRequiresWriteScope(t *testing.T) {
	e := setupRoutesTest(t)
	fullKey := seedScopedKey(t, []string{models.ScopePresenceRead})

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/wa_missing/presence/subscribe", nil)
	req.Header.Set("X-API-Key", fullKey)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a key holding only presence:read, got %d", rec.Code)
	}
}

func TestPresenceSubscribePassesGateWithWriteScope(t *testing.T) {
	e := setupRoutesTest(t)
	fullKey := seedScopedKey(t, []string{models.ScopePresenceWrite})

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/wa_missing/presence/subscribe", nil)
	req.Header.Set("X-API-Key", fullKey)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Past the scope gate the handler looks the session up and 404s.
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown session, got %d", rec.Code)
	}
}
