// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"wagate-server/crypto"
	"wagate-server/db"
	"wagate-server/middlewares"
	"wagate-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) {
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

func createHandlerTestUser(t *testing.T) *models.User {
	t.Helper()
	user := models.User{
		AccountID:    "acct_0123456789abcdef",
		AccountToken: "token",
		Email:        "handlers@wagate.test",
		Password:     "hashed",
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

func newSessionAuthContext(t *testing.T, user *models.User, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", models.Session{UserID: user.ID})
	c.Set("auth_method", middlewares.AuthMethodSession)
	return c, rec
}

func TestRegenerateAPIKeyReplacesSecretOnly(t *testing.T) {
	setupHandlerTestDB(t)
	user := createHandlerTestUser(t)

	keyID, err := crypto.GenerateRandomString("wk_", 16, "hex")
	if err != nil {
		t.Fatalf("Failed to generate key ID: %v", err)
	}
	secret, err := crypto.GenerateRandomString("", 16, "hex")
	if err != nil {
		t.Fatalf("Failed to generate secret: %v", err)
	}
	oldFullKey := keyID + secret

	oldHash, err := crypto.NewCrypto().HashSecret(oldFullKey)
	if err != nil {
		t.Fatalf("Failed to hash key: %v", err)
	}

	apiKey := models.APIKey{
		KeyID:     keyID,
		HashedKey: oldHash,
		KeySuffix: oldFullKey[len(oldFullKey)-4:],
		Name:      "Regenerated key",
		Scopes:    []string{models.ScopeChatsRead, models.ScopeMessagesSend},
		IsActive:  true,
		UserID:    user.ID,
	}
	if err := db.Conn.Create(&apiKey).Error; err != nil {
		t.Fatalf("Failed to create test API key: %v", err)
	}

	c, rec := newSessionAuthContext(t, user, http.MethodPost, "/")
	c.SetParamNames("key_id")
	c.SetParamValues(keyID)

	if err := RegenerateAPIKeyHandler(c); err != nil {
		t.Fatalf("RegenerateAPIKeyHandler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp CreateAPIKeyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if !strings.HasPrefix(resp.APIKey, keyID) {
		t.Errorf("Expected new key to keep prefix %s, got %s", keyID, resp.APIKey)
	}
	if resp.APIKey == oldFullKey {
		t.Error("Expected a new secret, got the old key back")
	}
	if resp.Key.KeyID != keyID {
		t.Errorf("Expected key ID %s to be preserved, got %s", keyID, resp.Key.KeyID)
	}
	if resp.Key.Name != "Regenerated key" {
		t.Errorf("Expected name to be preserved, got %s", resp.Key.Name)
	}
	if len(resp.Key.Scopes) != 2 {
		t.Errorf("Expected scopes to be preserved, got %v", resp.Key.Scopes)
	}

	var stored models.APIKey
	if err := db.Conn.First(&stored, apiKey.ID).Error; err != nil {
		t.Fatalf("Failed to reload key: %v", err)
	}
	if stored.HashedKey == oldHash {
		t.Error("Expected stored hash to change")
	}
	if stored.KeySuffix != resp.APIKey[len(resp.APIKey)-4:] {
		t.Errorf("Expected suffix to match new key, got %s", stored.KeySuffix)
	}

	cryptoInstance := crypto.NewCrypto()
	if err := cryptoInstance.VerifySecret(resp.APIKey, stored.HashedKey); err != nil {
		t.Errorf("Expected new key to verify against stored hash: %v", err)
	}
	if err := cryptoInstance.VerifySecret(oldFullKey, stored.HashedKey); err == nil {
		t.Error("Expected old key to stop verifying after regeneration")
	}
}
