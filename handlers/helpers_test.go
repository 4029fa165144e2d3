// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"wagate-server/models"

	"github.com/labstack/echo/v4"
)

func TestResolveChatJIDPassesThroughJIDs(t *testing.T) {
	cases := []string{
		"237123456789@s.whatsapp.net",
		"120363041234567890@g.us",
		"1234567890@newsletter",
	}
	for _, jid := range cases {
		got, httpErr := resolveChatJID(jid)
		if httpErr != nil {
			t.Errorf("Expected JID %s to pass through, got error: %v", jid, httpErr)
			continue
		}
		if got != jid {
			t.Errorf("Expected JID %s unchanged, got %s", jid, got)
		}
	}
}

func TestResolveChatJIDFormatsPhoneNumbers(t *testing.T) {
	got, httpErr := resolveChatJID("+237 6 71 23 45 67")
	if httpErr != nil {
		t.Fatalf("Expected valid number to resolve, got error: %v", httpErr)
	}
	if got != "237671234567@s.whatsapp.net" {
		t.Errorf("Expected 237671234567@s.whatsapp.net, got %s", got)
	}
}

func TestResolveChatJIDRejectsInvalidNumbers(t *testing.T) {
	cases := []string{"", "not-a-number", "12345", "671234567"}
	for _, to := range cases {
		_, httpErr := resolveChatJID(to)
		if httpErr == nil {
			t.Errorf("Expected %q to be rejected", to)
			continue
		}
		if httpErr.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for %q, got %d", to, httpErr.Code)
		}
	}
}

func TestParsePaginationDefaults(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	page, pageSize, offset := parsePagination(c)
	if page != 1 || pageSize != 10 || offset != 0 {
		t.Errorf("Expected defaults 1/10/0, got %d/%d/%d", page, pageSize, offset)
	}
}

func TestParsePaginationClampsAndOffsets(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=3&page_size=500", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	page, pageSize, offset := parsePagination(c)
	if page != 3 {
		t.Errorf("Expected page 3, got %d", page)
	}
	if pageSize != 100 {
		t.Errorf("Expected page_size clamped to 100, got %d", pageSize)
	}
	if offset != 200 {
		t.Errorf("Expected offset 200, got %d", offset)
	}
}

func TestParsePaginationRejectsGarbage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=-2&page_size=abc", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	page, pageSize, _ := parsePagination(c)
	if page != 1 || pageSize != 10 {
		t.Errorf("Expected fallback to 1/10, got %d/%d", page, pageSize)
	}
}

func TestRequireConnected(t *testing.T) {
	waSession := &models.WhatsAppSession{Status: models.WASessionConnected}
	if httpErr := requireConnected(waSession); httpErr != nil {
		t.Errorf("Expected CONNECTED session to pass, got: %v", httpErr)
	}

	waSession.Status = models.WASessionStopped
	httpErr := requireConnected(waSession)
	if httpErr == nil {
		t.Fatal("Expected STOPPED session to be rejected")
	}
	if httpErr.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", httpErr.Code)
	}
}

func TestValidateKeyName(t *testing.T) {
	if httpErr := validateKeyName("ab"); httpErr == nil {
		t.Error("Expected name shorter than 3 characters to be rejected")
	}
	if httpErr := validateKeyName("Production key"); httpErr != nil {
		t.Errorf("Expected valid name to pass, got: %v", httpErr)
	}

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	if httpErr := validateKeyName(string(long)); httpErr == nil {
		t.Error("Expected name longer than 100 characters to be rejected")
	}
}

func TestParseKeyExpiry(t *testing.T) {
	if _, httpErr := parseKeyExpiry("not-a-timestamp"); httpErr == nil {
		t.Error("Expected malformed timestamp to be rejected")
	}

	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	if _, httpErr := parseKeyExpiry(past); httpErr == nil {
		t.Error("Expected past timestamp to be rejected")
	}

	future := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	expiresAt, httpErr := parseKeyExpiry(future)
	if httpErr != nil {
		t.Fatalf("Expected future timestamp to pass, got: %v", httpErr)
	}
	if expiresAt == nil || !expiresAt.After(time.Now()) {
		t.Error("Expected parsed expiry to be in the future")
	}
}

func TestAPIKeyDetailsMapping(t *testing.T) {
	lastUsed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	apiKey := models.APIKey{
		KeyID:      "wk_0123456789abcdef0123456789abcdef",
		KeySuffix:  "f9e3",
		Name:       "Production key",
		Scopes:     []string{models.ScopeMessagesSend},
		IsActive:   true,
		UsageCount: 42,
		LastUsedAt: &lastUsed,
		ExpiresAt:  &expires,
	}

	details := apiKeyDetails(apiKey)
	if details.KeyPreview != apiKey.KeyID+"…f9e3" {
		t.Errorf("Unexpected key preview: %s", details.KeyPreview)
	}
	if details.Status != models.APIKeyStatusActive {
		t.Errorf("Expected active status, got %s", details.Status)
	}
	if details.UsageCount != 42 {
		t.Errorf("Expected usage count 42, got %d", details.UsageCount)
	}
	if details.LastUsedAt == nil || *details.LastUsedAt != "2025-06-01T12:00:00Z" {
		t.Errorf("Unexpected last_used_at: %v", details.LastUsedAt)
	}
	if details.ExpiresAt == nil || *details.ExpiresAt != "2030-01-01T00:00:00Z" {
		t.Errorf("Unexpected expires_at: %v", details.ExpiresAt)
	}
}
