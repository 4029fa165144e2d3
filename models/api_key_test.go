// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"testing"
	"time"
)

func TestAPIKeyStatusActive(t *testing.T) {
	key := APIKey{IsActive: true}
	if got := key.Status(); got != APIKeyStatusActive {
		t.Errorf("Expected status %s, got %s", APIKeyStatusActive, got)
	}
	if !key.Usable() {
		t.Error("Active key without expiry should be usable")
	}
}

func TestAPIKeyStatusInactive(t *testing.T) {
	key := APIKey{IsActive: false}
	if got := key.Status(); got != APIKeyStatusInactive {
		t.Errorf("Expected status %s, got %s", APIKeyStatusInactive, got)
	}
	if key.Usable() {
		t.Error("Inactive key should not be usable")
	}
}

func TestAPIKeyStatusExpiredWinsOverActive(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	key := APIKey{IsActive: true, ExpiresAt: &past}
	if got := key.Status(); got != APIKeyStatusExpired {
		t.Errorf("Expected status %s regardless of is_active, got %s", APIKeyStatusExpired, got)
	}
	if key.Usable() {
		t.Error("Expired key should not be usable even when active")
	}

	key.IsActive = false
	if got := key.Status(); got != APIKeyStatusExpired {
		t.Errorf("Expected status %s for expired inactive key, got %s", APIKeyStatusExpired, got)
	}
}

func TestAPIKeyFutureExpiryStillActive(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	key := APIKey{IsActive: true, ExpiresAt: &future}
	if got := key.Status(); got != APIKeyStatusActive {
		t.Errorf("Expected status %s for future expiry, got %s", APIKeyStatusActive, got)
	}
}

func TestAPIKeyPreview(t *testing.T) {
	key := APIKey{KeyID: "wk_ab12cd34", KeySuffix: "f9e3"}
	want := "wk_ab12cd34…f9e3"
	if got := key.Preview(); got != want {
		t.Errorf("Expected preview %s, got %s", want, got)
	}
}

func TestAPIKeyHasScope(t *testing.T) {
	key := APIKey{Scopes: []string{ScopeMessagesSend, ScopeChatsRead}}
	if !key.HasScope(ScopeMessagesSend) {
		t.Error("Expected key to have messages:send scope")
	}
	if key.HasScope(ScopeGroupsWrite) {
		t.Error("Key should not have groups:write scope")
	}
}

func TestValidateScopes(t *testing.T) {
	if _, ok := ValidateScopes(nil); ok {
		t.Error("Empty scope list must be rejected")
	}

	if _, ok := ValidateScopes([]string{}); ok {
		t.Error("Empty scope list must be rejected")
	}

	bad, ok := ValidateScopes([]string{ScopeChatsRead, "admin:everything"})
	if ok {
		t.Error("Unknown scope must be rejected")
	}
	if bad != "admin:everything" {
		t.Errorf("Expected offending scope admin:everything, got %s", bad)
	}

	if _, ok := ValidateScopes([]string{ScopeChatsRead, ScopeChatsRead}); ok {
		t.Error("Duplicate scopes must be rejected")
	}

	if _, ok := ValidateScopes(AllScopes()); !ok {
		t.Error("Full catalog should validate")
	}
}

func TestScopeCatalogHasDescriptions(t *testing.T) {
	for _, scope := range AllScopes() {
		if ScopeDescriptions[scope] == "" {
			t.Errorf("Scope %s is missing a description", scope)
		}
	}
}
