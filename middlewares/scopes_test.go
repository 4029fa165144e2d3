// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"wagate-server/models"

	"github.com/labstack/echo/v4"
)

func newScopeTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireScopeSessionAuthBypassesScopeCheck(t *testing.T) {
	c := newScopeTestContext(t)
	c.Set("auth_method", AuthMethodSession)

	err := RequireScope(models.ScopeMessagesSend)(okHandler)(c)
	if err != nil {
		t.Errorf("Expected session auth to pass scoped route, got error: %v", err)
	}
}

func TestRequireScopeAPIKeyWithScope(t *testing.T) {
	c := newScopeTestContext(t)
	c.Set("auth_method", AuthMethodAPIKey)
	c.Set("api_key", models.APIKey{
		KeyID:  "wk_0123456789abcdef0123456789abcdef",
		Scopes: []string{models.ScopeMessagesSend, models.ScopeChatsRead},
	})

	err := RequireScope(models.ScopeMessagesSend)(okHandler)(c)
	if err != nil {
		t.Errorf("Expected key holding scope to pass, got error: %v", err)
	}
}

func TestRequireScopeAPIKeyMissingScope(t *testing.T) {
	c := newScopeTestContext(t)
	c.Set("auth_method", AuthMethodAPIKey)
	c.Set("api_key", models.APIKey{
		KeyID:  "wk_0123456789abcdef0123456789abcdef",
		Scopes: []string{models.ScopeChatsRead},
	})

	err := RequireScope(models.ScopeMessagesSend)(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", httpErr.Code)
	}
}

func TestRequireScopeNoAPIKeyInContext(t *testing.T) {
	c := newScopeTestContext(t)
	c.Set("auth_method", AuthMethodAPIKey)

	err := RequireScope(models.ScopeMessagesSend)(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", httpErr.Code)
	}
}
