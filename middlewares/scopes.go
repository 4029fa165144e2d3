// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"wagate-server/models"

	"github.com/labstack/echo/v4"
)

// RequireScope gates a route on one scope. Dashboard sessions carry the
// user's full authority and pass; API keys must hold the scope. Must run
// after VerifyAuthMiddleware.
func RequireScope(scope string) func(echo.HandlerFunc) echo.HandlerFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Get("auth_method") == AuthMethodSession {
				return next(c)
			}

			apiKey, ok := c.Get("api_key").(models.APIKey)
			if !ok {
				c.Logger().Error("No API key in context for scoped route.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired authentication token",
				}
			}

			if !apiKey.HasScope(scope) {
				c.Logger().Errorf("API key %s lacks scope %s.", apiKey.KeyID, scope)
				return &echo.HTTPError{
					Code:    http.StatusForbidden,
					Message: "API key does not have the required scope: " + scope,
				}
			}

			return next(c)
		}
	}
}
