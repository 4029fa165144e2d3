// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"wagate-server/db"
	"wagate-server/middlewares"
	"wagate-server/models"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
	"github.com/nyaruka/phonenumbers"
	"gorm.io/gorm"
)

func parsePagination(c echo.Context) (page, pageSize, offset int) {
	page = 1
	pageSize = 10
	if p := c.QueryParam("page"); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &page); err != nil || page < 1 {
			page = 1
		}
	}
	if ps := c.QueryParam("page_size"); ps != "" {
		if _, err := fmt.Sscanf(ps, "%d", &pageSize); err != nil || pageSize < 1 {
			pageSize = 10
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset = (page - 1) * pageSize
	return page, pageSize, offset
}

// findOwnedWASession resolves the :session_id path param against the
// authenticated user's sessions.
func findOwnedWASession(c echo.Context) (*models.User, *models.WhatsAppSession, *echo.HTTPError) {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return nil, nil, &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	sessionID := c.Param("session_id")
	if sessionID == "" {
		return nil, nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Session ID is required",
		}
	}

	waSession := models.WhatsAppSession{}
	if err := db.Conn.Where("session_id = ? AND user_id = ?", sessionID, user.ID).First(&waSession).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("WhatsApp session not found.")
			return nil, nil, &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "WhatsApp session not found",
			}
		}
		logger.Errorf("Failed to find WhatsApp session: %v", err)
		return nil, nil, &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	return user, &waSession, nil
}

// requireConnected rejects capability calls against sessions that are
// not currently CONNECTED.
func requireConnected(waSession *models.WhatsAppSession) *echo.HTTPError {
	if waSession.Status != models.WASessionConnected {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: fmt.Sprintf("Session is %s, it must be CONNECTED to perform this action", waSession.Status),
		}
	}
	return nil
}

// engineHTTPError translates an engine call failure. The engine's own
// verdicts (404 and friends) pass through with their message; transport
// failures become 502.
func engineHTTPError(err error) *echo.HTTPError {
	var engineErr *whatsapp.EngineError
	if errors.As(err, &engineErr) {
		return &echo.HTTPError{
			Code:    engineErr.StatusCode,
			Message: engineErr.Message,
		}
	}
	return &echo.HTTPError{
		Code:    http.StatusBadGateway,
		Message: "WhatsApp engine is unreachable, please try again later",
	}
}

// resolveChatJID maps a recipient to a chat JID. Explicit JIDs pass
// through untouched; everything else must be a valid E.164 number.
func resolveChatJID(to string) (string, *echo.HTTPError) {
	if strings.Contains(to, "@") {
		return to, nil
	}

	parsedNumber, err := phonenumbers.Parse(to, "")
	if err != nil || !phonenumbers.IsValidNumber(parsedNumber) {
		return "", &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "to field must be a valid E.164 phone number or a chat JID. Phone numbers must start with a '+' followed by the country code and national number.",
		}
	}

	digits := strings.TrimPrefix(phonenumbers.Format(parsedNumber, phonenumbers.E164), "+")
	return digits + "@s.whatsapp.net", nil
}

func apiKeyDetails(apiKey models.APIKey) APIKeyDetails {
	details := APIKeyDetails{
		KeyID:         apiKey.KeyID,
		KeyPreview:    apiKey.Preview(),
		Name:          apiKey.Name,
		Description:   apiKey.Description,
		Scopes:        apiKey.Scopes,
		Status:        apiKey.Status(),
		IsActive:      apiKey.IsActive,
		UsageCount:    apiKey.UsageCount,
		LastIPAddress: apiKey.LastIPAddress,
		CreatedAt:     apiKey.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     apiKey.UpdatedAt.Format(time.RFC3339),
	}
	if apiKey.LastUsedAt != nil {
		lastUsed := apiKey.LastUsedAt.Format(time.RFC3339)
		details.LastUsedAt = &lastUsed
	}
	if apiKey.ExpiresAt != nil {
		expires := apiKey.ExpiresAt.Format(time.RFC3339)
		details.ExpiresAt = &expires
	}
	return details
}

func waSessionDetails(waSession models.WhatsAppSession) WASessionDetails {
	return WASessionDetails{
		SessionID:   waSession.SessionID,
		Name:        waSession.Name,
		PhoneNumber: waSession.PhoneNumber,
		Status:      string(waSession.Status),
		CreatedAt:   waSession.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   waSession.UpdatedAt.Format(time.RFC3339),
	}
}
