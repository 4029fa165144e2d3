// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"slices"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
)

var validPresences = []string{"available", "unavailable", "composing", "recording", "paused"}

// chatDirectedPresences must name the chat they apply to.
var chatDirectedPresences = []string{"composing", "recording", "paused"}

// SetPresenceHandler godoc
// @Summary      Set presence
// @Description  Sets the session's presence. Chat-directed presences (composing, recording, paused) require a chat_id.
// @Tags         presence
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Param        setPresenceRequest  body  SetPresenceRequest  true  "Presence payload"
// @Success      200 {object} GenericResponse "Presence updated"
// @Failure      400 {object} echo.HTTPError "Bad request, invalid presence value"
// @Failure      404 {object} echo.HTTPError "Session not found"
// @Failure      409 {object} echo.HTTPError "Session not connected"
// @Failure      502 {object} echo.HTTPError "Engine unreachable"
// @Router       /v1/sessions/{session_id}/presence [post]
func SetPresenceHandler(c echo.Context) error {
	logger := c.Logger()

	engineClient, err := whatsapp.NewClient(whatsapp.EngineConfig{})
	if err != nil {
		logger.Error("Failed to initialize WhatsApp engine client:", err)
		return echo.ErrInternalServerError
	}

	_, waSession, httpErr := findOwnedWASession(c)
	if httpErr != nil {
		return httpErr
	}

	if httpErr := requireConnected(waSession); httpErr != nil {
		logger.Errorf("Session %s is not connected.", waSession.SessionID)
		return httpErr
	}

	var req SetPresenceRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid set presence request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if !slices.Contains(validPresences, req.Presence) {
		logger.Errorf("Invalid presence value: %s", req.Presence)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "presence field must be one of: available, unavailable, composing, recording, paused",
		}
	}

	chatID := ""
	if req.ChatID != nil {
		chatID = *req.ChatID
	}
	if slices.Contains(chatDirectedPresences, req.Presence) && chatID == "" {
		logger.Error("Chat ID is required for chat-directed presences.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "chat_id field is required for presence: " + req.Presence,
		}
	}

	if err := engineClient.SetPresence(waSession.SessionID, req.Presence, chatID); err != nil {
		logger.Errorf("Failed to set presence: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Presence updated"})
}

// SubscribePresenceHandler godoc
// @Summary      Subscribe to presence updates
// @Description  Subscribes the session to presence updates of a chat so the engine starts reporting them.
// @Tags         presence
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        presenceSubscribeRequest  body  PresenceSubscribeRequest  true  "Subscription payload"
// @Success      200 {object} GenericResponse "Subscribed"
// @Failure      404 {object} echo.HTTPError "Session not found"
// @Router       /v1/sessions/{session_id}/presence/subscribe [post]
func SubscribePresenceHandler(c echo.Context) error {
	logger := c.Logger()

	engineClient, err := whatsapp.NewClient(whatsapp.EngineConfig{})
	if err != nil {
		logger.Error("Failed to initialize WhatsApp engine client:", err)
		return echo.ErrInternalServerError
	}

	_, waSession, httpErr := findOwnedWASession(c)
	if httpErr != nil {
		return httpErr
	}

	if httpErr := requireConnected(waSession); httpErr != nil {
		logger.Errorf("Session %s is not connected.", waSession.SessionID)
		return httpErr
	}

	var req PresenceSubscribeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid presence subscribe request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.ChatID == "" {
		logger.Error("Chat ID is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "chat_id field is required",
		}
	}

	if err := engineClient.SubscribePresence(waSession.SessionID, req.ChatID); err != nil {
		logger.Errorf("Failed to subscribe to presence: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Subscribed to presence updates"})
}

// GetPresenceHandler godoc
// @Summary      Get chat presence
// @Description  Retrieves the last known presence of a chat. Requires a prior subscription.
// @Tags         presence
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        chat_id     path  string  true  "Chat JID"
// @Success      200 {object} whatsapp.Presence "Presence"
// @Failure      404 {object} echo.HTTPError "Session or presence not found"
// @Router       /v1/sessions/{session_id}/presence/{chat_id} [get]
func GetPresenceHandler(c echo.Context) error {
	logger := c.Logger()

	engineClient, err := whatsapp.NewClient(whatsapp.EngineConfig{})
	if err != nil {
		logger.Error("Failed to initialize WhatsApp engine client:", err)
		return echo.ErrInternalServerError
	}

	_, waSession, httpErr := findOwnedWASession(c)
	if httpErr != nil {
		return httpErr
	}

	if httpErr := requireConnected(waSession); httpErr != nil {
		logger.Errorf("Session %s is not connected.", waSession.SessionID)
		return httpErr
	}

	chatID := c.Param("chat_id")
	if chatID == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Chat ID is required",
		}
	}

	presence, err := engineClient.GetPresence(waSession.SessionID, chatID)
	if err != nil {
		logger.Errorf("Failed to fetch presence: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, presence)
}
