// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
)

// SendStatusHandler godoc
// @Summary      Publish a status update
// @Description  Publishes a text status (story) from a connected session.
// @Tags         status
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Param        sendStatusRequest  body  SendStatusRequest  true  "Status payload"
// @Success      200 {object} SendMessageResponse "Status published"
// @Failure      400 {object} echo.HTTPError "Bad request, missing text"
// @Failure      404 {object} echo.HTTPError "Session not found"
// @Failure      409 {object} echo.HTTPError "Session not connected"
// @Failure      502 {object} echo.HTTPError "Engine unreachable"
// @Router       /v1/sessions/{session_id}/status/text [post]
func SendStatusHandler(c echo.Context) error {
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

	var req SendStatusRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid send status request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Text == "" {
		logger.Error("Text is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "text field is required",
		}
	}

	result, err := engineClient.SendStatusText(waSession.SessionID, req.Text)
	if err != nil {
		logger.Errorf("Failed to publish status: %v", err)
		return engineHTTPError(err)
	}

	logger.Info("Status published successfully.")
	return c.JSON(http.StatusOK, SendMessageResponse{
		MessageID: result.MessageID,
		ChatID:    result.ChatID,
		Message:   "Status published successfully",
	})
}
