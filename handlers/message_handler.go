// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"wagate-server/models"
	"wagate-server/rabbitmq"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
)

// SendMessageHandler godoc
// @Summary      Send a message
// @Description  Sends a text or media message from a connected session. The recipient may be an E.164 phone number or an explicit chat JID.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Param        sendMessageRequest  body  SendMessageRequest  true  "Send message request payload"
// @Success      200 {object} SendMessageResponse "Message sent successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields or invalid recipient"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "Session not found"
// @Failure      409 {object} echo.HTTPError     "Session not connected"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Failure      502 {object} echo.HTTPError     "Engine unreachable"
// @Router       /v1/sessions/{session_id}/messages/send [post]
func SendMessageHandler(c echo.Context) error {
	logger := c.Logger()

	engineClient, err := whatsapp.NewClient(whatsapp.EngineConfig{})
	if err != nil {
		logger.Error("Failed to initialize WhatsApp engine client:", err)
		return echo.ErrInternalServerError
	}

	user, waSession, httpErr := findOwnedWASession(c)
	if httpErr != nil {
		return httpErr
	}

	if httpErr := requireConnected(waSession); httpErr != nil {
		logger.Errorf("Session %s is not connected.", waSession.SessionID)
		return httpErr
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid send message request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.To == "" {
		logger.Error("Missing recipient in message request.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "to field is required",
		}
	}

	hasMedia := req.MediaURL != nil && *req.MediaURL != ""
	if req.Text == "" && !hasMedia {
		logger.Error("Missing content in message request.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "text field is required unless media_url is set",
		}
	}

	chatID, httpErr := resolveChatJID(req.To)
	if httpErr != nil {
		logger.Errorf("Failed to resolve recipient '%s'.", req.To)
		return httpErr
	}

	var result *whatsapp.SendResult
	if hasMedia {
		result, err = engineClient.SendMedia(waSession.SessionID, chatID, *req.MediaURL, req.Text)
	} else {
		result, err = engineClient.SendText(waSession.SessionID, chatID, req.Text)
	}
	if err != nil {
		description := err.Error()
		_ = LogMessageEventFailureHandler(&waSession.SessionID, &chatID, &req.To, user.ID, &description)
		logger.Errorf("Failed to send message: %v", err)
		return engineHTTPError(err)
	}

	pendingLog, err := LogPendingEventHandler(models.Message, &waSession.SessionID, &result.ChatID, &req.To, user.ID, nil)
	if err != nil {
		logger.Errorf("Failed to record message event: %v", err)
	}

	go func() {
		rmqClient, err := rabbitmq.NewClient(rabbitmq.RabbitMQConfig{})
		if err != nil {
			logger.Error("Failed to initialize RabbitMQ client:", err)
			if pendingLog != nil {
				reason := err.Error()
				_ = MarkEventLogHandler(pendingLog, models.Failed, &reason)
			}
			return
		}
		event := models.NewEvent(models.EventKindMessageSent, waSession.SessionID, map[string]any{
			"message_id": result.MessageID,
			"chat_id":    result.ChatID,
		})
		if err := rmqClient.PublishEvent(user.AccountID, event); err != nil {
			logger.Errorf("Failed to publish message event: %v", err)
			if pendingLog != nil {
				reason := err.Error()
				_ = MarkEventLogHandler(pendingLog, models.Failed, &reason)
			}
			return
		}
		if pendingLog != nil {
			_ = MarkEventLogHandler(pendingLog, models.Sent, nil)
		}
	}()

	logger.Info("Message sent successfully.")
	return c.JSON(http.StatusOK, SendMessageResponse{
		MessageID: result.MessageID,
		ChatID:    result.ChatID,
		Message:   "Message sent successfully",
	})
}
