// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
)

// GetLabelsHandler godoc
// @Summary      List labels
// @Tags         labels
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {array} whatsapp.Label "Labels"
// @Failure      404 {object} echo.HTTPError "Session not found"
// @Failure      409 {object} echo.HTTPError "Session not connected"
// @Failure      502 {object} echo.HTTPError "Engine unreachable"
// @Router       /v1/sessions/{session_id}/labels [get]
func GetLabelsHandler(c echo.Context) error {
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

	labels, err := engineClient.ListLabels(waSession.SessionID)
	if err != nil {
		logger.Errorf("Failed to list labels: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, labels)
}

// UpsertLabelHandler godoc
// @Summary      Create or update a label
// @Description  Creates a label, or updates its color if a label with the same name already exists.
// @Tags         labels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        upsertLabelRequest  body  UpsertLabelRequest  true  "Label payload"
// @Success      200 {object} whatsapp.Label "Label upserted"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Router       /v1/sessions/{session_id}/labels [post]
func UpsertLabelHandler(c echo.Context) error {
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

	var req UpsertLabelRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid upsert label request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Name == "" {
		logger.Error("Name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}

	label, err := engineClient.UpsertLabel(waSession.SessionID, req.Name, req.Color)
	if err != nil {
		logger.Errorf("Failed to upsert label: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, label)
}

// DeleteLabelHandler godoc
// @Summary      Delete a label
// @Tags         labels
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        label_id    path  string  true  "Label ID"
// @Success      200 {object} GenericResponse "Label deleted"
// @Failure      404 {object} echo.HTTPError "Session or label not found"
// @Router       /v1/sessions/{session_id}/labels/{label_id} [delete]
func DeleteLabelHandler(c echo.Context) error {
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

	labelID := c.Param("label_id")
	if labelID == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Label ID is required",
		}
	}

	if err := engineClient.DeleteLabel(waSession.SessionID, labelID); err != nil {
		logger.Errorf("Failed to delete label: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Label deleted"})
}

// SetChatLabelsHandler godoc
// @Summary      Set chat labels
// @Description  Replaces the full label set of a chat. An empty array clears all labels.
// @Tags         labels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        chat_id     path  string  true  "Chat JID"
// @Param        setChatLabelsRequest  body  SetChatLabelsRequest  true  "Replacement label set"
// @Success      200 {object} GenericResponse "Chat labels updated"
// @Failure      404 {object} echo.HTTPError "Session or chat not found"
// @Router       /v1/sessions/{session_id}/chats/{chat_id}/labels [put]
func SetChatLabelsHandler(c echo.Context) error {
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

	var req SetChatLabelsRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid set chat labels request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.LabelIDs == nil {
		req.LabelIDs = []string{}
	}

	if err := engineClient.SetChatLabels(waSession.SessionID, chatID, req.LabelIDs); err != nil {
		logger.Errorf("Failed to set chat labels: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Chat labels updated"})
}
