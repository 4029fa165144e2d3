// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
)

// chatCapability runs the shared preamble of every chat route: resolve
// the session, require CONNECTED, bind the action payload.
func chatCapability(c echo.Context) (*whatsapp.Client, string, *ChatActionRequest, *echo.HTTPError) {
	logger := c.Logger()

	engineClient, err := whatsapp.NewClient(whatsapp.EngineConfig{})
	if err != nil {
		logger.Error("Failed to initialize WhatsApp engine client:", err)
		return nil, "", nil, &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	_, waSession, httpErr := findOwnedWASession(c)
	if httpErr != nil {
		return nil, "", nil, httpErr
	}

	if httpErr := requireConnected(waSession); httpErr != nil {
		logger.Errorf("Session %s is not connected.", waSession.SessionID)
		return nil, "", nil, httpErr
	}

	var req ChatActionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid chat action request payload:", err)
		return nil, "", nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.ChatID == "" {
		logger.Error("Chat ID is required.")
		return nil, "", nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "chat_id field is required",
		}
	}

	return engineClient, waSession.SessionID, &req, nil
}

// GetChatsHandler godoc
// @Summary      List chats
// @Description  Retrieves a paginated list of the session's chats from the engine.
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Param        page     query   int     false  "Page number (default 1)"
// @Param        page_size query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} ChatListResponse "Paginated list of chats"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "Session not found"
// @Failure      409 {object} echo.HTTPError     "Session not connected"
// @Failure      502 {object} echo.HTTPError     "Engine unreachable"
// @Router       /v1/sessions/{session_id}/chats [get]
func GetChatsHandler(c echo.Context) error {
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

	page, pageSize, offset := parsePagination(c)

	chats, err := engineClient.ListChats(waSession.SessionID, pageSize, offset)
	if err != nil {
		logger.Errorf("Failed to list chats: %v", err)
		return engineHTTPError(err)
	}

	details := make([]ChatDetails, 0, len(chats))
	for _, chat := range chats {
		details = append(details, ChatDetails{
			ChatID:      chat.ChatID,
			Name:        chat.Name,
			UnreadCount: chat.UnreadCount,
			Archived:    chat.Archived,
			Pinned:      chat.Pinned,
			MutedUntil:  chat.MutedUntil,
		})
	}

	return c.JSON(http.StatusOK, ChatListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:     page,
			PageSize: pageSize,
		},
		Message: "Chats retrieved successfully",
	})
}

// ArchiveChatHandler godoc
// @Summary      Archive a chat
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Param        chatActionRequest  body  ChatActionRequest  true  "Chat action payload"
// @Success      200 {object} GenericResponse "Chat archived"
// @Failure      404 {object} echo.HTTPError "Session or chat not found"
// @Failure      409 {object} echo.HTTPError "Session not connected"
// @Router       /v1/sessions/{session_id}/chats/archive [post]
func ArchiveChatHandler(c echo.Context) error {
	engineClient, sessionID, req, httpErr := chatCapability(c)
	if httpErr != nil {
		return httpErr
	}
	if err := engineClient.SetChatArchived(sessionID, req.ChatID, true); err != nil {
		return engineHTTPError(err)
	}
	return c.JSON(http.StatusOK, GenericResponse{Message: "Chat archived"})
}

// UnarchiveChatHandler godoc
// @Summary      Unarchive a chat
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        chatActionRequest  body  ChatActionRequest  true  "Chat action payload"
// @Success      200 {object} GenericResponse "Chat unarchived"
// @Router       /v1/sessions/{session_id}/chats/unarchive [post]
func UnarchiveChatHandler(c echo.Context) error {
	engineClient, sessionID, req, httpErr := chatCapability(c)
	if httpErr != nil {
		return httpErr
	}
	if err := engineClient.SetChatArchived(sessionID, req.ChatID, false); err != nil {
		return engineHTTPError(err)
	}
	return c.JSON(http.StatusOK, GenericResponse{Message: "Chat unarchived"})
}

// PinChatHandler godoc
// @Summary      Pin a chat
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        chatActionRequest  body  ChatActionRequest  true  "Chat action payload"
// @Success      200 {object} GenericResponse "Chat pinned"
// @Router       /v1/sessions/{session_id}/chats/pin [post]
func PinChatHandler(c echo.Context) error {
	engineClient, sessionID, req, httpErr := chatCapability(c)
	if httpErr != nil {
		return httpErr
	}
	if err := engineClient.SetChatPinned(sessionID, req.ChatID, true); err != nil {
		return engineHTTPError(err)
	}
	return c.JSON(http.StatusOK, GenericResponse{Message: "Chat pinned"})
}

// UnpinChatHandler godoc
// @Summary      Unpin a chat
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        chatActionRequest  body  ChatActionRequest  true  "Chat action payload"
// @Success      200 {object} GenericResponse "Chat unpinned"
// @Router       /v1/sessions/{session_id}/chats/unpin [post]
func UnpinChatHandler(c echo.Context) error {
	engineClient, sessionID, req, httpErr := chatCapability(c)
	if httpErr != nil {
		return httpErr
	}
	if err := engineClient.SetChatPinned(sessionID, req.ChatID, false); err != nil {
		return engineHTTPError(err)
	}
	return c.JSON(http.StatusOK, GenericResponse{Message: "Chat unpinned"})
}

// MuteChatHandler godoc
// @Summary      Mute a chat
// @Description  Mutes a chat for the given duration in seconds; omit duration to mute forever.
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        chatActionRequest  body  ChatActionRequest  true  "Chat action payload with optional duration"
// @Success      200 {object} GenericResponse "Chat muted"
// @Router       /v1/sessions/{session_id}/chats/mute [post]
func MuteChatHandler(c echo.Context) error {
	engineClient, sessionID, req, httpErr := chatCapability(c)
	if httpErr != nil {
		return httpErr
	}

	duration := 0
	if req.Duration != nil {
		if *req.Duration < 0 {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "duration field must not be negative",
			}
		}
		duration = *req.Duration
	}

	if err := engineClient.MuteChat(sessionID, req.ChatID, duration); err != nil {
		return engineHTTPError(err)
	}
	return c.JSON(http.StatusOK, GenericResponse{Message: "Chat muted"})
}

// UnmuteChatHandler godoc
// @Summary      Unmute a chat
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        chatActionRequest  body  ChatActionRequest  true  "Chat action payload"
// @Success      200 {object} GenericResponse "Chat unmuted"
// @Router       /v1/sessions/{session_id}/chats/unmute [post]
func UnmuteChatHandler(c echo.Context) error {
	engineClient, sessionID, req, httpErr := chatCapability(c)
	if httpErr != nil {
		return httpErr
	}
	if err := engineClient.UnmuteChat(sessionID, req.ChatID); err != nil {
		return engineHTTPError(err)
	}
	return c.JSON(http.StatusOK, GenericResponse{Message: "Chat unmuted"})
}

// MarkChatReadHandler godoc
// @Summary      Mark a chat as read
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        chatActionRequest  body  ChatActionRequest  true  "Chat action payload"
// @Success      200 {object} GenericResponse "Chat marked as read"
// @Router       /v1/sessions/{session_id}/chats/read [post]
func MarkChatReadHandler(c echo.Context) error {
	engineClient, sessionID, req, httpErr := chatCapability(c)
	if httpErr != nil {
		return httpErr
	}
	if err := engineClient.MarkChatRead(sessionID, req.ChatID); err != nil {
		return engineHTTPError(err)
	}
	return c.JSON(http.StatusOK, GenericResponse{Message: "Chat marked as read"})
}

// DeleteChatHandler godoc
// @Summary      Delete a chat
// @Description  Deletes a chat on the device. If the engine does not know the chat, its 404 is passed through.
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Param        chat_id     path  string  true  "Chat JID"
// @Success      200 {object} GenericResponse "Chat deleted"
// @Failure      404 {object} echo.HTTPError "Session or chat not found"
// @Failure      409 {object} echo.HTTPError "Session not connected"
// @Router       /v1/sessions/{session_id}/chats/{chat_id} [delete]
func DeleteChatHandler(c echo.Context) error {
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

	if err := engineClient.DeleteChat(waSession.SessionID, chatID); err != nil {
		logger.Errorf("Failed to delete chat: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Chat deleted"})
}
