// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
)

func channelCapability(c echo.Context) (*whatsapp.Client, string, string, *echo.HTTPError) {
	logger := c.Logger()

	engineClient, err := whatsapp.NewClient(whatsapp.EngineConfig{})
	if err != nil {
		logger.Error("Failed to initialize WhatsApp engine client:", err)
		return nil, "", "", &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	_, waSession, httpErr := findOwnedWASession(c)
	if httpErr != nil {
		return nil, "", "", httpErr
	}

	if httpErr := requireConnected(waSession); httpErr != nil {
		logger.Errorf("Session %s is not connected.", waSession.SessionID)
		return nil, "", "", httpErr
	}

	channelID := c.Param("channel_id")
	if channelID == "" {
		return nil, "", "", &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Channel ID is required",
		}
	}

	return engineClient, waSession.SessionID, channelID, nil
}

// GetChannelsHandler godoc
// @Summary      List channels
// @Description  Retrieves the channels the session follows or owns.
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {array} whatsapp.Channel "Channels"
// @Failure      404 {object} echo.HTTPError "Session not found"
// @Failure      409 {object} echo.HTTPError "Session not connected"
// @Failure      502 {object} echo.HTTPError "Engine unreachable"
// @Router       /v1/sessions/{session_id}/channels [get]
func GetChannelsHandler(c echo.Context) error {
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

	channels, err := engineClient.ListChannels(waSession.SessionID)
	if err != nil {
		logger.Errorf("Failed to list channels: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, channels)
}

// CreateChannelHandler godoc
// @Summary      Create a channel
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        createChannelRequest  body  CreateChannelRequest  true  "Channel creation payload"
// @Success      201 {object} whatsapp.Channel "Channel created"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Router       /v1/sessions/{session_id}/channels [post]
func CreateChannelHandler(c echo.Context) error {
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

	var req CreateChannelRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create channel request payload:", err)
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

	channel, err := engineClient.CreateChannel(waSession.SessionID, req.Name, req.Description)
	if err != nil {
		logger.Errorf("Failed to create channel: %v", err)
		return engineHTTPError(err)
	}

	logger.Infof("Channel created successfully.")
	return c.JSON(http.StatusCreated, channel)
}

// FollowChannelHandler godoc
// @Summary      Follow a channel
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        channel_id  path  string  true  "Channel JID"
// @Success      200 {object} GenericResponse "Channel followed"
// @Router       /v1/sessions/{session_id}/channels/{channel_id}/follow [post]
func FollowChannelHandler(c echo.Context) error {
	engineClient, sessionID, channelID, httpErr := channelCapability(c)
	if httpErr != nil {
		return httpErr
	}

	if err := engineClient.FollowChannel(sessionID, channelID); err != nil {
		c.Logger().Errorf("Failed to follow channel: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Channel followed"})
}

// UnfollowChannelHandler godoc
// @Summary      Unfollow a channel
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        channel_id  path  string  true  "Channel JID"
// @Success      200 {object} GenericResponse "Channel unfollowed"
// @Router       /v1/sessions/{session_id}/channels/{channel_id}/unfollow [post]
func UnfollowChannelHandler(c echo.Context) error {
	engineClient, sessionID, channelID, httpErr := channelCapability(c)
	if httpErr != nil {
		return httpErr
	}

	if err := engineClient.UnfollowChannel(sessionID, channelID); err != nil {
		c.Logger().Errorf("Failed to unfollow channel: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Channel unfollowed"})
}

// MuteChannelHandler godoc
// @Summary      Mute a channel
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        channel_id  path  string  true  "Channel JID"
// @Success      200 {object} GenericResponse "Channel muted"
// @Router       /v1/sessions/{session_id}/channels/{channel_id}/mute [post]
func MuteChannelHandler(c echo.Context) error {
	engineClient, sessionID, channelID, httpErr := channelCapability(c)
	if httpErr != nil {
		return httpErr
	}

	if err := engineClient.MuteChannel(sessionID, channelID); err != nil {
		c.Logger().Errorf("Failed to mute channel: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Channel muted"})
}
