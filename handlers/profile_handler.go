// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
)

// GetProfileHandler godoc
// @Summary      Get session profile
// @Description  Retrieves the profile of the WhatsApp account behind a connected session.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {object} whatsapp.Profile "Profile"
// @Failure      404 {object} echo.HTTPError "Session not found"
// @Failure      409 {object} echo.HTTPError "Session not connected"
// @Failure      502 {object} echo.HTTPError "Engine unreachable"
// @Router       /v1/sessions/{session_id}/profile [get]
func GetProfileHandler(c echo.Context) error {
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

	profile, err := engineClient.GetProfile(waSession.SessionID)
	if err != nil {
		logger.Errorf("Failed to fetch profile: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

func updateProfileField(c echo.Context, apply func(*whatsapp.Client, string, string) error) error {
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

	var req ProfileTextRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid profile update request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Value == "" {
		logger.Error("Value is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "value field is required",
		}
	}

	if err := apply(engineClient, waSession.SessionID, req.Value); err != nil {
		logger.Errorf("Failed to update profile: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Profile updated"})
}

// SetProfileNameHandler godoc
// @Summary      Set profile display name
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        profileTextRequest  body  ProfileTextRequest  true  "New display name"
// @Success      200 {object} GenericResponse "Profile updated"
// @Router       /v1/sessions/{session_id}/profile/name [put]
func SetProfileNameHandler(c echo.Context) error {
	return updateProfileField(c, func(client *whatsapp.Client, sessionID, value string) error {
		return client.SetProfileName(sessionID, value)
	})
}

// SetProfileAboutHandler godoc
// @Summary      Set profile about text
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        profileTextRequest  body  ProfileTextRequest  true  "New about text"
// @Success      200 {object} GenericResponse "Profile updated"
// @Router       /v1/sessions/{session_id}/profile/about [put]
func SetProfileAboutHandler(c echo.Context) error {
	return updateProfileField(c, func(client *whatsapp.Client, sessionID, value string) error {
		return client.SetProfileAbout(sessionID, value)
	})
}

// SetProfilePictureHandler godoc
// @Summary      Set profile picture
// @Description  Replaces the profile picture with the image at the given URL.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        profilePictureRequest  body  ProfilePictureRequest  true  "Picture URL"
// @Success      200 {object} GenericResponse "Profile updated"
// @Router       /v1/sessions/{session_id}/profile/picture [put]
func SetProfilePictureHandler(c echo.Context) error {
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

	var req ProfilePictureRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid profile picture request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.URL == "" {
		logger.Error("URL is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "url field is required",
		}
	}

	if err := engineClient.SetProfilePicture(waSession.SessionID, req.URL); err != nil {
		logger.Errorf("Failed to set profile picture: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Profile updated"})
}
