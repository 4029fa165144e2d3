// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
)

// groupCapability resolves the session and group path params and
// enforces the CONNECTED precondition.
func groupCapability(c echo.Context) (*whatsapp.Client, string, string, *echo.HTTPError) {
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

	groupID := c.Param("group_id")
	if groupID == "" {
		return nil, "", "", &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Group ID is required",
		}
	}

	return engineClient, waSession.SessionID, groupID, nil
}

// resolveParticipants maps each entry to a JID, accepting E.164
// numbers and explicit JIDs.
func resolveParticipants(participants []string) ([]string, *echo.HTTPError) {
	if len(participants) == 0 {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "participants field must be a non-empty array",
		}
	}
	resolved := make([]string, 0, len(participants))
	for _, participant := range participants {
		jid, httpErr := resolveChatJID(participant)
		if httpErr != nil {
			return nil, &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "participants entries must be valid E.164 phone numbers or JIDs: " + participant,
			}
		}
		resolved = append(resolved, jid)
	}
	return resolved, nil
}

// CreateGroupHandler godoc
// @Summary      Create a group
// @Description  Creates a WhatsApp group with the given subject and initial participants.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Param        createGroupRequest  body  CreateGroupRequest  true  "Group creation payload"
// @Success      201 {object} whatsapp.Group "Group created"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      404 {object} echo.HTTPError "Session not found"
// @Failure      409 {object} echo.HTTPError "Session not connected"
// @Failure      502 {object} echo.HTTPError "Engine unreachable"
// @Router       /v1/sessions/{session_id}/groups [post]
func CreateGroupHandler(c echo.Context) error {
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

	var req CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create group request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Subject == "" {
		logger.Error("Subject is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "subject field is required",
		}
	}

	participants, httpErr := resolveParticipants(req.Participants)
	if httpErr != nil {
		logger.Error("Invalid participants.")
		return httpErr
	}

	group, err := engineClient.CreateGroup(waSession.SessionID, req.Subject, participants)
	if err != nil {
		logger.Errorf("Failed to create group: %v", err)
		return engineHTTPError(err)
	}

	logger.Infof("Group created successfully.")
	return c.JSON(http.StatusCreated, group)
}

// GetGroupsHandler godoc
// @Summary      List groups
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {array} whatsapp.Group "Groups the session participates in"
// @Router       /v1/sessions/{session_id}/groups [get]
func GetGroupsHandler(c echo.Context) error {
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

	groups, err := engineClient.ListGroups(waSession.SessionID)
	if err != nil {
		logger.Errorf("Failed to list groups: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, groups)
}

// GetGroupHandler godoc
// @Summary      Get a group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        group_id    path  string  true  "Group JID"
// @Success      200 {object} whatsapp.Group "Group details with participants"
// @Failure      404 {object} echo.HTTPError "Session or group not found"
// @Router       /v1/sessions/{session_id}/groups/{group_id} [get]
func GetGroupHandler(c echo.Context) error {
	engineClient, sessionID, groupID, httpErr := groupCapability(c)
	if httpErr != nil {
		return httpErr
	}

	group, err := engineClient.GetGroup(sessionID, groupID)
	if err != nil {
		c.Logger().Errorf("Failed to fetch group: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, group)
}

// AddGroupParticipantsHandler godoc
// @Summary      Add group participants
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        group_id    path  string  true  "Group JID"
// @Param        groupParticipantsRequest  body  GroupParticipantsRequest  true  "Participants payload"
// @Success      200 {object} GenericResponse "Participants added"
// @Router       /v1/sessions/{session_id}/groups/{group_id}/participants [post]
func AddGroupParticipantsHandler(c echo.Context) error {
	engineClient, sessionID, groupID, httpErr := groupCapability(c)
	if httpErr != nil {
		return httpErr
	}

	var req GroupParticipantsRequest
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	participants, httpErr := resolveParticipants(req.Participants)
	if httpErr != nil {
		return httpErr
	}

	if err := engineClient.AddGroupParticipants(sessionID, groupID, participants); err != nil {
		c.Logger().Errorf("Failed to add group participants: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Participants added"})
}

// RemoveGroupParticipantsHandler godoc
// @Summary      Remove group participants
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        group_id    path  string  true  "Group JID"
// @Param        groupParticipantsRequest  body  GroupParticipantsRequest  true  "Participants payload"
// @Success      200 {object} GenericResponse "Participants removed"
// @Router       /v1/sessions/{session_id}/groups/{group_id}/participants [delete]
func RemoveGroupParticipantsHandler(c echo.Context) error {
	engineClient, sessionID, groupID, httpErr := groupCapability(c)
	if httpErr != nil {
		return httpErr
	}

	var req GroupParticipantsRequest
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	participants, httpErr := resolveParticipants(req.Participants)
	if httpErr != nil {
		return httpErr
	}

	if err := engineClient.RemoveGroupParticipants(sessionID, groupID, participants); err != nil {
		c.Logger().Errorf("Failed to remove group participants: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Participants removed"})
}

// SetGroupSubjectHandler godoc
// @Summary      Set group subject
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        group_id    path  string  true  "Group JID"
// @Param        groupTextRequest  body  GroupTextRequest  true  "New subject"
// @Success      200 {object} GenericResponse "Subject updated"
// @Router       /v1/sessions/{session_id}/groups/{group_id}/subject [put]
func SetGroupSubjectHandler(c echo.Context) error {
	engineClient, sessionID, groupID, httpErr := groupCapability(c)
	if httpErr != nil {
		return httpErr
	}

	var req GroupTextRequest
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Value == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "value field is required",
		}
	}

	if err := engineClient.SetGroupSubject(sessionID, groupID, req.Value); err != nil {
		c.Logger().Errorf("Failed to set group subject: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Subject updated"})
}

// SetGroupDescriptionHandler godoc
// @Summary      Set group description
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        group_id    path  string  true  "Group JID"
// @Param        groupTextRequest  body  GroupTextRequest  true  "New description"
// @Success      200 {object} GenericResponse "Description updated"
// @Router       /v1/sessions/{session_id}/groups/{group_id}/description [put]
func SetGroupDescriptionHandler(c echo.Context) error {
	engineClient, sessionID, groupID, httpErr := groupCapability(c)
	if httpErr != nil {
		return httpErr
	}

	var req GroupTextRequest
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if err := engineClient.SetGroupDescription(sessionID, groupID, req.Value); err != nil {
		c.Logger().Errorf("Failed to set group description: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Description updated"})
}

// LeaveGroupHandler godoc
// @Summary      Leave a group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        group_id    path  string  true  "Group JID"
// @Success      200 {object} GenericResponse "Left group"
// @Router       /v1/sessions/{session_id}/groups/{group_id}/leave [post]
func LeaveGroupHandler(c echo.Context) error {
	engineClient, sessionID, groupID, httpErr := groupCapability(c)
	if httpErr != nil {
		return httpErr
	}

	if err := engineClient.LeaveGroup(sessionID, groupID); err != nil {
		c.Logger().Errorf("Failed to leave group: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, GenericResponse{Message: "Left group"})
}

// GetGroupInviteCodeHandler godoc
// @Summary      Get group invite code
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        session_id  path  string  true  "Session ID"
// @Param        group_id    path  string  true  "Group JID"
// @Success      200 {object} map[string]string "Invite code"
// @Router       /v1/sessions/{session_id}/groups/{group_id}/invite-code [get]
func GetGroupInviteCodeHandler(c echo.Context) error {
	engineClient, sessionID, groupID, httpErr := groupCapability(c)
	if httpErr != nil {
		return httpErr
	}

	inviteCode, err := engineClient.GetGroupInviteCode(sessionID, groupID)
	if err != nil {
		c.Logger().Errorf("Failed to fetch invite code: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"invite_code": inviteCode,
		"message":     "Invite code retrieved successfully",
	})
}
