// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"wagate-server/crypto"
	"wagate-server/db"
	"wagate-server/middlewares"
	"wagate-server/models"
	"wagate-server/rabbitmq"
	"wagate-server/whatsapp"

	"github.com/labstack/echo/v4"
)

// publishSessionStatusEvent fans a lifecycle change out to the
// account's event exchange and records it in the event log. Runs in a
// goroutine after the handler returns, so it takes the logger by value
// instead of the pooled echo.Context.
func publishSessionStatusEvent(logger echo.Logger, user *models.User, waSession *models.WhatsAppSession) {
	description := "Session status changed to " + string(waSession.Status)
	pendingLog, err := LogPendingEventHandler(models.WASession, &waSession.SessionID, nil, nil, user.ID, &description)
	if err != nil {
		logger.Errorf("Failed to record session event: %v", err)
	}

	rmqClient, err := rabbitmq.NewClient(rabbitmq.RabbitMQConfig{})
	if err != nil {
		logger.Error("Failed to initialize RabbitMQ client:", err)
		if pendingLog != nil {
			reason := err.Error()
			_ = MarkEventLogHandler(pendingLog, models.Failed, &reason)
		}
		return
	}

	event := models.NewEvent(models.EventKindSessionStatus, waSession.SessionID, map[string]any{
		"status": string(waSession.Status),
	})
	if err := rmqClient.PublishEvent(user.AccountID, event); err != nil {
		logger.Errorf("Failed to publish session status event: %v", err)
		if pendingLog != nil {
			reason := err.Error()
			_ = MarkEventLogHandler(pendingLog, models.Failed, &reason)
		}
		return
	}

	if pendingLog != nil {
		_ = MarkEventLogHandler(pendingLog, models.Sent, nil)
	}
}

// CreateWASessionHandler godoc
// @Summary      Create a WhatsApp session
// @Description  Registers a new WhatsApp session for the authenticated user and provisions it on the engine. The session starts in STOPPED state.
// @Tags         whatsapp-sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        createWASessionRequest  body  CreateWASessionRequest  true  "Session creation payload"
// @Success      201 {object} WASessionResponse "Session created successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      409 {object} echo.HTTPError     "Duplicate session name"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/sessions [post]
func CreateWASessionHandler(c echo.Context) error {
	logger := c.Logger()

	engineClient, err := whatsapp.NewClient(whatsapp.EngineConfig{})
	if err != nil {
		logger.Error("Failed to initialize WhatsApp engine client:", err)
		return echo.ErrInternalServerError
	}

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	var req CreateWASessionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create session request payload:", err)
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

	count := db.Conn.Where("name = ? AND user_id = ?", req.Name, user.ID).First(&models.WhatsAppSession{}).RowsAffected
	if count > 0 {
		logger.Errorf("Duplicate session name detected.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "You already have a session with this name. Please try another one.",
		}
	}

	sessionID, err := crypto.GenerateRandomString("wa_", 16, "hex")
	if err != nil {
		logger.Errorf("Failed to generate session ID: %v", err)
		return echo.ErrInternalServerError
	}

	waSession := models.WhatsAppSession{
		SessionID: sessionID,
		Name:      req.Name,
		Status:    models.WASessionStopped,
		UserID:    user.ID,
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Create(&waSession).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to create WhatsApp session: %v", err)
		return echo.ErrInternalServerError
	}

	if err := engineClient.CreateSession(sessionID); err != nil {
		tx.Rollback()
		logger.Errorf("Failed to create engine session: %v", err)
		return engineHTTPError(err)
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("WhatsApp session created successfully.")
	return c.JSON(http.StatusCreated, WASessionResponse{
		Session: waSessionDetails(waSession),
		Message: "Session created successfully",
	})
}

// GetWASessionsHandler godoc
// @Summary      List WhatsApp sessions
// @Description  Retrieves a paginated list of the authenticated user's WhatsApp sessions.
// @Tags         whatsapp-sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        page     query   int     false  "Page number (default 1)"
// @Param        page_size query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} WASessionListResponse "Paginated list of sessions"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/sessions [get]
func GetWASessionsHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	page, pageSize, offset := parsePagination(c)

	var total int64
	if err := db.Conn.Model(&models.WhatsAppSession{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count sessions: %v", err)
		return echo.ErrInternalServerError
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var waSessions []models.WhatsAppSession
	if err := db.Conn.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&waSessions).Error; err != nil {
		logger.Errorf("Failed to fetch sessions: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]WASessionDetails, 0, len(waSessions))
	for _, waSession := range waSessions {
		details = append(details, waSessionDetails(waSession))
	}

	return c.JSON(http.StatusOK, WASessionListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "Sessions retrieved successfully",
	})
}

// GetWASessionHandler godoc
// @Summary      Get a WhatsApp session
// @Description  Retrieves one WhatsApp session by its session ID.
// @Tags         whatsapp-sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {object} WASessionResponse "Session retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "Session not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/sessions/{session_id} [get]
func GetWASessionHandler(c echo.Context) error {
	_, waSession, httpErr := findOwnedWASession(c)
	if httpErr != nil {
		return httpErr
	}

	return c.JSON(http.StatusOK, WASessionResponse{
		Session: waSessionDetails(*waSession),
		Message: "Session retrieved successfully",
	})
}

// DeleteWASessionHandler godoc
// @Summary      Delete a WhatsApp session
// @Description  Deletes a WhatsApp session. The engine logs the device out and discards its credentials.
// @Tags         whatsapp-sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {object} GenericResponse "Session deleted successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "Session not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/sessions/{session_id} [delete]
func DeleteWASessionHandler(c echo.Context) error {
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

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Unscoped().Delete(waSession).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to delete WhatsApp session: %v", err)
		return echo.ErrInternalServerError
	}

	if err := engineClient.DeleteSession(waSession.SessionID); err != nil && !whatsapp.IsEngineNotFound(err) {
		tx.Rollback()
		logger.Errorf("Failed to delete engine session: %v", err)
		return engineHTTPError(err)
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("WhatsApp session deleted successfully.")
	return c.JSON(http.StatusOK, GenericResponse{
		Message: "Session deleted successfully",
	})
}

// StartWASessionHandler godoc
// @Summary      Start a WhatsApp session
// @Description  Asks the engine to start the session. A fresh session moves to SCAN_QR and must be paired via the QR endpoint; a previously paired one reconnects to CONNECTED.
// @Tags         whatsapp-sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {object} WASessionResponse "Session starting"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "Session not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Failure      502 {object} echo.HTTPError     "Engine unreachable"
// @Router       /v1/sessions/{session_id}/start [post]
func StartWASessionHandler(c echo.Context) error {
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

	engineStatus, err := engineClient.StartSession(waSession.SessionID)
	if err != nil {
		logger.Errorf("Failed to start engine session: %v", err)
		return engineHTTPError(err)
	}

	waSession.Status = models.WASessionStatus(engineStatus.Status)
	if engineStatus.PhoneNumber != nil {
		waSession.PhoneNumber = engineStatus.PhoneNumber
	}
	if err := db.Conn.Save(waSession).Error; err != nil {
		logger.Errorf("Failed to update session status: %v", err)
		return echo.ErrInternalServerError
	}

	go publishSessionStatusEvent(logger, user, waSession)

	logger.Infof("WhatsApp session starting.")
	return c.JSON(http.StatusOK, WASessionResponse{
		Session: waSessionDetails(*waSession),
		Message: "Session starting",
	})
}

// StopWASessionHandler godoc
// @Summary      Stop a WhatsApp session
// @Description  Asks the engine to disconnect the session. Pairing credentials are kept so the session can reconnect later without scanning a QR code.
// @Tags         whatsapp-sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {object} WASessionResponse "Session stopped"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "Session not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Failure      502 {object} echo.HTTPError     "Engine unreachable"
// @Router       /v1/sessions/{session_id}/stop [post]
func StopWASessionHandler(c echo.Context) error {
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

	if err := engineClient.StopSession(waSession.SessionID); err != nil {
		logger.Errorf("Failed to stop engine session: %v", err)
		return engineHTTPError(err)
	}

	waSession.Status = models.WASessionStopped
	if err := db.Conn.Save(waSession).Error; err != nil {
		logger.Errorf("Failed to update session status: %v", err)
		return echo.ErrInternalServerError
	}

	go publishSessionStatusEvent(logger, user, waSession)

	logger.Infof("WhatsApp session stopped.")
	return c.JSON(http.StatusOK, WASessionResponse{
		Session: waSessionDetails(*waSession),
		Message: "Session stopped",
	})
}

// GetWASessionStatusHandler godoc
// @Summary      Get live session status
// @Description  Queries the engine for the session's current status and syncs the local record with it.
// @Tags         whatsapp-sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {object} WASessionResponse "Session status retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "Session not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Failure      502 {object} echo.HTTPError     "Engine unreachable"
// @Router       /v1/sessions/{session_id}/status [get]
func GetWASessionStatusHandler(c echo.Context) error {
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

	engineStatus, err := engineClient.GetSessionStatus(waSession.SessionID)
	if err != nil {
		logger.Errorf("Failed to fetch engine session status: %v", err)
		return engineHTTPError(err)
	}

	previousStatus := waSession.Status
	waSession.Status = models.WASessionStatus(engineStatus.Status)
	if engineStatus.PhoneNumber != nil {
		waSession.PhoneNumber = engineStatus.PhoneNumber
	}
	if err := db.Conn.Save(waSession).Error; err != nil {
		logger.Errorf("Failed to sync session status: %v", err)
		return echo.ErrInternalServerError
	}

	if previousStatus != waSession.Status {
		go publishSessionStatusEvent(logger, user, waSession)
	}

	return c.JSON(http.StatusOK, WASessionResponse{
		Session: waSessionDetails(*waSession),
		Message: "Session status retrieved successfully",
	})
}

// GetWASessionQRHandler godoc
// @Summary      Get pairing QR code
// @Description  Retrieves the current QR payload for a session awaiting pairing. QR payloads rotate; poll this endpoint until the session reports CONNECTED.
// @Tags         whatsapp-sessions
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        session_id  path  string  true  "Session ID"
// @Success      200 {object} QRCodeResponse "QR code retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      404 {object} echo.HTTPError     "Session not found or no QR pending"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Failure      502 {object} echo.HTTPError     "Engine unreachable"
// @Router       /v1/sessions/{session_id}/qr [get]
func GetWASessionQRHandler(c echo.Context) error {
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

	qr, err := engineClient.GetQRCode(waSession.SessionID)
	if err != nil {
		logger.Errorf("Failed to fetch QR code: %v", err)
		return engineHTTPError(err)
	}

	return c.JSON(http.StatusOK, QRCodeResponse{
		QR:        qr.QR,
		ExpiresIn: qr.ExpiresIn,
		Message:   "QR code retrieved successfully",
	})
}
