// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"time"
	"wagate-server/db"
	"wagate-server/middlewares"
	"wagate-server/models"

	"github.com/labstack/echo/v4"
)

func CreateEventLogHandler(eventLog models.EventLog) error {
	if err := db.Conn.Create(&eventLog).Error; err != nil {
		return fmt.Errorf("failed to create event log: %w", err)
	}
	return nil
}

func LogEventHandler(
	category *models.EventCategory,
	status *models.EventStatus,
	sessionID *string,
	chatID *string,
	to *string,
	userID uint,
	description *string,
) error {
	eventLog := models.EventLog{
		Category:    category,
		Status:      status,
		SessionID:   sessionID,
		ChatID:      chatID,
		To:          to,
		UserID:      userID,
		Description: description,
	}
	return CreateEventLogHandler(eventLog)
}

func LogMessageEventFailureHandler(
	sessionID *string,
	chatID *string,
	to *string,
	userID uint,
	description *string,
) error {
	status := new(models.EventStatus)
	*status = models.Failed
	category := new(models.EventCategory)
	*category = models.Message
	return LogEventHandler(category, status, sessionID, chatID, to, userID, description)
}

// LogPendingEventHandler records an in-flight event before its fan-out
// is attempted. The returned row is later resolved to SENT or FAILED
// with MarkEventLogHandler.
func LogPendingEventHandler(
	category models.EventCategory,
	sessionID *string,
	chatID *string,
	to *string,
	userID uint,
	description *string,
) (*models.EventLog, error) {
	status := new(models.EventStatus)
	*status = models.Pending
	eventLog := &models.EventLog{
		Category:    &category,
		Status:      status,
		SessionID:   sessionID,
		ChatID:      chatID,
		To:          to,
		UserID:      userID,
		Description: description,
	}
	if err := db.Conn.Create(eventLog).Error; err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}
	return eventLog, nil
}

func MarkEventLogHandler(eventLog *models.EventLog, status models.EventStatus, description *string) error {
	updates := map[string]any{"status": status}
	if description != nil {
		updates["description"] = *description
	}
	if err := db.Conn.Model(eventLog).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update event log: %w", err)
	}
	return nil
}

// GetEventLogsHandler godoc
// @Summary      Get event logs
// @Description  Retrieves a paginated list of event logs for the authenticated user. Supports filtering by category, status and session.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        page      query   int     false  "Page number (default 1)"
// @Param        page_size query   int     false  "Page size (default 10, max 100)"
// @Param        category  query   string  false  "Filter by event category (MESSAGE, SESSION, AUTH, KEY)"
// @Param        status    query   string  false  "Filter by event status (PENDING, SENT, FAILED)"
// @Param        session_id query  string  false  "Filter by WhatsApp session ID"
// @Success      200 {object} EventLogListResponse "Paginated list of event logs"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/event-logs [get]
func GetEventLogsHandler(c echo.Context) error {
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

	query := db.Conn.Model(&models.EventLog{}).Where("user_id = ?", user.ID)
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if sessionID := c.QueryParam("session_id"); sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count event logs: %v", err)
		return echo.ErrInternalServerError
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var eventLogs []models.EventLog
	if err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&eventLogs).Error; err != nil {
		logger.Errorf("Failed to fetch event logs: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]EventLogDetails, 0, len(eventLogs))
	for _, eventLog := range eventLogs {
		detail := EventLogDetails{
			EID:         eventLog.EID.String(),
			SessionID:   eventLog.SessionID,
			ChatID:      eventLog.ChatID,
			Description: eventLog.Description,
			To:          eventLog.To,
			CreatedAt:   eventLog.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   eventLog.UpdatedAt.Format(time.RFC3339),
		}
		if eventLog.Category != nil {
			category := string(*eventLog.Category)
			detail.Category = &category
		}
		if eventLog.Status != nil {
			status := string(*eventLog.Status)
			detail.Status = &status
		}
		details = append(details, detail)
	}

	return c.JSON(http.StatusOK, EventLogListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "Event logs retrieved successfully",
	})
}

// GetEventLogsSummaryHandler godoc
// @Summary      Get event logs summary
// @Description  Retrieves aggregate counts of the authenticated user's event logs grouped by status.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object} EventLogSummaryResponse "Event logs summary"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/event-logs/summary [get]
func GetEventLogsSummaryHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	summary := EventLogSummaryData{}
	counts := []struct {
		Status *models.EventStatus
		Count  int64
	}{}

	if err := db.Conn.Model(&models.EventLog{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", user.ID).
		Group("status").
		Scan(&counts).Error; err != nil {
		logger.Errorf("Failed to aggregate event logs: %v", err)
		return echo.ErrInternalServerError
	}

	for _, row := range counts {
		summary.TotalCount += row.Count
		if row.Status == nil {
			continue
		}
		switch *row.Status {
		case models.Sent:
			summary.TotalSent += row.Count
		case models.Failed:
			summary.TotalFailed += row.Count
		case models.Pending:
			summary.TotalPending += row.Count
		}
	}

	return c.JSON(http.StatusOK, EventLogSummaryResponse{
		Data:    summary,
		Message: "Event logs summary retrieved successfully",
	})
}
