// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"testing"
	"wagate-server/db"
	"wagate-server/models"
)

func TestPendingEventResolvesToFailed(t *testing.T) {
	setupHandlerTestDB(t)
	user := createHandlerTestUser(t)

	sessionID := "wa_0123456789abcdef"
	pendingLog, err := LogPendingEventHandler(models.WASession, &sessionID, nil, nil, user.ID, nil)
	if err != nil {
		t.Fatalf("LogPendingEventHandler failed: %v", err)
	}

	var stored models.EventLog
	if err := db.Conn.First(&stored, pendingLog.ID).Error; err != nil {
		t.Fatalf("Failed to reload event log: %v", err)
	}
	if stored.Status == nil || *stored.Status != models.Pending {
		t.Fatalf("Expected PENDING status before fan-out, got %v", stored.Status)
	}

	reason := "publish failed: connection refused"
	if err := MarkEventLogHandler(pendingLog, models.Failed, &reason); err != nil {
		t.Fatalf("MarkEventLogHandler failed: %v", err)
	}

	if err := db.Conn.First(&stored, pendingLog.ID).Error; err != nil {
		t.Fatalf("Failed to reload event log: %v", err)
	}
	if stored.Status == nil || *stored.Status != models.Failed {
		t.Errorf("Expected FAILED status after a publish error, got %v", stored.Status)
	}
	if stored.Description == nil || *stored.Description != reason {
		t.Errorf("Expected failure reason to be recorded, got %v", stored.Description)
	}
}

func TestPendingEventResolvesToSent(t *testing.T) {
	setupHandlerTestDB(t)
	user := createHandlerTestUser(t)

	sessionID := "wa_0123456789abcdef"
	chatID := "123@s.whatsapp.net"
	pendingLog, err := LogPendingEventHandler(models.Message, &sessionID, &chatID, nil, user.ID, nil)
	if err != nil {
		t.Fatalf("LogPendingEventHandler failed: %v", err)
	}

	if err := MarkEventLogHandler(pendingLog, models.Sent, nil); err != nil {
		t.Fatalf("MarkEventLogHandler failed: %v", err)
	}

	var stored models.EventLog
	if err := db.Conn.First(&stored, pendingLog.ID).Error; err != nil {
		t.Fatalf("Failed to reload event log: %v", err)
	}
	if stored.Status == nil || *stored.Status != models.Sent {
		t.Errorf("Expected SENT status after a successful publish, got %v", stored.Status)
	}
	if stored.ChatID == nil || *stored.ChatID != chatID {
		t.Errorf("Expected chat ID to be preserved, got %v", stored.ChatID)
	}
}
