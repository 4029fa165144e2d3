// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is the wire payload published to an account's wa.events
// exchange. It is not persisted; EventLog is the durable record.
type Event struct {
	EID       string         `json:"eid"`
	Kind      string         `json:"kind"`
	SessionID string         `json:"session_id"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt string         `json:"created_at"`
}

const (
	EventKindMessageSent   = "message.sent"
	EventKindSessionStatus = "session.status"
)

func NewEvent(kind, sessionID string, data map[string]any) *Event {
	return &Event{
		EID:       uuid.New().String(),
		Kind:      kind,
		SessionID: sessionID,
		Data:      data,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
