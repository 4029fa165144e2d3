// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"encoding/json"
	"testing"
)

func TestEventGeneration(t *testing.T) {
	// Test that an Event serializes with the structure consumers expect
	event := NewEvent(EventKindMessageSent, "wa_abc123", map[string]any{
		"chat_id": "123456789@s.whatsapp.net",
	})

	jsonData, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Failed to serialize Event: %v", err)
	}

	var jsonMap map[string]interface{}
	err = json.Unmarshal(jsonData, &jsonMap)
	if err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	requiredFields := []string{"eid", "kind", "session_id", "created_at"}
	for _, field := range requiredFields {
		if _, exists := jsonMap[field]; !exists {
			t.Errorf("Required field %s missing from JSON", field)
		}
	}

	if jsonMap["kind"] != EventKindMessageSent {
		t.Errorf("Expected kind %s, got %v", EventKindMessageSent, jsonMap["kind"])
	}
	if jsonMap["session_id"] != "wa_abc123" {
		t.Errorf("Expected session_id wa_abc123, got %v", jsonMap["session_id"])
	}

	if eid, ok := jsonMap["eid"].(string); !ok || eid == "" {
		t.Error("Expected non-empty eid field")
	}

	data, ok := jsonMap["data"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected data object in JSON")
	}
	if data["chat_id"] != "123456789@s.whatsapp.net" {
		t.Errorf("Expected chat_id in data, got %v", data["chat_id"])
	}
}

func TestEventOmitsEmptyData(t *testing.T) {
	event := NewEvent(EventKindSessionStatus, "wa_abc123", nil)

	jsonData, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Failed to serialize Event: %v", err)
	}

	var jsonMap map[string]interface{}
	if err := json.Unmarshal(jsonData, &jsonMap); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if _, exists := jsonMap["data"]; exists {
		t.Error("Expected data field to be omitted when empty")
	}
}
