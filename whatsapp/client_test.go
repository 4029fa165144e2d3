// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(EngineConfig{baseURL: server.URL, token: "test-token"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client, server
}

func TestSendText(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(SendResult{MessageID: "msg_1", ChatID: "123@s.whatsapp.net"})
	}))

	result, err := client.SendText("wa_abc", "123@s.whatsapp.net", "hello")
	if err != nil {
		t.Fatalf("SendText failed: %v", err)
	}

	if gotPath != "/api/sessions/wa_abc/messages/text" {
		t.Errorf("Unexpected engine path: %s", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Expected engine token to be forwarded, got %q", gotAuth)
	}
	if gotBody["chat_id"] != "123@s.whatsapp.net" || gotBody["text"] != "hello" {
		t.Errorf("Unexpected request body: %v", gotBody)
	}
	if result.MessageID != "msg_1" {
		t.Errorf("Expected message_id msg_1, got %s", result.MessageID)
	}
}

func TestListChatsSendsPaginationAsQueryString(t *testing.T) {
	var gotPath, gotRawQuery string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRawQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]Chat{{ChatID: "123@s.whatsapp.net"}})
	}))

	chats, err := client.ListChats("wa_abc", 10, 20)
	if err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}

	if gotPath != "/api/sessions/wa_abc/chats" {
		t.Errorf("Unexpected engine path: %s", gotPath)
	}
	if gotRawQuery != "limit=10&offset=20" {
		t.Errorf("Expected pagination in the query string, got %q", gotRawQuery)
	}
	if len(chats) != 1 || chats[0].ChatID != "123@s.whatsapp.net" {
		t.Errorf("Unexpected chats: %v", chats)
	}
}

func TestEngineNotFoundSurfaces(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "chat not found"})
	}))

	err := client.DeleteChat("wa_abc", "missing@s.whatsapp.net")
	if err == nil {
		t.Fatal("Expected error for engine 404")
	}

	if !IsEngineNotFound(err) {
		t.Errorf("Expected IsEngineNotFound to be true for %v", err)
	}

	engineErr, ok := err.(*EngineError)
	if !ok {
		t.Fatalf("Expected *EngineError, got %T", err)
	}
	if engineErr.Message != "chat not found" {
		t.Errorf("Expected engine message to be preserved, got %q", engineErr.Message)
	}
}

func TestEngineErrorFallsBackToStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := client.StopSession("wa_abc")
	if err == nil {
		t.Fatal("Expected error for engine 502")
	}
	if IsEngineNotFound(err) {
		t.Error("502 should not report as not-found")
	}
}

func TestGetSessionStatus(t *testing.T) {
	phone := "+237670000000"
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/wa_abc/status" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(SessionStatus{SessionID: "wa_abc", Status: "CONNECTED", PhoneNumber: &phone})
	}))

	status, err := client.GetSessionStatus("wa_abc")
	if err != nil {
		t.Fatalf("GetSessionStatus failed: %v", err)
	}
	if status.Status != "CONNECTED" {
		t.Errorf("Expected CONNECTED, got %s", status.Status)
	}
	if status.PhoneNumber == nil || *status.PhoneNumber != phone {
		t.Errorf("Expected phone number %s, got %v", phone, status.PhoneNumber)
	}
}
