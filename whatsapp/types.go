// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"fmt"
	"net/http"
	"net/url"
)

type EngineConfig struct {
	baseURL string
	token   string
}

// Client drives one external WhatsApp engine node over its HTTP API.
type Client struct {
	BaseURL    *url.URL
	Token      string
	HTTPClient *http.Client
}

// EngineError is a non-2xx response from the engine, preserved so
// handlers can pass the engine's verdict (404, 409, ...) through.
type EngineError struct {
	StatusCode int
	Message    string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine returned %d: %s", e.StatusCode, e.Message)
}

// SessionStatus mirrors the engine's view of one session.
type SessionStatus struct {
	SessionID   string  `json:"session_id"`
	Status      string  `json:"status"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

type QRCode struct {
	QR        string `json:"qr"`
	ExpiresIn int    `json:"expires_in"`
}

type SendResult struct {
	MessageID string `json:"message_id"`
	ChatID    string `json:"chat_id"`
}

type Chat struct {
	ChatID      string  `json:"chat_id"`
	Name        string  `json:"name"`
	UnreadCount int     `json:"unread_count"`
	Archived    bool    `json:"archived"`
	Pinned      bool    `json:"pinned"`
	MutedUntil  *string `json:"muted_until,omitempty"`
}

type Participant struct {
	JID     string `json:"jid"`
	IsAdmin bool   `json:"is_admin"`
}

type Group struct {
	GroupID      string        `json:"group_id"`
	Subject      string        `json:"subject"`
	Description  *string       `json:"description,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
}

type Channel struct {
	ChannelID   string  `json:"channel_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Followed    bool    `json:"followed"`
}

type Label struct {
	LabelID string `json:"label_id"`
	Name    string `json:"name"`
	Color   int    `json:"color"`
}

type Presence struct {
	ChatID   string  `json:"chat_id"`
	Presence string  `json:"presence"`
	LastSeen *string `json:"last_seen,omitempty"`
}

type Profile struct {
	JID     string  `json:"jid"`
	Name    string  `json:"name"`
	About   *string `json:"about,omitempty"`
	Picture *string `json:"picture,omitempty"`
}
