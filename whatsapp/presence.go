// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"fmt"
	"net/url"
	"wagate-server/commons"
)

// SetPresence sets the session presence. Valid values are "available",
// "unavailable", "composing", "recording" and "paused"; chatID is
// required for the chat-directed ones.
func (c *Client) SetPresence(sessionID, presence, chatID string) error {
	commons.Logger.Debugf("Setting presence %q on session %s", presence, sessionID)
	body := map[string]any{
		"presence": presence,
	}
	if chatID != "" {
		body["chat_id"] = chatID
	}
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/presence", url.PathEscape(sessionID)), body, nil)
}

func (c *Client) SubscribePresence(sessionID, chatID string) error {
	commons.Logger.Debugf("Subscribing to presence of %s on session %s", chatID, sessionID)
	body := map[string]any{"chat_id": chatID}
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/presence/subscribe", url.PathEscape(sessionID)), body, nil)
}

func (c *Client) GetPresence(sessionID, chatID string) (*Presence, error) {
	commons.Logger.Debugf("Fetching presence of %s on session %s", chatID, sessionID)
	presence := &Presence{}
	err := c.do("GET", fmt.Sprintf("/api/sessions/%s/presence/%s", url.PathEscape(sessionID), url.PathEscape(chatID)), nil, presence)
	if err != nil {
		return nil, err
	}
	return presence, nil
}
