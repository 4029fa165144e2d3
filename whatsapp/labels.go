// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"fmt"
	"net/url"
	"wagate-server/commons"
)

func (c *Client) ListLabels(sessionID string) ([]Label, error) {
	commons.Logger.Debugf("Listing labels for session: %s", sessionID)
	var labels []Label
	if err := c.do("GET", fmt.Sprintf("/api/sessions/%s/labels", url.PathEscape(sessionID)), nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (c *Client) UpsertLabel(sessionID, name string, color int) (*Label, error) {
	commons.Logger.Debugf("Upserting label %q on session %s", name, sessionID)
	body := map[string]any{
		"name":  name,
		"color": color,
	}
	label := &Label{}
	err := c.do("POST", fmt.Sprintf("/api/sessions/%s/labels", url.PathEscape(sessionID)), body, label)
	if err != nil {
		return nil, err
	}
	return label, nil
}

func (c *Client) DeleteLabel(sessionID, labelID string) error {
	commons.Logger.Debugf("Deleting label %s on session %s", labelID, sessionID)
	return c.do("DELETE", fmt.Sprintf("/api/sessions/%s/labels/%s", url.PathEscape(sessionID), url.PathEscape(labelID)), nil, nil)
}

// SetChatLabels replaces the full label set of a chat.
func (c *Client) SetChatLabels(sessionID, chatID string, labelIDs []string) error {
	commons.Logger.Debugf("Setting %d labels on chat %s", len(labelIDs), chatID)
	body := map[string]any{"label_ids": labelIDs}
	return c.do("PUT", fmt.Sprintf("/api/sessions/%s/chats/%s/labels", url.PathEscape(sessionID), url.PathEscape(chatID)), body, nil)
}
