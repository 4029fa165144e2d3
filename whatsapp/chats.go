// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"fmt"
	"net/url"
	"strconv"
	"wagate-server/commons"
)

func (c *Client) ListChats(sessionID string, limit, offset int) ([]Chat, error) {
	commons.Logger.Debugf("Listing chats for session: %s", sessionID)
	var chats []Chat
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	path := fmt.Sprintf("/api/sessions/%s/chats", url.PathEscape(sessionID))
	if err := c.doQuery("GET", path, query, nil, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (c *Client) SetChatArchived(sessionID, chatID string, archived bool) error {
	action := "archive"
	if !archived {
		action = "unarchive"
	}
	commons.Logger.Debugf("Chat %s on session %s: %s", chatID, sessionID, action)
	body := map[string]any{"chat_id": chatID}
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/chats/%s", url.PathEscape(sessionID), action), body, nil)
}

func (c *Client) SetChatPinned(sessionID, chatID string, pinned bool) error {
	action := "pin"
	if !pinned {
		action = "unpin"
	}
	commons.Logger.Debugf("Chat %s on session %s: %s", chatID, sessionID, action)
	body := map[string]any{"chat_id": chatID}
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/chats/%s", url.PathEscape(sessionID), action), body, nil)
}

// MuteChat mutes for durationSeconds; 0 means forever.
func (c *Client) MuteChat(sessionID, chatID string, durationSeconds int) error {
	commons.Logger.Debugf("Muting chat %s on session %s", chatID, sessionID)
	body := map[string]any{
		"chat_id":  chatID,
		"duration": durationSeconds,
	}
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/chats/mute", url.PathEscape(sessionID)), body, nil)
}

func (c *Client) UnmuteChat(sessionID, chatID string) error {
	commons.Logger.Debugf("Unmuting chat %s on session %s", chatID, sessionID)
	body := map[string]any{"chat_id": chatID}
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/chats/unmute", url.PathEscape(sessionID)), body, nil)
}

func (c *Client) MarkChatRead(sessionID, chatID string) error {
	commons.Logger.Debugf("Marking chat %s read on session %s", chatID, sessionID)
	body := map[string]any{"chat_id": chatID}
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/chats/read", url.PathEscape(sessionID)), body, nil)
}

func (c *Client) DeleteChat(sessionID, chatID string) error {
	commons.Logger.Debugf("Deleting chat %s on session %s", chatID, sessionID)
	return c.do("DELETE", fmt.Sprintf("/api/sessions/%s/chats/%s", url.PathEscape(sessionID), url.PathEscape(chatID)), nil, nil)
}
