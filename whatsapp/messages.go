// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"fmt"
	"net/url"
	"wagate-server/commons"
)

func (c *Client) SendText(sessionID, chatID, text string) (*SendResult, error) {
	commons.Logger.Debugf("Sending text message on session %s to %s", sessionID, chatID)
	body := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	result := &SendResult{}
	err := c.do("POST", fmt.Sprintf("/api/sessions/%s/messages/text", url.PathEscape(sessionID)), body, result)
	if err != nil {
		return nil, err
	}
	commons.Logger.Infof("Message %s sent on session %s", result.MessageID, sessionID)
	return result, nil
}

func (c *Client) SendMedia(sessionID, chatID, mediaURL, caption string) (*SendResult, error) {
	commons.Logger.Debugf("Sending media message on session %s to %s", sessionID, chatID)
	body := map[string]any{
		"chat_id": chatID,
		"url":     mediaURL,
		"caption": caption,
	}
	result := &SendResult{}
	err := c.do("POST", fmt.Sprintf("/api/sessions/%s/messages/media", url.PathEscape(sessionID)), body, result)
	if err != nil {
		return nil, err
	}
	commons.Logger.Infof("Media message %s sent on session %s", result.MessageID, sessionID)
	return result, nil
}

func (c *Client) SendStatusText(sessionID, text string) (*SendResult, error) {
	commons.Logger.Debugf("Publishing text status on session %s", sessionID)
	body := map[string]any{
		"text": text,
	}
	result := &SendResult{}
	err := c.do("POST", fmt.Sprintf("/api/sessions/%s/status/text", url.PathEscape(sessionID)), body, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
