// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"fmt"
	"net/url"
	"wagate-server/commons"
)

func (c *Client) ListChannels(sessionID string) ([]Channel, error) {
	commons.Logger.Debugf("Listing channels for session: %s", sessionID)
	var channels []Channel
	if err := c.do("GET", fmt.Sprintf("/api/sessions/%s/channels", url.PathEscape(sessionID)), nil, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (c *Client) CreateChannel(sessionID, name, description string) (*Channel, error) {
	commons.Logger.Debugf("Creating channel %q on session %s", name, sessionID)
	body := map[string]any{
		"name":        name,
		"description": description,
	}
	channel := &Channel{}
	err := c.do("POST", fmt.Sprintf("/api/sessions/%s/channels", url.PathEscape(sessionID)), body, channel)
	if err != nil {
		return nil, err
	}
	commons.Logger.Infof("Channel created: %s on session %s", channel.ChannelID, sessionID)
	return channel, nil
}

func (c *Client) FollowChannel(sessionID, channelID string) error {
	commons.Logger.Debugf("Following channel %s on session %s", channelID, sessionID)
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/channels/%s/follow", url.PathEscape(sessionID), url.PathEscape(channelID)), nil, nil)
}

func (c *Client) UnfollowChannel(sessionID, channelID string) error {
	commons.Logger.Debugf("Unfollowing channel %s on session %s", channelID, sessionID)
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/channels/%s/unfollow", url.PathEscape(sessionID), url.PathEscape(channelID)), nil, nil)
}

func (c *Client) MuteChannel(sessionID, channelID string) error {
	commons.Logger.Debugf("Muting channel %s on session %s", channelID, sessionID)
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/channels/%s/mute", url.PathEscape(sessionID), url.PathEscape(channelID)), nil, nil)
}
