// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"fmt"
	"net/url"
	"wagate-server/commons"
)

func (c *Client) GetProfile(sessionID string) (*Profile, error) {
	commons.Logger.Debugf("Fetching profile for session: %s", sessionID)
	profile := &Profile{}
	err := c.do("GET", fmt.Sprintf("/api/sessions/%s/profile", url.PathEscape(sessionID)), nil, profile)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *Client) SetProfileName(sessionID, name string) error {
	commons.Logger.Debugf("Setting profile name on session %s", sessionID)
	body := map[string]any{"name": name}
	return c.do("PUT", fmt.Sprintf("/api/sessions/%s/profile/name", url.PathEscape(sessionID)), body, nil)
}

func (c *Client) SetProfileAbout(sessionID, about string) error {
	commons.Logger.Debugf("Setting profile about on session %s", sessionID)
	body := map[string]any{"about": about}
	return c.do("PUT", fmt.Sprintf("/api/sessions/%s/profile/about", url.PathEscape(sessionID)), body, nil)
}

func (c *Client) SetProfilePicture(sessionID, pictureURL string) error {
	commons.Logger.Debugf("Setting profile picture on session %s", sessionID)
	body := map[string]any{"url": pictureURL}
	return c.do("PUT", fmt.Sprintf("/api/sessions/%s/profile/picture", url.PathEscape(sessionID)), body, nil)
}
