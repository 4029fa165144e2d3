// SPDX-License-Identifier: GPL-3.0-only

package whatsapp

import (
	"fmt"
	"net/url"
	"wagate-server/commons"
)

func (c *Client) CreateGroup(sessionID, subject string, participants []string) (*Group, error) {
	commons.Logger.Debugf("Creating group %q on session %s", subject, sessionID)
	body := map[string]any{
		"subject":      subject,
		"participants": participants,
	}
	group := &Group{}
	err := c.do("POST", fmt.Sprintf("/api/sessions/%s/groups", url.PathEscape(sessionID)), body, group)
	if err != nil {
		return nil, err
	}
	commons.Logger.Infof("Group created: %s on session %s", group.GroupID, sessionID)
	return group, nil
}

func (c *Client) ListGroups(sessionID string) ([]Group, error) {
	commons.Logger.Debugf("Listing groups for session: %s", sessionID)
	var groups []Group
	if err := c.do("GET", fmt.Sprintf("/api/sessions/%s/groups", url.PathEscape(sessionID)), nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) GetGroup(sessionID, groupID string) (*Group, error) {
	commons.Logger.Debugf("Fetching group %s on session %s", groupID, sessionID)
	group := &Group{}
	err := c.do("GET", fmt.Sprintf("/api/sessions/%s/groups/%s", url.PathEscape(sessionID), url.PathEscape(groupID)), nil, group)
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (c *Client) AddGroupParticipants(sessionID, groupID string, participants []string) error {
	commons.Logger.Debugf("Adding %d participants to group %s", len(participants), groupID)
	body := map[string]any{"participants": participants}
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/groups/%s/participants", url.PathEscape(sessionID), url.PathEscape(groupID)), body, nil)
}

func (c *Client) RemoveGroupParticipants(sessionID, groupID string, participants []string) error {
	commons.Logger.Debugf("Removing %d participants from group %s", len(participants), groupID)
	body := map[string]any{"participants": participants}
	return c.do("DELETE", fmt.Sprintf("/api/sessions/%s/groups/%s/participants", url.PathEscape(sessionID), url.PathEscape(groupID)), body, nil)
}

func (c *Client) SetGroupSubject(sessionID, groupID, subject string) error {
	commons.Logger.Debugf("Setting subject for group %s", groupID)
	body := map[string]any{"subject": subject}
	return c.do("PUT", fmt.Sprintf("/api/sessions/%s/groups/%s/subject", url.PathEscape(sessionID), url.PathEscape(groupID)), body, nil)
}

func (c *Client) SetGroupDescription(sessionID, groupID, description string) error {
	commons.Logger.Debugf("Setting description for group %s", groupID)
	body := map[string]any{"description": description}
	return c.do("PUT", fmt.Sprintf("/api/sessions/%s/groups/%s/description", url.PathEscape(sessionID), url.PathEscape(groupID)), body, nil)
}

func (c *Client) LeaveGroup(sessionID, groupID string) error {
	commons.Logger.Debugf("Leaving group %s on session %s", groupID, sessionID)
	return c.do("POST", fmt.Sprintf("/api/sessions/%s/groups/%s/leave", url.PathEscape(sessionID), url.PathEscape(groupID)), nil, nil)
}

func (c *Client) GetGroupInviteCode(sessionID, groupID string) (string, error) {
	commons.Logger.Debugf("Fetching invite code for group %s", groupID)
	var out struct {
		InviteCode string `json:"invite_code"`
	}
	err := c.do("GET", fmt.Sprintf("/api/sessions/%s/groups/%s/invite-code", url.PathEscape(sessionID), url.PathEscape(groupID)), nil, &out)
	if err != nil {
		return "", err
	}
	return out.InviteCode, nil
}
