// SPDX-License-Identifier: GPL-3.0-only

package models

import "slices"

// Scope strings gate which API-key holders may invoke which capability
// group. The catalog is static; keys store a subset of it.
const (
	ScopeSessionsRead  = "sessions:read"
	ScopeSessionsWrite = "sessions:write"
	ScopeMessagesSend  = "messages:send"
	ScopeChatsRead     = "chats:read"
	ScopeChatsWrite    = "chats:write"
	ScopeGroupsRead    = "groups:read"
	ScopeGroupsWrite   = "groups:write"
	ScopeChannelsRead  = "channels:read"
	ScopeChannelsWrite = "channels:write"
	ScopeLabelsRead    = "labels:read"
	ScopeLabelsWrite   = "labels:write"
	ScopePresenceRead  = "presence:read"
	ScopePresenceWrite = "presence:write"
	ScopeStatusWrite   = "status:write"
	ScopeProfileRead   = "profile:read"
	ScopeProfileWrite  = "profile:write"
	ScopeEventsRead    = "events:read"
)

var ScopeDescriptions = map[string]string{
	ScopeSessionsRead:  "List WhatsApp sessions and read their status",
	ScopeSessionsWrite: "Create, start, stop and delete WhatsApp sessions",
	ScopeMessagesSend:  "Send messages from a connected session",
	ScopeChatsRead:     "List chats",
	ScopeChatsWrite:    "Archive, pin, mute, mark read and delete chats",
	ScopeGroupsRead:    "List and inspect groups",
	ScopeGroupsWrite:   "Create groups and manage participants and metadata",
	ScopeChannelsRead:  "List channels",
	ScopeChannelsWrite: "Create, follow, unfollow and mute channels",
	ScopeLabelsRead:    "List labels",
	ScopeLabelsWrite:   "Create and delete labels, assign labels to chats",
	ScopePresenceRead:  "Read chat presence",
	ScopePresenceWrite: "Set presence and subscribe to presence updates",
	ScopeStatusWrite:   "Publish status updates",
	ScopeProfileRead:   "Read the session profile",
	ScopeProfileWrite:  "Update the session profile",
	ScopeEventsRead:    "Read the account event log",
}

// AllScopes lists the catalog in a stable order.
func AllScopes() []string {
	return []string{
		ScopeSessionsRead,
		ScopeSessionsWrite,
		ScopeMessagesSend,
		ScopeChatsRead,
		ScopeChatsWrite,
		ScopeGroupsRead,
		ScopeGroupsWrite,
		ScopeChannelsRead,
		ScopeChannelsWrite,
		ScopeLabelsRead,
		ScopeLabelsWrite,
		ScopePresenceRead,
		ScopePresenceWrite,
		ScopeStatusWrite,
		ScopeProfileRead,
		ScopeProfileWrite,
		ScopeEventsRead,
	}
}

// ValidateScopes rejects empty scope lists, duplicates and scopes
// outside the catalog. Returns the offending scope when invalid.
func ValidateScopes(scopes []string) (string, bool) {
	if len(scopes) == 0 {
		return "", false
	}
	catalog := AllScopes()
	seen := map[string]bool{}
	for _, s := range scopes {
		if !slices.Contains(catalog, s) {
			return s, false
		}
		if seen[s] {
			return s, false
		}
		seen[s] = true
	}
	return "", true
}
