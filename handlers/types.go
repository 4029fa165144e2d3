// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model SignupRequest
type SignupRequest struct {
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
	// User's email address
	// required: true
	Email string `json:"email" example:"user@example.com"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// User's email address
	Email string `json:"email" example:"user@example.com"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model AuthResponse
type AuthResponse struct {
	// Authentication session token
	// Should be used in the Authorization header as a Bearer token.
	SessionToken string `json:"session_token" example:"sample_session_token"`
	// Message indicating successful operation
	Message string `json:"message" example:"Operation successful"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model GetUserResponse
type GetUserResponse struct {
	// Unique identifier for the user
	AccountID string `json:"account_id" example:"acct_1234567890"`
	// Credential for the account's AMQP event vhost
	AccountToken string `json:"account_token" example:"sample_account_token"`
	// Email address associated with the user's account
	Email string `json:"email" example:"user@example.com"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"User retrieved successfully"`
}

// swagger:model DeleteAccountRequest
type DeleteAccountRequest struct {
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	CurrentPassword string `json:"current_password" example:"MySecretPassword@123"`
	// New password
	// required: true
	NewPassword string `json:"new_password" example:"MyNewPassword@456"`
}

// swagger:model CreateAPIKeyRequest
type CreateAPIKeyRequest struct {
	// Name of the API key (3-100 characters)
	Name string `json:"name" example:"CRM integration"`
	// Description of the API key
	Description *string `json:"description" example:"Key used by the CRM to send order updates."`
	// Scopes granted to the key, drawn from the scope catalog
	Scopes []string `json:"scopes" example:"[\"messages:send\",\"chats:read\"]"`
	// Expiration timestamp for the API key (RFC 3339, optional)
	ExpiresAt *string `json:"expires_at" example:"2027-12-31T00:00:00Z"`
}

// swagger:model UpdateAPIKeyRequest
type UpdateAPIKeyRequest struct {
	// New name for the API key
	Name *string `json:"name" example:"CRM integration"`
	// New description
	Description *string `json:"description" example:"Key used by the CRM to send order updates."`
	// Replacement scope list
	Scopes []string `json:"scopes" example:"[\"messages:send\"]"`
	// New expiration timestamp (RFC 3339); empty string clears it
	ExpiresAt *string `json:"expires_at" example:"2027-12-31T00:00:00Z"`
	// Enable or disable the key
	IsActive *bool `json:"is_active" example:"false"`
}

// swagger:model CreateAPIKeyResponse
type CreateAPIKeyResponse struct {
	// The full API key. Returned only once; store it securely.
	APIKey string `json:"api_key" example:"wk_1f2e3d4c5b6a79881f2e3d4c5b6a7988aabbccdd"`
	// Key details
	Key APIKeyDetails `json:"key"`
	// Message indicating successful creation
	Message string `json:"message" example:"API key created successfully"`
}

// swagger:model APIKeyDetails
type APIKeyDetails struct {
	// Public identifier (prefix) of the key
	KeyID string `json:"key_id" example:"wk_1f2e3d4c5b6a7988"`
	// Displayable preview of the secret
	KeyPreview string `json:"key_preview" example:"wk_1f2e3d4c5b6a7988…ccdd"`
	// Name of the API key
	Name string `json:"name" example:"CRM integration"`
	// Description of the API key
	Description *string `json:"description" example:"Key used by the CRM to send order updates."`
	// Scopes granted to the key
	Scopes []string `json:"scopes" example:"[\"messages:send\",\"chats:read\"]"`
	// Derived status: active, inactive or expired
	Status string `json:"status" example:"active"`
	// Whether the key is enabled
	IsActive bool `json:"is_active" example:"true"`
	// Number of authenticated requests made with the key
	UsageCount uint `json:"usage_count" example:"42"`
	// Last used timestamp of the API key
	LastUsedAt *string `json:"last_used_at" example:"2026-08-01T12:00:00Z"`
	// IP address of the last request authenticated with the key
	LastIPAddress *string `json:"last_ip_address" example:"203.0.113.7"`
	// Expiration timestamp for the API key
	ExpiresAt *string `json:"expires_at" example:"2027-12-31T00:00:00Z"`
	// Timestamp of when the API key was created
	CreatedAt string `json:"created_at" example:"2026-08-01T12:00:00Z"`
	// Timestamp of when the API key was last updated
	UpdatedAt string `json:"updated_at" example:"2026-08-01T12:00:00Z"`
}

// swagger:model APIKeyListResponse
type APIKeyListResponse struct {
	// List of API keys
	Data []APIKeyDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"API keys retrieved successfully"`
}

// swagger:model APIKeyResponse
type APIKeyResponse struct {
	// Key details
	Key APIKeyDetails `json:"key"`
	// Message indicating successful retrieval
	Message string `json:"message"`
}

// swagger:model ScopeDetails
type ScopeDetails struct {
	// Scope string
	Scope string `json:"scope" example:"messages:send"`
	// Human description of what the scope grants
	Description string `json:"description" example:"Send messages from a connected session"`
}

// swagger:model ScopeListResponse
type ScopeListResponse struct {
	// The scope catalog
	Data []ScopeDetails `json:"data"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Scopes retrieved successfully"`
}

// swagger:model CreateWASessionRequest
type CreateWASessionRequest struct {
	// Display name for the session (unique per account)
	Name string `json:"name" example:"Support line"`
}

// swagger:model WASessionDetails
type WASessionDetails struct {
	// Session ID used in capability routes
	SessionID string `json:"session_id" example:"wa_1f2e3d4c5b6a7988"`
	// Display name
	Name string `json:"name" example:"Support line"`
	// Phone number of the connected WhatsApp account, when known
	PhoneNumber *string `json:"phone_number" example:"+237670000000"`
	// Lifecycle status: STARTING, SCAN_QR, CONNECTED, STOPPED or FAILED
	Status string `json:"status" example:"CONNECTED"`
	// Timestamp of when the session was created
	CreatedAt string `json:"created_at" example:"2026-08-01T12:00:00Z"`
	// Timestamp of when the session was last updated
	UpdatedAt string `json:"updated_at" example:"2026-08-01T12:00:00Z"`
}

// swagger:model WASessionListResponse
type WASessionListResponse struct {
	// List of WhatsApp sessions
	Data []WASessionDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Sessions retrieved successfully"`
}

// swagger:model WASessionResponse
type WASessionResponse struct {
	// Session details
	Session WASessionDetails `json:"session"`
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model QRCodeResponse
type QRCodeResponse struct {
	// QR payload to render client-side
	QR string `json:"qr"`
	// Seconds until the QR payload expires
	ExpiresIn int `json:"expires_in" example:"20"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"QR code retrieved successfully"`
}

// swagger:model SendMessageRequest
type SendMessageRequest struct {
	// Recipient: an E.164 phone number or an explicit chat JID
	To string `json:"to" example:"+237670000000"`
	// Text content; required unless media_url is set
	Text string `json:"text" example:"Hello from Wagate!"`
	// Optional media URL; text becomes the caption
	MediaURL *string `json:"media_url" example:"https://example.com/invoice.pdf"`
}

// swagger:model SendMessageResponse
type SendMessageResponse struct {
	// Engine-assigned message ID
	MessageID string `json:"message_id" example:"3EB0C431C26A1916E07A"`
	// Chat the message was delivered to
	ChatID string `json:"chat_id" example:"237670000000@s.whatsapp.net"`
	// Message indicating successful delivery to the engine
	Message string `json:"message" example:"Message sent successfully"`
}

// swagger:model ChatActionRequest
type ChatActionRequest struct {
	// Target chat JID
	ChatID string `json:"chat_id" example:"237670000000@s.whatsapp.net"`
	// Mute duration in seconds (mute only); 0 means forever
	Duration *int `json:"duration" example:"3600"`
}

// swagger:model ChatListResponse
type ChatListResponse struct {
	// List of chats from the engine
	Data []ChatDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Chats retrieved successfully"`
}

// swagger:model ChatDetails
type ChatDetails struct {
	// Chat JID
	ChatID string `json:"chat_id" example:"237670000000@s.whatsapp.net"`
	// Chat display name
	Name string `json:"name" example:"Jane Doe"`
	// Unread message count
	UnreadCount int `json:"unread_count" example:"3"`
	// Whether the chat is archived
	Archived bool `json:"archived" example:"false"`
	// Whether the chat is pinned
	Pinned bool `json:"pinned" example:"true"`
	// Mute expiry, when muted
	MutedUntil *string `json:"muted_until" example:"2026-09-01T00:00:00Z"`
}

// swagger:model CreateGroupRequest
type CreateGroupRequest struct {
	// Group subject
	Subject string `json:"subject" example:"Project launch"`
	// Initial participants as E.164 numbers or JIDs
	Participants []string `json:"participants" example:"[\"+237670000000\"]"`
}

// swagger:model GroupParticipantsRequest
type GroupParticipantsRequest struct {
	// Participants as E.164 numbers or JIDs
	Participants []string `json:"participants" example:"[\"+237670000000\"]"`
}

// swagger:model GroupTextRequest
type GroupTextRequest struct {
	// New value for the group subject or description
	Value string `json:"value" example:"Project launch"`
}

// swagger:model CreateChannelRequest
type CreateChannelRequest struct {
	// Channel name
	Name string `json:"name" example:"Product updates"`
	// Channel description
	Description string `json:"description" example:"Official product announcements"`
}

// swagger:model UpsertLabelRequest
type UpsertLabelRequest struct {
	// Label name
	Name string `json:"name" example:"VIP"`
	// Label color index
	Color int `json:"color" example:"3"`
}

// swagger:model SetChatLabelsRequest
type SetChatLabelsRequest struct {
	// Replacement label set for the chat
	LabelIDs []string `json:"label_ids" example:"[\"5\",\"12\"]"`
}

// swagger:model SetPresenceRequest
type SetPresenceRequest struct {
	// Presence value: available, unavailable, composing, recording or paused
	Presence string `json:"presence" example:"composing"`
	// Chat JID, required for chat-directed presences
	ChatID *string `json:"chat_id" example:"237670000000@s.whatsapp.net"`
}

// swagger:model PresenceSubscribeRequest
type PresenceSubscribeRequest struct {
	// Chat JID to subscribe to
	ChatID string `json:"chat_id" example:"237670000000@s.whatsapp.net"`
}

// swagger:model SendStatusRequest
type SendStatusRequest struct {
	// Status text to publish
	Text string `json:"text" example:"We are live!"`
}

// swagger:model ProfileTextRequest
type ProfileTextRequest struct {
	// New value for the profile field
	Value string `json:"value" example:"Wagate support"`
}

// swagger:model ProfilePictureRequest
type ProfilePictureRequest struct {
	// URL of the new profile picture
	URL string `json:"url" example:"https://example.com/logo.png"`
}

// swagger:model EventLogDetails
type EventLogDetails struct {
	// Event ID
	EID string `json:"eid" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Event category
	Category *string `json:"category" example:"MESSAGE"`
	// Event status
	Status *string `json:"status" example:"SENT"`
	// WhatsApp session associated with the event
	SessionID *string `json:"session_id" example:"wa_1f2e3d4c5b6a7988"`
	// Chat associated with the event
	ChatID *string `json:"chat_id" example:"237670000000@s.whatsapp.net"`
	// Event description
	Description *string `json:"description" example:"Message sent successfully"`
	// Recipient phone number or JID
	To *string `json:"to" example:"+237670000000"`
	// Timestamp of when the event was created
	CreatedAt string `json:"created_at" example:"2026-08-01T12:00:00Z"`
	// Timestamp of when the event was last updated
	UpdatedAt string `json:"updated_at" example:"2026-08-01T12:00:00Z"`
}

// swagger:model EventLogListResponse
type EventLogListResponse struct {
	// List of event logs
	Data []EventLogDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Event logs retrieved successfully"`
}

// swagger:model EventLogSummaryResponse
type EventLogSummaryResponse struct {
	Data    EventLogSummaryData `json:"data"`
	Message string              `json:"message" example:"Event logs summary retrieved successfully"`
}

// swagger:model EventLogSummaryData
type EventLogSummaryData struct {
	TotalCount   int64 `json:"total_count" example:"150"`
	TotalSent    int64 `json:"total_sent" example:"130"`
	TotalFailed  int64 `json:"total_failed" example:"20"`
	TotalPending int64 `json:"total_pending" example:"0"`
}
