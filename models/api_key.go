// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	APIKeyStatusActive   = "active"
	APIKeyStatusInactive = "inactive"
	APIKeyStatusExpired  = "expired"
)

// APIKey is a scoped programmatic credential. Only the argon2id hash of
// the full secret is stored; KeyID (the public prefix) and KeySuffix are
// kept so the dashboard can display a preview like "wk_ab12…f9e3".
type APIKey struct {
	ID            uint    `gorm:"primaryKey"`
	KeyID         string  `gorm:"size:64;not null;uniqueIndex"`
	HashedKey     string  `gorm:"size:255;not null"`
	KeySuffix     string  `gorm:"size:8;not null"`
	Name          string  `gorm:"size:100;not null;uniqueIndex:idx_user_key_name"`
	Description   *string `gorm:"type:text;default:null"`
	Scopes        []string `gorm:"serializer:json;not null"`
	IsActive      bool    `gorm:"not null;default:true"`
	UsageCount    uint    `gorm:"not null;default:0"`
	LastUsedAt    *time.Time
	LastIPAddress *string `gorm:"size:64;default:null"`
	ExpiresAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	UserID        uint           `gorm:"uniqueIndex:idx_user_key_name"`
	User          User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Status derives the display status. Expiry wins over the active flag.
func (k *APIKey) Status() string {
	if k.ExpiresAt != nil && k.ExpiresAt.Before(time.Now()) {
		return APIKeyStatusExpired
	}
	if !k.IsActive {
		return APIKeyStatusInactive
	}
	return APIKeyStatusActive
}

// Usable reports whether the key may authenticate a request right now.
func (k *APIKey) Usable() bool {
	return k.Status() == APIKeyStatusActive
}

// Preview is the displayable fragment of the secret.
func (k *APIKey) Preview() string {
	return k.KeyID + "…" + k.KeySuffix
}

// HasScope reports whether the key grants the given scope.
func (k *APIKey) HasScope(scope string) bool {
	for _, s := range k.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func init() {
	AllModels = append(AllModels, &APIKey{})
}
