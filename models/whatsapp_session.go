// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type WASessionStatus string

const (
	WASessionStarting  WASessionStatus = "STARTING"
	WASessionScanQR    WASessionStatus = "SCAN_QR"
	WASessionConnected WASessionStatus = "CONNECTED"
	WASessionStopped   WASessionStatus = "STOPPED"
	WASessionFailed    WASessionStatus = "FAILED"
)

// WhatsAppSession is a logical connection to one WhatsApp account,
// executed by the external engine node. SessionID is the handle used on
// the engine side.
type WhatsAppSession struct {
	ID          uint            `gorm:"primaryKey"`
	SessionID   string          `gorm:"size:64;not null;uniqueIndex"`
	Name        string          `gorm:"size:100;not null;uniqueIndex:idx_user_wa_name"`
	PhoneNumber *string         `gorm:"size:32;default:null"`
	Status      WASessionStatus `gorm:"size:16;not null;default:STOPPED"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	UserID      uint           `gorm:"uniqueIndex:idx_user_wa_name"`
	User        User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &WhatsAppSession{})
}
