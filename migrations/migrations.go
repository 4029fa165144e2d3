// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"wagate-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_grant_full_catalog_to_legacy_keys",
			Migrate: func(tx *gorm.DB) error {
				// Keys created before scoping existed carry no scopes;
				// they behaved as all-access, so keep them that way.
				var keys []models.APIKey
				if err := tx.Find(&keys).Error; err != nil {
					return fmt.Errorf("failed to fetch api keys: %w", err)
				}

				for i := range keys {
					if len(keys[i].Scopes) > 0 {
						continue
					}
					if err := tx.Model(&keys[i]).Update("scopes", models.AllScopes()).Error; err != nil {
						return fmt.Errorf("failed to backfill scopes for key %d: %w", keys[i].ID, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
		{
			ID: "002_normalize_session_status",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Model(&models.WhatsAppSession{}).
					Where("status = ? OR status = ?", "", "DISCONNECTED").
					Update("status", models.WASessionStopped).Error; err != nil {
					return fmt.Errorf("failed to normalize session status: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
		{
			ID: "003_drop_api_key_label_column",
			Migrate: func(tx *gorm.DB) error {
				if !tx.Migrator().HasColumn(&models.APIKey{}, "label") {
					return nil
				}
				if err := tx.Migrator().DropColumn(&models.APIKey{}, "label"); err != nil {
					return fmt.Errorf("failed to drop label column: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
