package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Well-known setting keys.
const (
	SettingFormConfig     = "form_config"
	SettingProductsColors = "products_colors"
)

// AppSetting is a generic key/value row holding a JSON payload.
type AppSetting struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Key       string         `gorm:"uniqueIndex;not null"`
	Value     datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AppSetting) TableName() string { return "app_settings" }

func (s *AppSetting) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
