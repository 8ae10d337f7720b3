package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Option categories used by the public form.
const (
	CategoryProductType          = "product_type"
	CategoryForefoot             = "zone_option_1"
	CategoryAnteriorWedge        = "zone_option_2"
	CategoryMidfootArch          = "zone_option_3"
	CategoryMidfootExternalWedge = "zone_option_4"
	CategoryRearfoot             = "zone_option_5"
	CategoryPosteriorWedge       = "zone_option_6"
	CategoryTemplateSize         = "template_size"
)

// ProductOption is a lookup row shown in the public form selectors.
type ProductOption struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category   string    `gorm:"index;not null"`
	Label      string    `gorm:"not null"`
	Value      string    `gorm:"not null"`
	OrderIndex int       `gorm:"not null;default:0"`
	IsActive   bool      `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ProductOption) TableName() string { return "product_options" }

func (o *ProductOption) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
