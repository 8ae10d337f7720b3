package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel values stored when a zone selector is left empty.
const (
	NoneOption = "ninguna"
	NoOption   = "no"
	// HeelRaiseOption is the rearfoot value that unlocks heel_raise_mm.
	HeelRaiseOption = "Realce en talón"
)

// ProductRequest is one insole specification inside an order.
// The patient may differ from the customer who placed the order.
type ProductRequest struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerRequestID uuid.UUID `gorm:"type:uuid;index;not null"`
	PatientName       string
	PatientLastname   string
	ProductType       string `gorm:"not null"`

	Forefoot             string
	AnteriorWedge        string
	AnteriorWedgeMM      *string `gorm:"column:anterior_wedge_mm"`
	MidfootArch          string
	MidfootExternalWedge string
	RearfootCalcaneus    string
	HeelRaiseMM          *string `gorm:"column:heel_raise_mm"`
	PosteriorWedge       string  `gorm:"not null;default:'no'"`
	PosteriorWedgeMM     *string `gorm:"column:posterior_wedge_mm"`

	TemplateColor string
	TemplateSize  string
	CreatedAt     time.Time
}

func (ProductRequest) TableName() string { return "product_requests" }

func (p *ProductRequest) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
