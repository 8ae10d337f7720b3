package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order lifecycle labels. Any label may be written at any time.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Statuses lists the valid labels in display order.
var Statuses = []string{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}

// ValidStatus reports whether s is one of the four order labels.
func ValidStatus(s string) bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// CustomerRequest is one customer submission (the order). Its ID is the
// externally visible order number.
type CustomerRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Lastname  string    `gorm:"not null"`
	Email     string    `gorm:"index;not null"`
	Phone     *string
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Products []ProductRequest `gorm:"foreignKey:CustomerRequestID;constraint:OnDelete:CASCADE"`
}

func (CustomerRequest) TableName() string { return "customer_requests" }

// BeforeCreate assigns the id Go-side so inserts work without gen_random_uuid().
func (c *CustomerRequest) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	return nil
}
