package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Destination is a transport target with its per-trip reimbursement cost.
type Destination struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Address   string          `gorm:"type:varchar(500);not null" json:"address"`
	Cost      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	Notes     string          `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (d *Destination) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
