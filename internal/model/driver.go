package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Driver is a volunteer driver assigned to transports.
type Driver struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	LicenseNumber string    `gorm:"type:varchar(100)" json:"licenseNumber,omitempty"`
	Notes         string    `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
