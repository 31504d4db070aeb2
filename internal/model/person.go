package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person is a ride recipient. Referenced by Transport rows; deleting a
// person cascades to their transports.
type Person struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address   string    `gorm:"type:varchar(500)" json:"address,omitempty"`
	City      string    `gorm:"type:varchar(100)" json:"city,omitempty"`
	Province  string    `gorm:"type:varchar(100)" json:"province,omitempty"`
	Notes     string    `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName keeps the original table name used by the frontend-facing API.
func (Person) TableName() string { return "users" }
