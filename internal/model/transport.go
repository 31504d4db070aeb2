package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recurrence types
const (
	RecurringDaily   = "daily"
	RecurringWeekly  = "weekly"
	RecurringMonthly = "monthly"
)

// Transport is one concrete scheduled occurrence. A recurring submission
// fans out into sibling rows created together; there is no persisted group
// identity, so editing or deleting one occurrence never touches the others.
//
// Date and RecurringEndDate are YYYY-MM-DD strings and StartTime/EndTime are
// HH:MM strings: lexical order equals chronological order, which the list
// ordering relies on.
type Transport struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date             string    `gorm:"type:varchar(10);not null;index" json:"date"`
	StartTime        string    `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime          string    `gorm:"type:varchar(5)" json:"endTime,omitempty"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User             *Person   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DriverID         uuid.UUID `gorm:"type:uuid;not null;index" json:"driverId"`
	Driver           *Driver   `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DestinationID    uuid.UUID `gorm:"type:uuid;not null;index" json:"destinationId"`
	Destination      *Destination `gorm:"foreignKey:DestinationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	IsRecurring      bool      `gorm:"not null;default:false" json:"isRecurring"`
	RecurringType    string    `gorm:"type:varchar(20)" json:"recurringType,omitempty"`
	RecurringEndDate string    `gorm:"type:varchar(10)" json:"recurringEndDate,omitempty"`
	Notes            string    `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (t *Transport) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
