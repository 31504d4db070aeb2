package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionApproveAccessRequest = "APPROVE_ACCESS_REQUEST"
	ActionRejectAccessRequest  = "REJECT_ACCESS_REQUEST"
	ActionUpdateAccountRole    = "UPDATE_ACCOUNT_ROLE"
	ActionDeleteAccount        = "DELETE_ACCOUNT"
	ActionCreateTransportBatch = "CREATE_TRANSPORT_BATCH"
)

// AuditLog tracks who did what and when for admin decisions and batch
// transport creation.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID  *uuid.UUID `gorm:"type:uuid;index" json:"accountId"`
	Account    *Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entityId"`
	EntityName string     `gorm:"type:varchar(255)" json:"entityName,omitempty"`
	Details    string     `gorm:"type:text" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
