package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AccessRequest statuses
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Account is an approved, authenticatable identity. Accounts are created by
// approving an AccessRequest, or seeded as the bootstrap admin at first run.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"fullName"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsApproved   bool      `gorm:"not null;default:false" json:"isApproved"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AccessRequest is a registration awaiting an admin decision. Requests are
// never deleted; approved and rejected rows remain as an audit trail.
type AccessRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"fullName"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RequestedAt  time.Time `gorm:"autoCreateTime" json:"requestedAt"`
}

func (r *AccessRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
