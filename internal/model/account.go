package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifies which signup/login path an account belongs to.
type Role string

const (
	// RoleAdmin is the administrator role.
	RoleAdmin Role = "Admin"
	// RolePilot is the pilot role.
	RolePilot Role = "Pilot"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePilot:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Account represents a registered identity (admin or pilot).
type Account struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role         Role      `json:"role" gorm:"size:50;not null;index"`
	UID          string    `json:"uid" gorm:"column:uid;size:100"` // role-specific identifier (AdminId / PilotId)
	PasswordHash string    `json:"-" gorm:"size:255;not null"`     // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
