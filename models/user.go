package models

import (
	"time"
)

const (
	RoleAdmin         = "admin"
	RoleManager       = "manager"
	RoleFieldEngineer = "field_engineer"
	RoleViewer        = "viewer"
)

// User is a staff member. Field engineers are assigned to quotations and
// AMC visits. Credentials live with the external auth service.
type User struct {
	Base

	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Phone       string `json:"phone"`
	Role        string `gorm:"type:varchar(20);not null" json:"role"`
	Designation string `json:"designation"`

	LastActive *time.Time `json:"lastActive,omitempty"`
	IsActive   bool       `gorm:"default:true" json:"isActive"`
}
