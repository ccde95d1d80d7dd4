package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// UserModel represents a site administrator.
type UserModel struct {
	Base
	Email     string     `json:"email"      gorm:"uniqueIndex;not null"`
	Password  string     `json:"-"          gorm:"not null"`
	Name      string     `json:"name"`
	Role      string     `json:"role"       gorm:"default:'admin'"`
	LastLogin *time.Time `json:"last_login"`
}

func (UserModel) TableName() string { return "users" }
