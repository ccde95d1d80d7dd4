package models

import "time"

// Base is the base model for all entities. IDs are server-assigned
// auto-increment integers; deletes are hard deletes.
type Base struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
