package models

import "time"

// ActivityLogModel is an append-only audit record of a mutating action.
// Rows are never updated or deleted by the application.
type ActivityLogModel struct {
	ID         uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	UserID     *uint     `json:"user_id"     gorm:"index"`
	Action     string    `json:"action"      gorm:"not null;index"`
	EntityType string    `json:"entity_type" gorm:"index"`
	EntityID   uint      `json:"entity_id"   gorm:"index"`
	Details    string    `json:"details"     gorm:"type:text"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ActivityLogModel) TableName() string { return "activity_logs" }
