package models

import "time"

// BulletinModel is a site announcement shown while its window is open.
type BulletinModel struct {
	Base
	Title    string     `json:"title"     gorm:"not null"`
	Content  string     `json:"content"   gorm:"type:text"`
	IsActive bool       `json:"is_active" gorm:"default:true;index"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

func (BulletinModel) TableName() string { return "bulletins" }

// WindowOpen reports whether the bulletin should be displayed at now.
func (b BulletinModel) WindowOpen(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}
