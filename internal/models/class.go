package models

// ClassModel is a scheduled gym class. TrainerID is intentionally a
// plain nullable reference with no database constraint: a class may
// outlive its trainer.
type ClassModel struct {
	Base
	Name        string `json:"name"        gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	TrainerID   *uint  `json:"trainer_id"  gorm:"index"`
	Schedule    string `json:"schedule"`
	Duration    int    `json:"duration"` // minutes
	Capacity    int    `json:"capacity"`
	Price       int    `json:"price"` // cents
	Difficulty  string `json:"difficulty"`
	IsActive    bool   `json:"is_active"   gorm:"default:true;index"`
	SortOrder   int    `json:"sort_order"  gorm:"default:0"`
}

func (ClassModel) TableName() string { return "classes" }
