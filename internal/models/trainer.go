package models

// TrainerModel is a gym trainer profile.
type TrainerModel struct {
	Base
	Name      string `json:"name"       gorm:"not null"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"        gorm:"type:text"`
	Photo     string `json:"photo"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	IsActive  bool   `json:"is_active"  gorm:"default:true;index"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
}

func (TrainerModel) TableName() string { return "trainers" }
