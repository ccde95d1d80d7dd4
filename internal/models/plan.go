package models

// PlanModel is a membership plan.
type PlanModel struct {
	Base
	Name          string      `json:"name"           gorm:"not null"`
	Price         int         `json:"price"          gorm:"not null"` // cents
	BillingPeriod string      `json:"billing_period" gorm:"default:'monthly'"`
	Description   string      `json:"description"    gorm:"type:text"`
	Features      StringArray `json:"features"       gorm:"type:text"`
	IsFeatured    bool        `json:"is_featured"    gorm:"default:false"`
	IsActive      bool        `json:"is_active"      gorm:"default:true;index"`
	SortOrder     int         `json:"sort_order"     gorm:"default:0"`
}

func (PlanModel) TableName() string { return "membership_plans" }
