package models

// SettingModel is a key-value site setting with upsert semantics.
type SettingModel struct {
	Key   string `json:"key"   gorm:"primaryKey"`
	Value string `json:"value" gorm:"type:longtext"`
	Type  string `json:"type"  gorm:"default:'text'"` // text | number | boolean | json
}

func (SettingModel) TableName() string { return "settings" }
