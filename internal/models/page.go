package models

// PageModel is a static marketing page (e.g. About, Facilities).
type PageModel struct {
	Base
	Title           string `json:"title"            gorm:"not null"`
	Slug            string `json:"slug"             gorm:"uniqueIndex;not null"`
	Content         string `json:"content"          gorm:"type:longtext"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description" gorm:"type:text"`
	MetaKeywords    string `json:"meta_keywords"`
	IsPublished     bool   `json:"is_published"     gorm:"default:false;index"`
}

func (PageModel) TableName() string { return "pages" }
