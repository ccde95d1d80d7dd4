package models

// TestimonialModel is a member testimonial.
type TestimonialModel struct {
	Base
	ClientName  string `json:"client_name"  gorm:"not null"`
	ClientPhoto string `json:"client_photo"`
	ClientTitle string `json:"client_title"`
	Content     string `json:"content"      gorm:"type:text;not null"`
	Rating      int    `json:"rating"       gorm:"default:5"` // 1..5
	IsApproved  bool   `json:"is_approved"  gorm:"default:false;index"`
	SortOrder   int    `json:"sort_order"   gorm:"default:0"`
}

func (TestimonialModel) TableName() string { return "testimonials" }
