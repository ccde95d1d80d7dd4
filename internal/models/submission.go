package models

// ContactSubmissionModel is a message sent through the public contact form.
type ContactSubmissionModel struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" gorm:"type:text;not null"`
	IsRead  bool   `json:"is_read" gorm:"default:false;index"`
}

func (ContactSubmissionModel) TableName() string { return "contact_submissions" }
