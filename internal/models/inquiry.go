package models

const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// MembershipInquiryModel is a prospective member's inquiry about a plan.
// PlanID is a plain nullable reference; the plan may have been removed.
type MembershipInquiryModel struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null"`
	Phone   string `json:"phone"`
	PlanID  *uint  `json:"plan_id" gorm:"index"`
	Message string `json:"message" gorm:"type:text"`
	Status  string `json:"status"  gorm:"default:'new';index"`
}

func (MembershipInquiryModel) TableName() string { return "membership_inquiries" }
