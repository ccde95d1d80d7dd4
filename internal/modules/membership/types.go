package membership

import "github.com/pulsefit/core/internal/models"

type CreatePlanDTO struct {
	Name          string             `json:"name"  binding:"required"`
	Price         *int               `json:"price" binding:"required"`
	BillingPeriod string             `json:"billing_period"`
	Description   string             `json:"description"`
	Features      models.StringArray `json:"features"`
	IsFeatured    *bool              `json:"is_featured"`
	IsActive      *bool              `json:"is_active"`
	SortOrder     *int               `json:"sort_order"`
}

type UpdatePlanDTO struct {
	Name          *string            `json:"name"`
	Price         *int               `json:"price"`
	BillingPeriod *string            `json:"billing_period"`
	Description   *string            `json:"description"`
	Features      models.StringArray `json:"features"`
	IsFeatured    *bool              `json:"is_featured"`
	IsActive      *bool              `json:"is_active"`
	SortOrder     *int               `json:"sort_order"`
}

type CreateInquiryDTO struct {
	Name    string `json:"name"  binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	PlanID  *uint  `json:"plan_id"`
	Message string `json:"message"`
}

type UpdateInquiryStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

// inquiryView is an inquiry joined with its plan's name. The plan
// reference is nullable so the name may be empty.
type inquiryView struct {
	models.MembershipInquiryModel
	PlanName string `json:"plan_name"`
}
