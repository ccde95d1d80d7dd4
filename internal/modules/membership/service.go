package membership

import (
	"errors"
	"fmt"

	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewService(db *gorm.DB, recorder *activity.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

func (s *Service) ListPlans(q pagination.Query, authed bool) ([]models.PlanModel, int64, error) {
	tx := s.db.Model(&models.PlanModel{}).Order("sort_order ASC, created_at DESC")
	if !authed {
		tx = tx.Where("is_active = ?", true)
	}
	var plans []models.PlanModel
	total, err := pagination.Paginate(tx, q, &plans)
	return plans, total, err
}

func (s *Service) GetPlan(id uint, authed bool) (*models.PlanModel, error) {
	tx := s.db.Model(&models.PlanModel{})
	if !authed {
		tx = tx.Where("is_active = ?", true)
	}
	var p models.PlanModel
	if err := tx.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) CreatePlan(dto *CreatePlanDTO, actor activity.Actor) (*models.PlanModel, error) {
	if dto.Price == nil || *dto.Price < 0 {
		return nil, apperr.Validationf("price must be non-negative")
	}

	p := models.PlanModel{
		Name:          dto.Name,
		Price:         *dto.Price,
		BillingPeriod: dto.BillingPeriod,
		Description:   dto.Description,
		Features:      dto.Features,
		IsActive:      true,
	}
	if p.BillingPeriod == "" {
		p.BillingPeriod = "monthly"
	}
	if dto.IsFeatured != nil {
		p.IsFeatured = *dto.IsFeatured
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}
	if dto.SortOrder != nil {
		p.SortOrder = *dto.SortOrder
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "create", "membership_plan", p.ID, fmt.Sprintf("created plan %q", p.Name))
	return &p, nil
}

func (s *Service) UpdatePlan(id uint, dto *UpdatePlanDTO, actor activity.Actor) (*models.PlanModel, error) {
	var p models.PlanModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	if dto.Price != nil && *dto.Price < 0 {
		return nil, apperr.Validationf("price must be non-negative")
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Price != nil {
		updates["price"] = *dto.Price
	}
	if dto.BillingPeriod != nil {
		updates["billing_period"] = *dto.BillingPeriod
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Features != nil {
		updates["features"] = dto.Features
	}
	if dto.IsFeatured != nil {
		updates["is_featured"] = *dto.IsFeatured
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(&p).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "membership_plan", p.ID, fmt.Sprintf("updated plan %q", p.Name))
	return &p, nil
}

func (s *Service) DeletePlan(id uint, actor activity.Actor) error {
	var p models.PlanModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&p).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "membership_plan", id, fmt.Sprintf("deleted plan %q", p.Name))
	return nil
}

// CreateInquiry is the public side; no auth, journaled with a nil user.
func (s *Service) CreateInquiry(dto *CreateInquiryDTO, actor activity.Actor) (*models.MembershipInquiryModel, error) {
	inq := models.MembershipInquiryModel{
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		PlanID:  dto.PlanID,
		Message: dto.Message,
		Status:  models.InquiryStatusNew,
	}
	if err := s.db.Create(&inq).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "create", "membership_inquiry", inq.ID,
		fmt.Sprintf("inquiry from %s", inq.Email))
	return &inq, nil
}

func (s *Service) ListInquiries(q pagination.Query) ([]inquiryView, int64, error) {
	tx := s.db.Model(&models.MembershipInquiryModel{}).
		Select("membership_inquiries.*, membership_plans.name AS plan_name").
		Joins("LEFT JOIN membership_plans ON membership_plans.id = membership_inquiries.plan_id").
		Order("membership_inquiries.created_at DESC")
	var inquiries []inquiryView
	total, err := pagination.Paginate(tx, q, &inquiries)
	return inquiries, total, err
}

func (s *Service) GetInquiry(id uint) (*inquiryView, error) {
	var v inquiryView
	if err := s.db.Model(&models.MembershipInquiryModel{}).
		Select("membership_inquiries.*, membership_plans.name AS plan_name").
		Joins("LEFT JOIN membership_plans ON membership_plans.id = membership_inquiries.plan_id").
		First(&v, "membership_inquiries.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *Service) UpdateInquiryStatus(id uint, status string, actor activity.Actor) (*models.MembershipInquiryModel, error) {
	switch status {
	case models.InquiryStatusNew, models.InquiryStatusContacted, models.InquiryStatusClosed:
	default:
		return nil, apperr.Validationf("unknown status %q", status)
	}

	var inq models.MembershipInquiryModel
	if err := s.db.First(&inq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&inq).Update("status", status).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "update", "membership_inquiry", inq.ID,
		fmt.Sprintf("inquiry from %s marked %s", inq.Email, status))
	return &inq, nil
}

func (s *Service) DeleteInquiry(id uint, actor activity.Actor) error {
	var inq models.MembershipInquiryModel
	if err := s.db.First(&inq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&inq).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "membership_inquiry", id,
		fmt.Sprintf("deleted inquiry from %s", inq.Email))
	return nil
}
