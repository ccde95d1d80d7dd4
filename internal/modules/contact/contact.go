// Package contact receives public contact form submissions and gives
// admins a read/mark-read/delete surface over them. Submissions are
// never updated from the public side.
package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

type CreateSubmissionDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type Service struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewService(db *gorm.DB, recorder *activity.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

func (s *Service) Create(dto *CreateSubmissionDTO, actor activity.Actor) (*models.ContactSubmissionModel, error) {
	sub := models.ContactSubmissionModel{
		Name:    strings.TrimSpace(dto.Name),
		Email:   strings.ToLower(strings.TrimSpace(dto.Email)),
		Phone:   dto.Phone,
		Subject: dto.Subject,
		Message: dto.Message,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "create", "contact_submission", sub.ID, fmt.Sprintf("submission from %q", sub.Email))
	return &sub, nil
}

func (s *Service) List(unreadOnly bool, q pagination.Query) ([]models.ContactSubmissionModel, int64, error) {
	tx := s.db.Model(&models.ContactSubmissionModel{}).Order("created_at DESC")
	if unreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	var subs []models.ContactSubmissionModel
	total, err := pagination.Paginate(tx, q, &subs)
	return subs, total, err
}

func (s *Service) Get(id uint) (*models.ContactSubmissionModel, error) {
	var sub models.ContactSubmissionModel
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *Service) MarkRead(id uint, actor activity.Actor) (*models.ContactSubmissionModel, error) {
	sub, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !sub.IsRead {
		if err := s.db.Model(sub).Update("is_read", true).Error; err != nil {
			return nil, err
		}
	}
	s.recorder.Record(actor, "update", "contact_submission", sub.ID, "marked submission read")
	return sub, nil
}

func (s *Service) Delete(id uint, actor activity.Actor) error {
	sub, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(sub).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "contact_submission", id, fmt.Sprintf("deleted submission from %q", sub.Email))
	return nil
}
