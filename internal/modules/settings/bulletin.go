package settings

import (
	"errors"
	"fmt"
	"time"

	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

type CreateBulletinDTO struct {
	Title    string     `json:"title" binding:"required"`
	Content  string     `json:"content"`
	IsActive *bool      `json:"is_active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

type UpdateBulletinDTO struct {
	Title    *string    `json:"title"`
	Content  *string    `json:"content"`
	IsActive *bool      `json:"is_active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// ActiveBulletins returns bulletins whose display window is open now:
// active, started (or no start), and not yet ended (or no end).
func (s *Service) ActiveBulletins(now time.Time) ([]models.BulletinModel, error) {
	var bulletins []models.BulletinModel
	err := s.db.
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("created_at DESC").
		Find(&bulletins).Error
	return bulletins, err
}

func (s *Service) ListBulletins(q pagination.Query) ([]models.BulletinModel, int64, error) {
	tx := s.db.Model(&models.BulletinModel{}).Order("created_at DESC")
	var bulletins []models.BulletinModel
	total, err := pagination.Paginate(tx, q, &bulletins)
	return bulletins, total, err
}

func (s *Service) GetBulletin(id uint) (*models.BulletinModel, error) {
	var b models.BulletinModel
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *Service) CreateBulletin(dto *CreateBulletinDTO, actor activity.Actor) (*models.BulletinModel, error) {
	if err := validWindow(dto.StartsAt, dto.EndsAt); err != nil {
		return nil, err
	}
	b := models.BulletinModel{
		Title:    dto.Title,
		Content:  dto.Content,
		IsActive: true,
		StartsAt: dto.StartsAt,
		EndsAt:   dto.EndsAt,
	}
	if dto.IsActive != nil {
		b.IsActive = *dto.IsActive
	}
	if err := s.db.Create(&b).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "create", "bulletin", b.ID, fmt.Sprintf("created bulletin %q", b.Title))
	return &b, nil
}

func (s *Service) UpdateBulletin(id uint, dto *UpdateBulletinDTO, actor activity.Actor) (*models.BulletinModel, error) {
	b, err := s.GetBulletin(id)
	if err != nil {
		return nil, err
	}

	starts, ends := b.StartsAt, b.EndsAt
	if dto.StartsAt != nil {
		starts = dto.StartsAt
	}
	if dto.EndsAt != nil {
		ends = dto.EndsAt
	}
	if err := validWindow(starts, ends); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.StartsAt != nil {
		updates["starts_at"] = *dto.StartsAt
	}
	if dto.EndsAt != nil {
		updates["ends_at"] = *dto.EndsAt
	}
	if len(updates) > 0 {
		if err := s.db.Model(b).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "bulletin", b.ID, fmt.Sprintf("updated bulletin %q", b.Title))
	return b, nil
}

func (s *Service) DeleteBulletin(id uint, actor activity.Actor) error {
	b, err := s.GetBulletin(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(b).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "bulletin", id, fmt.Sprintf("deleted bulletin %q", b.Title))
	return nil
}

func validWindow(starts, ends *time.Time) error {
	if starts != nil && ends != nil && ends.Before(*starts) {
		return apperr.Validationf("bulletin window ends before it starts")
	}
	return nil
}
