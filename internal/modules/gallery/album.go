// Package gallery manages photo albums and their images. Album deletes
// cascade to images through the storage layer's foreign key rule, not
// application-level iteration.
package gallery

import (
	"errors"
	"fmt"

	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

type CreateAlbumDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CoverImage  string `json:"cover_image"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   *int   `json:"sort_order"`
}

type UpdateAlbumDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CoverImage  *string `json:"cover_image"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

type Service struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewService(db *gorm.DB, recorder *activity.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

func (s *Service) ListAlbums(q pagination.Query, authed bool) ([]models.GalleryAlbumModel, int64, error) {
	tx := s.db.Model(&models.GalleryAlbumModel{}).Order("sort_order ASC, created_at DESC")
	if !authed {
		tx = tx.Where("is_active = ?", true)
	}
	var albums []models.GalleryAlbumModel
	total, err := pagination.Paginate(tx, q, &albums)
	return albums, total, err
}

func (s *Service) GetAlbum(id uint, authed bool) (*models.GalleryAlbumModel, error) {
	tx := s.db.Model(&models.GalleryAlbumModel{})
	if !authed {
		tx = tx.Where("is_active = ?", true)
	}
	var a models.GalleryAlbumModel
	if err := tx.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Service) CreateAlbum(dto *CreateAlbumDTO, actor activity.Actor) (*models.GalleryAlbumModel, error) {
	a := models.GalleryAlbumModel{
		Name:        dto.Name,
		Description: dto.Description,
		CoverImage:  dto.CoverImage,
		IsActive:    true,
	}
	if dto.IsActive != nil {
		a.IsActive = *dto.IsActive
	}
	if dto.SortOrder != nil {
		a.SortOrder = *dto.SortOrder
	}
	if err := s.db.Create(&a).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "create", "gallery_album", a.ID, fmt.Sprintf("created album %q", a.Name))
	return &a, nil
}

func (s *Service) UpdateAlbum(id uint, dto *UpdateAlbumDTO, actor activity.Actor) (*models.GalleryAlbumModel, error) {
	var a models.GalleryAlbumModel
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.CoverImage != nil {
		updates["cover_image"] = *dto.CoverImage
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(&a).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "gallery_album", a.ID, fmt.Sprintf("updated album %q", a.Name))
	return &a, nil
}

// DeleteAlbum removes the album; the storage layer cascades the delete
// to every image referencing it.
func (s *Service) DeleteAlbum(id uint, actor activity.Actor) error {
	var a models.GalleryAlbumModel
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&a).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "gallery_album", id, fmt.Sprintf("deleted album %q", a.Name))
	return nil
}
