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

type CreateImageDTO struct {
	AlbumID       *uint  `json:"album_id"`
	FilePath      string `json:"file_path" binding:"required"`
	ThumbnailPath string `json:"thumbnail_path"`
	Caption       string `json:"caption"`
	SortOrder     *int   `json:"sort_order"`
}

type UpdateImageDTO struct {
	AlbumID       *uint   `json:"album_id"`
	FilePath      *string `json:"file_path"`
	ThumbnailPath *string `json:"thumbnail_path"`
	Caption       *string `json:"caption"`
	SortOrder     *int    `json:"sort_order"`
}

// ListImages returns images, optionally scoped to one album. Album-scoped
// reads inherit the album's visibility for unauthenticated callers;
// unscoped reads do not filter.
func (s *Service) ListImages(albumID *uint, q pagination.Query, authed bool) ([]models.GalleryImageModel, int64, error) {
	tx := s.db.Model(&models.GalleryImageModel{}).Order("sort_order ASC, created_at DESC")
	if albumID != nil {
		if !authed {
			if _, err := s.GetAlbum(*albumID, false); err != nil {
				return nil, 0, err
			}
		}
		tx = tx.Where("album_id = ?", *albumID)
	}
	var images []models.GalleryImageModel
	total, err := pagination.Paginate(tx, q, &images)
	return images, total, err
}

func (s *Service) GetImage(id uint) (*models.GalleryImageModel, error) {
	var img models.GalleryImageModel
	if err := s.db.First(&img, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (s *Service) CreateImage(dto *CreateImageDTO, actor activity.Actor) (*models.GalleryImageModel, error) {
	if dto.AlbumID != nil {
		if err := s.albumExists(*dto.AlbumID); err != nil {
			return nil, err
		}
	}
	img := models.GalleryImageModel{
		AlbumID:       dto.AlbumID,
		FilePath:      dto.FilePath,
		ThumbnailPath: dto.ThumbnailPath,
		Caption:       dto.Caption,
	}
	if dto.SortOrder != nil {
		img.SortOrder = *dto.SortOrder
	}
	if err := s.db.Create(&img).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "create", "gallery_image", img.ID, fmt.Sprintf("added image %q", img.FilePath))
	return &img, nil
}

func (s *Service) UpdateImage(id uint, dto *UpdateImageDTO, actor activity.Actor) (*models.GalleryImageModel, error) {
	var img models.GalleryImageModel
	if err := s.db.First(&img, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.AlbumID != nil {
		if err := s.albumExists(*dto.AlbumID); err != nil {
			return nil, err
		}
		updates["album_id"] = *dto.AlbumID
	}
	if dto.FilePath != nil {
		updates["file_path"] = *dto.FilePath
	}
	if dto.ThumbnailPath != nil {
		updates["thumbnail_path"] = *dto.ThumbnailPath
	}
	if dto.Caption != nil {
		updates["caption"] = *dto.Caption
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(&img).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "gallery_image", img.ID, fmt.Sprintf("updated image %q", img.FilePath))
	return &img, nil
}

func (s *Service) DeleteImage(id uint, actor activity.Actor) error {
	var img models.GalleryImageModel
	if err := s.db.First(&img, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&img).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "gallery_image", id, fmt.Sprintf("deleted image %q", img.FilePath))
	return nil
}

func (s *Service) albumExists(id uint) error {
	var count int64
	if err := s.db.Model(&models.GalleryAlbumModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.Validationf("album %d does not exist", id)
	}
	return nil
}
