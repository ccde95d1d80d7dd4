// Package media stores uploaded files and their derived image renditions.
// All operations require a token; nothing here is public.
package media

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/imgproc"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"gorm.io/gorm"
)

const (
	maxFilesPerUpload = 10
	maxFileSize       = 50 << 20 // 50MB
)

type UpdateMediaDTO struct {
	AltText      *string `json:"alt_text"`
	OriginalName *string `json:"original_name"`
}

type Service struct {
	db        *gorm.DB
	recorder  *activity.Recorder
	uploadDir string
}

func NewService(db *gorm.DB, recorder *activity.Recorder, uploadDir string) *Service {
	return &Service{db: db, recorder: recorder, uploadDir: uploadDir}
}

// List returns media rows, optionally narrowed by a mime type prefix
// such as "image" or "video".
func (s *Service) List(typePrefix string, q pagination.Query) ([]models.MediaModel, int64, error) {
	tx := s.db.Model(&models.MediaModel{}).Order("created_at DESC")
	if typePrefix != "" {
		tx = tx.Where("mime_type LIKE ?", typePrefix+"/%")
	}
	var items []models.MediaModel
	total, err := pagination.Paginate(tx, q, &items)
	return items, total, err
}

func (s *Service) Get(id uint) (*models.MediaModel, error) {
	var m models.MediaModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Upload persists each multipart file under a generated unique filename
// and, for images, derives the web and thumbnail renditions. Files are
// processed in order; a failure aborts the batch and reports which file
// broke, leaving earlier files stored.
func (s *Service) Upload(ctx context.Context, files []*multipart.FileHeader, save func(*multipart.FileHeader, string) error, actor activity.Actor) ([]models.MediaModel, error) {
	if len(files) == 0 {
		return nil, apperr.Validationf("no files in upload")
	}
	if len(files) > maxFilesPerUpload {
		return nil, apperr.Validationf("at most %d files per upload", maxFilesPerUpload)
	}
	for _, fh := range files {
		if fh.Size > maxFileSize {
			return nil, apperr.Validationf("file %q exceeds the %dMB limit", fh.Filename, maxFileSize>>20)
		}
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, err
	}

	stored := make([]models.MediaModel, 0, len(files))
	for _, fh := range files {
		m, err := s.storeOne(ctx, fh, save, actor)
		if err != nil {
			return stored, fmt.Errorf("upload %q: %w", fh.Filename, err)
		}
		stored = append(stored, *m)
	}
	return stored, nil
}

func (s *Service) storeOne(ctx context.Context, fh *multipart.FileHeader, save func(*multipart.FileHeader, string) error, actor activity.Actor) (*models.MediaModel, error) {
	filename := buildFileName(fh.Filename)
	dstPath := filepath.Join(s.uploadDir, filename)

	if err := save(fh, dstPath); err != nil {
		return nil, err
	}

	m := models.MediaModel{
		Filename:     filename,
		OriginalName: fh.Filename,
		StoredPath:   dstPath,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         fh.Size,
	}

	if strings.HasPrefix(m.MimeType, "image/") {
		procCtx, cancel := context.WithTimeout(ctx, imgproc.DefaultTimeout)
		defer cancel()
		res, err := imgproc.Process(procCtx, dstPath)
		if err != nil {
			_ = os.Remove(dstPath)
			return nil, err
		}
		m.Width = res.Width
		m.Height = res.Height
	}

	if err := s.db.Create(&m).Error; err != nil {
		s.removeArtifacts(&m)
		return nil, err
	}

	s.recorder.Record(actor, "create", "media", m.ID, fmt.Sprintf("uploaded %q as %q", m.OriginalName, m.Filename))
	return &m, nil
}

func (s *Service) Update(id uint, dto *UpdateMediaDTO, actor activity.Actor) (*models.MediaModel, error) {
	var m models.MediaModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.AltText != nil {
		updates["alt_text"] = *dto.AltText
	}
	if dto.OriginalName != nil {
		updates["original_name"] = *dto.OriginalName
	}
	if len(updates) > 0 {
		if err := s.db.Model(&m).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "media", m.ID, fmt.Sprintf("updated media %q", m.Filename))
	return &m, nil
}

// Delete removes the row and up to three physical artifacts: the stored
// original plus the derived renditions. Files already missing from disk
// are skipped silently.
func (s *Service) Delete(id uint, actor activity.Actor) error {
	var m models.MediaModel
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&m).Error; err != nil {
		return err
	}
	s.removeArtifacts(&m)
	s.recorder.Record(actor, "delete", "media", id, fmt.Sprintf("deleted media %q", m.Filename))
	return nil
}

func (s *Service) removeArtifacts(m *models.MediaModel) {
	webPath, thumbPath := imgproc.DerivedPaths(m.StoredPath)
	for _, p := range []string{m.StoredPath, webPath, thumbPath} {
		_ = os.Remove(p)
	}
}

func buildFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}
