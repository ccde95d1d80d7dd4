package blog

import (
	"errors"
	"fmt"
	"time"

	"github.com/pulsefit/core/internal/database"
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

// visible scopes a query to what the caller may see: published posts
// whose publish date has passed, or everything when authenticated.
func visible(tx *gorm.DB, authed bool) *gorm.DB {
	if authed {
		return tx
	}
	return tx.Where("status = ? AND (publish_date IS NULL OR publish_date <= ?)",
		models.PostStatusPublished, time.Now())
}

func (s *Service) List(q pagination.Query, category string, authed bool) ([]models.PostModel, int64, error) {
	tx := visible(s.db.Model(&models.PostModel{}), authed).
		Order("publish_date DESC, created_at DESC")
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	var posts []models.PostModel
	total, err := pagination.Paginate(tx, q, &posts)
	return posts, total, err
}

func (s *Service) GetBySlug(slug string, authed bool) (*models.PostModel, error) {
	var p models.PostModel
	if err := visible(s.db.Model(&models.PostModel{}), authed).
		First(&p, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(dto *CreatePostDTO, actor activity.Actor) (*models.PostModel, error) {
	status := dto.Status
	switch status {
	case "":
		status = models.PostStatusDraft
	case models.PostStatusDraft, models.PostStatusPublished:
	default:
		return nil, apperr.Validationf("status must be %q or %q",
			models.PostStatusDraft, models.PostStatusPublished)
	}

	var count int64
	if err := s.db.Model(&models.PostModel{}).Where("slug = ?", dto.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflictf("slug %q already exists", dto.Slug)
	}

	publishDate := dto.PublishDate
	if status == models.PostStatusPublished && publishDate == nil {
		now := time.Now()
		publishDate = &now
	}

	authorID := dto.AuthorID
	if authorID == nil {
		authorID = actor.UserID
	}

	p := models.PostModel{
		Title:         dto.Title,
		Slug:          dto.Slug,
		Excerpt:       dto.Excerpt,
		Content:       dto.Content,
		FeaturedImage: dto.FeaturedImage,
		Category:      dto.Category,
		Tags:          dto.Tags,
		Status:        status,
		PublishDate:   publishDate,
		AuthorID:      authorID,
	}
	if err := s.db.Create(&p).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflictf("slug %q already exists", dto.Slug)
		}
		return nil, err
	}

	s.recorder.Record(actor, "create", "post", p.ID, fmt.Sprintf("created post %q", p.Title))
	return &p, nil
}

func (s *Service) Update(id uint, dto *UpdatePostDTO, actor activity.Actor) (*models.PostModel, error) {
	var p models.PostModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Slug != nil && *dto.Slug != p.Slug {
		var count int64
		if err := s.db.Model(&models.PostModel{}).
			Where("slug = ? AND id <> ?", *dto.Slug, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflictf("slug %q already exists", *dto.Slug)
		}
		updates["slug"] = *dto.Slug
	}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.FeaturedImage != nil {
		updates["featured_image"] = *dto.FeaturedImage
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.Tags != nil {
		updates["tags"] = dto.Tags
	}
	if dto.Status != nil {
		switch *dto.Status {
		case models.PostStatusDraft, models.PostStatusPublished:
		default:
			return nil, apperr.Validationf("status must be %q or %q",
				models.PostStatusDraft, models.PostStatusPublished)
		}
		updates["status"] = *dto.Status
		// First publish without an explicit date stamps now.
		if *dto.Status == models.PostStatusPublished && p.PublishDate == nil && dto.PublishDate == nil {
			updates["publish_date"] = time.Now()
		}
	}
	if dto.PublishDate != nil {
		updates["publish_date"] = *dto.PublishDate
	}
	if dto.AuthorID != nil {
		updates["author_id"] = *dto.AuthorID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&p).Updates(updates).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return nil, apperr.Conflictf("slug already exists")
			}
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "post", p.ID, fmt.Sprintf("updated post %q", p.Title))
	return &p, nil
}

func (s *Service) Delete(id uint, actor activity.Actor) error {
	var p models.PostModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&p).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "post", id, fmt.Sprintf("deleted post %q", p.Title))
	return nil
}
