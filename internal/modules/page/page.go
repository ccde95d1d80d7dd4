package page

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/database"
	"github.com/pulsefit/core/internal/middleware"
	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"github.com/pulsefit/core/internal/pkg/response"
	"gorm.io/gorm"
)

type CreatePageDTO struct {
	Title           string `json:"title" binding:"required"`
	Slug            string `json:"slug"  binding:"required"`
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	IsPublished     *bool  `json:"is_published"`
}

type UpdatePageDTO struct {
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Content         *string `json:"content"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	MetaKeywords    *string `json:"meta_keywords"`
	IsPublished     *bool   `json:"is_published"`
}

type Service struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewService(db *gorm.DB, recorder *activity.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

func (s *Service) List(q pagination.Query, authed bool) ([]models.PageModel, int64, error) {
	tx := s.db.Model(&models.PageModel{}).Order("created_at DESC")
	if !authed {
		tx = tx.Where("is_published = ?", true)
	}
	var pages []models.PageModel
	total, err := pagination.Paginate(tx, q, &pages)
	return pages, total, err
}

// GetByIdentifier fetches by numeric ID first, then slug fallback.
func (s *Service) GetByIdentifier(identifier string, authed bool) (*models.PageModel, error) {
	tx := s.db.Model(&models.PageModel{})
	if !authed {
		tx = tx.Where("is_published = ?", true)
	}

	var p models.PageModel
	var err error
	if id, convErr := strconv.ParseUint(identifier, 10, 64); convErr == nil {
		err = tx.First(&p, "id = ?", uint(id)).Error
	} else {
		err = tx.First(&p, "slug = ?", identifier).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) Create(dto *CreatePageDTO, actor activity.Actor) (*models.PageModel, error) {
	var count int64
	if err := s.db.Model(&models.PageModel{}).Where("slug = ?", dto.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflictf("slug %q already exists", dto.Slug)
	}

	p := models.PageModel{
		Title:           dto.Title,
		Slug:            dto.Slug,
		Content:         dto.Content,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
		MetaKeywords:    dto.MetaKeywords,
	}
	if dto.IsPublished != nil {
		p.IsPublished = *dto.IsPublished
	}
	if err := s.db.Create(&p).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflictf("slug %q already exists", dto.Slug)
		}
		return nil, err
	}

	s.recorder.Record(actor, "create", "page", p.ID, fmt.Sprintf("created page %q", p.Title))
	return &p, nil
}

func (s *Service) Update(id uint, dto *UpdatePageDTO, actor activity.Actor) (*models.PageModel, error) {
	var p models.PageModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Slug != nil && *dto.Slug != p.Slug {
		var count int64
		if err := s.db.Model(&models.PageModel{}).
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
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.MetaTitle != nil {
		updates["meta_title"] = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		updates["meta_description"] = *dto.MetaDescription
	}
	if dto.MetaKeywords != nil {
		updates["meta_keywords"] = *dto.MetaKeywords
	}
	if dto.IsPublished != nil {
		updates["is_published"] = *dto.IsPublished
	}

	if len(updates) > 0 {
		if err := s.db.Model(&p).Updates(updates).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return nil, apperr.Conflictf("slug already exists")
			}
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "page", p.ID, fmt.Sprintf("updated page %q", p.Title))
	return &p, nil
}

func (s *Service) Delete(id uint, actor activity.Actor) error {
	var p models.PageModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&p).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "page", id, fmt.Sprintf("deleted page %q", p.Title))
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/pages")
	g.GET("", h.list)
	g.GET("/:identifier", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:identifier", h.update)
	a.PATCH("/:identifier", h.update)
	a.DELETE("/:identifier", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	pages, total, err := h.svc.List(q, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, pages, total, q.Limit, q.Offset)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetByIdentifier(c.Param("identifier"), middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "title and slug are required")
		return
	}
	p, err := h.svc.Create(&dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	var dto UpdatePageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	p, err := h.svc.Update(id, &dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	if err := h.svc.Delete(id, activity.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("identifier"), 10, 64)
	return uint(id), err
}
