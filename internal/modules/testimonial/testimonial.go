package testimonial

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/middleware"
	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/apperr"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"github.com/pulsefit/core/internal/pkg/response"
	"gorm.io/gorm"
)

type CreateTestimonialDTO struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhoto string `json:"client_photo"`
	ClientTitle string `json:"client_title"`
	Content     string `json:"content" binding:"required"`
	Rating      *int   `json:"rating"`
	IsApproved  *bool  `json:"is_approved"`
	SortOrder   *int   `json:"sort_order"`
}

type UpdateTestimonialDTO struct {
	ClientName  *string `json:"client_name"`
	ClientPhoto *string `json:"client_photo"`
	ClientTitle *string `json:"client_title"`
	Content     *string `json:"content"`
	Rating      *int    `json:"rating"`
	IsApproved  *bool   `json:"is_approved"`
	SortOrder   *int    `json:"sort_order"`
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

type Service struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewService(db *gorm.DB, recorder *activity.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

func (s *Service) List(q pagination.Query, authed bool) ([]models.TestimonialModel, int64, error) {
	tx := s.db.Model(&models.TestimonialModel{}).Order("sort_order ASC, created_at DESC")
	if !authed {
		tx = tx.Where("is_approved = ?", true)
	}
	var items []models.TestimonialModel
	total, err := pagination.Paginate(tx, q, &items)
	return items, total, err
}

func (s *Service) Get(id uint, authed bool) (*models.TestimonialModel, error) {
	tx := s.db.Model(&models.TestimonialModel{})
	if !authed {
		tx = tx.Where("is_approved = ?", true)
	}
	var t models.TestimonialModel
	if err := tx.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *Service) Create(dto *CreateTestimonialDTO, actor activity.Actor) (*models.TestimonialModel, error) {
	t := models.TestimonialModel{
		ClientName:  dto.ClientName,
		ClientPhoto: dto.ClientPhoto,
		ClientTitle: dto.ClientTitle,
		Content:     dto.Content,
		Rating:      5,
	}
	if dto.Rating != nil {
		if !validRating(*dto.Rating) {
			return nil, apperr.Validationf("rating must be between 1 and 5")
		}
		t.Rating = *dto.Rating
	}
	if dto.IsApproved != nil {
		t.IsApproved = *dto.IsApproved
	}
	if dto.SortOrder != nil {
		t.SortOrder = *dto.SortOrder
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "create", "testimonial", t.ID,
		fmt.Sprintf("created testimonial from %q", t.ClientName))
	return &t, nil
}

func (s *Service) Update(id uint, dto *UpdateTestimonialDTO, actor activity.Actor) (*models.TestimonialModel, error) {
	var t models.TestimonialModel
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.ClientName != nil {
		updates["client_name"] = *dto.ClientName
	}
	if dto.ClientPhoto != nil {
		updates["client_photo"] = *dto.ClientPhoto
	}
	if dto.ClientTitle != nil {
		updates["client_title"] = *dto.ClientTitle
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Rating != nil {
		if !validRating(*dto.Rating) {
			return nil, apperr.Validationf("rating must be between 1 and 5")
		}
		updates["rating"] = *dto.Rating
	}
	if dto.IsApproved != nil {
		updates["is_approved"] = *dto.IsApproved
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(&t).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "testimonial", t.ID,
		fmt.Sprintf("updated testimonial from %q", t.ClientName))
	return &t, nil
}

func (s *Service) Delete(id uint, actor activity.Actor) error {
	var t models.TestimonialModel
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&t).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "testimonial", id,
		fmt.Sprintf("deleted testimonial from %q", t.ClientName))
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/testimonials")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.PATCH("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, total, err := h.svc.List(q, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, total, q.Limit, q.Offset)
}

func (h *Handler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	t, err := h.svc.Get(id, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, t)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateTestimonialDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "client_name and content are required")
		return
	}
	t, err := h.svc.Create(&dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, t)
}

func (h *Handler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	var dto UpdateTestimonialDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	t, err := h.svc.Update(id, &dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, t)
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
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
