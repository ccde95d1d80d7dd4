package trainer

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

type CreateTrainerDTO struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	Photo     string `json:"photo"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	IsActive  *bool  `json:"is_active"`
	SortOrder *int   `json:"sort_order"`
}

type UpdateTrainerDTO struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Bio       *string `json:"bio"`
	Photo     *string `json:"photo"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	IsActive  *bool   `json:"is_active"`
	SortOrder *int    `json:"sort_order"`
}

type Service struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewService(db *gorm.DB, recorder *activity.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

func (s *Service) List(q pagination.Query, authed bool) ([]models.TrainerModel, int64, error) {
	tx := s.db.Model(&models.TrainerModel{}).Order("sort_order ASC, created_at DESC")
	if !authed {
		tx = tx.Where("is_active = ?", true)
	}
	var trainers []models.TrainerModel
	total, err := pagination.Paginate(tx, q, &trainers)
	return trainers, total, err
}

func (s *Service) Get(id uint, authed bool) (*models.TrainerModel, error) {
	tx := s.db.Model(&models.TrainerModel{})
	if !authed {
		tx = tx.Where("is_active = ?", true)
	}
	var t models.TrainerModel
	if err := tx.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *Service) Create(dto *CreateTrainerDTO, actor activity.Actor) (*models.TrainerModel, error) {
	t := models.TrainerModel{
		Name:      dto.Name,
		Specialty: dto.Specialty,
		Bio:       dto.Bio,
		Photo:     dto.Photo,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Instagram: dto.Instagram,
		Facebook:  dto.Facebook,
		Twitter:   dto.Twitter,
		IsActive:  true,
	}
	if dto.IsActive != nil {
		t.IsActive = *dto.IsActive
	}
	if dto.SortOrder != nil {
		t.SortOrder = *dto.SortOrder
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "create", "trainer", t.ID, fmt.Sprintf("created trainer %q", t.Name))
	return &t, nil
}

func (s *Service) Update(id uint, dto *UpdateTrainerDTO, actor activity.Actor) (*models.TrainerModel, error) {
	var t models.TrainerModel
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Specialty != nil {
		updates["specialty"] = *dto.Specialty
	}
	if dto.Bio != nil {
		updates["bio"] = *dto.Bio
	}
	if dto.Photo != nil {
		updates["photo"] = *dto.Photo
	}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.Phone != nil {
		updates["phone"] = *dto.Phone
	}
	if dto.Instagram != nil {
		updates["instagram"] = *dto.Instagram
	}
	if dto.Facebook != nil {
		updates["facebook"] = *dto.Facebook
	}
	if dto.Twitter != nil {
		updates["twitter"] = *dto.Twitter
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(&t).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "trainer", t.ID, fmt.Sprintf("updated trainer %q", t.Name))
	return &t, nil
}

func (s *Service) Delete(id uint, actor activity.Actor) error {
	var t models.TrainerModel
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&t).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "trainer", id, fmt.Sprintf("deleted trainer %q", t.Name))
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/trainers")
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
	trainers, total, err := h.svc.List(q, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, trainers, total, q.Limit, q.Offset)
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
	var dto CreateTrainerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "name is required")
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
	var dto UpdateTrainerDTO
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
