package class

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

type CreateClassDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	TrainerID   *uint  `json:"trainer_id"`
	Schedule    string `json:"schedule"`
	Duration    int    `json:"duration"`
	Capacity    int    `json:"capacity"`
	Price       *int   `json:"price"`
	Difficulty  string `json:"difficulty"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   *int   `json:"sort_order"`
}

type UpdateClassDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	TrainerID   *uint   `json:"trainer_id"`
	Schedule    *string `json:"schedule"`
	Duration    *int    `json:"duration"`
	Capacity    *int    `json:"capacity"`
	Price       *int    `json:"price"`
	Difficulty  *string `json:"difficulty"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

// View is a class row joined with its trainer's display fields. The
// trainer reference is a plain nullable id, so the join is a LEFT JOIN
// and both fields stay empty for dangling references.
type View struct {
	models.ClassModel
	TrainerName  string `json:"trainer_name"`
	TrainerPhoto string `json:"trainer_photo"`
}

type Service struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewService(db *gorm.DB, recorder *activity.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

func (s *Service) joined() *gorm.DB {
	return s.db.Model(&models.ClassModel{}).
		Select("classes.*, trainers.name AS trainer_name, trainers.photo AS trainer_photo").
		Joins("LEFT JOIN trainers ON trainers.id = classes.trainer_id")
}

func (s *Service) List(q pagination.Query, authed bool) ([]View, int64, error) {
	tx := s.joined().Order("classes.sort_order ASC, classes.created_at DESC")
	if !authed {
		tx = tx.Where("classes.is_active = ?", true)
	}
	var classes []View
	total, err := pagination.Paginate(tx, q, &classes)
	return classes, total, err
}

func (s *Service) Get(id uint, authed bool) (*View, error) {
	tx := s.joined()
	if !authed {
		tx = tx.Where("classes.is_active = ?", true)
	}
	var v View
	if err := tx.First(&v, "classes.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *Service) Create(dto *CreateClassDTO, actor activity.Actor) (*models.ClassModel, error) {
	if dto.Price != nil && *dto.Price < 0 {
		return nil, apperr.Validationf("price must be non-negative")
	}

	cls := models.ClassModel{
		Name:        dto.Name,
		Description: dto.Description,
		TrainerID:   dto.TrainerID,
		Schedule:    dto.Schedule,
		Duration:    dto.Duration,
		Capacity:    dto.Capacity,
		Difficulty:  dto.Difficulty,
		IsActive:    true,
	}
	if dto.Price != nil {
		cls.Price = *dto.Price
	}
	if dto.IsActive != nil {
		cls.IsActive = *dto.IsActive
	}
	if dto.SortOrder != nil {
		cls.SortOrder = *dto.SortOrder
	}
	if err := s.db.Create(&cls).Error; err != nil {
		return nil, err
	}
	s.recorder.Record(actor, "create", "class", cls.ID, fmt.Sprintf("created class %q", cls.Name))
	return &cls, nil
}

func (s *Service) Update(id uint, dto *UpdateClassDTO, actor activity.Actor) (*models.ClassModel, error) {
	var cls models.ClassModel
	if err := s.db.First(&cls, "id = ?", id).Error; err != nil {
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
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.TrainerID != nil {
		updates["trainer_id"] = *dto.TrainerID
	}
	if dto.Schedule != nil {
		updates["schedule"] = *dto.Schedule
	}
	if dto.Duration != nil {
		updates["duration"] = *dto.Duration
	}
	if dto.Capacity != nil {
		updates["capacity"] = *dto.Capacity
	}
	if dto.Price != nil {
		updates["price"] = *dto.Price
	}
	if dto.Difficulty != nil {
		updates["difficulty"] = *dto.Difficulty
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(&cls).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.recorder.Record(actor, "update", "class", cls.ID, fmt.Sprintf("updated class %q", cls.Name))
	return &cls, nil
}

func (s *Service) Delete(id uint, actor activity.Actor) error {
	var cls models.ClassModel
	if err := s.db.First(&cls, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if err := s.db.Delete(&cls).Error; err != nil {
		return err
	}
	s.recorder.Record(actor, "delete", "class", id, fmt.Sprintf("deleted class %q", cls.Name))
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/classes")
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
	classes, total, err := h.svc.List(q, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, classes, total, q.Limit, q.Offset)
}

func (h *Handler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	v, err := h.svc.Get(id, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, v)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateClassDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	cls, err := h.svc.Create(&dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cls)
}

func (h *Handler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	var dto UpdateClassDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	cls, err := h.svc.Update(id, &dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cls)
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
