// Package activity is the append-only journal of mutating actions.
package activity

import (
	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/middleware"
	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"github.com/pulsefit/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Actor identifies who performed a mutation, carried from the boundary
// into every service call that journals.
type Actor struct {
	UserID *uint
	IP     string
}

// ActorFrom builds an Actor from the resolved request identity.
func ActorFrom(c *gin.Context) Actor {
	return Actor{UserID: middleware.CurrentUserID(c), IP: c.ClientIP()}
}

// Recorder appends journal rows. A failed append never fails the
// mutation it describes; it is logged and dropped.
type Recorder struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRecorder(db *gorm.DB, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{db: db, log: log}
}

// Record appends one journal row.
func (r *Recorder) Record(actor Actor, action, entityType string, entityID uint, details string) {
	row := models.ActivityLogModel{
		UserID:     actor.UserID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  actor.IP,
	}
	if err := r.db.Create(&row).Error; err != nil {
		r.log.Error("activity journal append failed",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Error(err))
	}
}

// logEntry is a journal row joined with the acting user for listings.
type logEntry struct {
	models.ActivityLogModel
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

// RegisterRoutes mounts the admin journal listing.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/settings/activity/logs", authMW, h.list)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	if q.Limit == 0 {
		q.Limit = 50
	}

	tx := h.db.Model(&models.ActivityLogModel{}).
		Select("activity_logs.*, users.name AS user_name, users.email AS user_email").
		Joins("LEFT JOIN users ON users.id = activity_logs.user_id").
		Order("activity_logs.created_at DESC, activity_logs.id DESC")

	if action := c.Query("action"); action != "" {
		tx = tx.Where("activity_logs.action = ?", action)
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		tx = tx.Where("activity_logs.entity_type = ?", entityType)
	}

	var entries []logEntry
	total, err := pagination.Paginate(tx, q, &entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, entries, total, q.Limit, q.Offset)
}
