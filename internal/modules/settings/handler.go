package settings

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"github.com/pulsefit/core/internal/pkg/response"
)

type setValueDTO struct {
	Value string `json:"value"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/settings")

	g.GET("", h.all)
	g.PUT("", authMW, h.bulkSet)
	g.GET("/bulletins/active", h.activeBulletins)

	admin := g.Group("/bulletins", authMW)
	admin.GET("", h.listBulletins)
	admin.POST("", h.createBulletin)
	admin.GET("/:id", h.getBulletin)
	admin.PUT("/:id", h.updateBulletin)
	admin.PATCH("/:id", h.updateBulletin)
	admin.DELETE("/:id", h.deleteBulletin)

	g.GET("/:key", h.get)
	g.PUT("/:key", authMW, h.set)
}

func (h *Handler) all(c *gin.Context) {
	values, err := h.svc.All()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, values)
}

func (h *Handler) get(c *gin.Context) {
	row, err := h.svc.Get(c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

func (h *Handler) set(c *gin.Context) {
	var dto setValueDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	row, err := h.svc.Set(c.Param("key"), dto.Value, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

func (h *Handler) bulkSet(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.BulkSet(values, activity.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	all, err := h.svc.All()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, all)
}

func (h *Handler) activeBulletins(c *gin.Context) {
	bulletins, err := h.svc.ActiveBulletins(time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bulletins)
}

func (h *Handler) listBulletins(c *gin.Context) {
	q := pagination.FromContext(c)
	bulletins, total, err := h.svc.ListBulletins(q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, bulletins, total, q.Limit, q.Offset)
}

func (h *Handler) getBulletin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.svc.GetBulletin(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) createBulletin(c *gin.Context) {
	var dto CreateBulletinDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.CreateBulletin(&dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, b)
}

func (h *Handler) updateBulletin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var dto UpdateBulletinDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.UpdateBulletin(id, &dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) deleteBulletin(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteBulletin(id, activity.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "id must be numeric")
		return 0, false
	}
	return uint(v), true
}
