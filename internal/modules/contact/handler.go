package contact

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"github.com/pulsefit/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public create endpoint behind the form
// middleware chain (rate limiting) and the admin surface behind auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, publicFormMW gin.HandlerFunc) {
	g := rg.Group("/contact")
	g.POST("", publicFormMW, h.create)

	admin := g.Group("/submissions", authMW)
	admin.GET("", h.list)
	admin.GET("/:id", h.get)
	admin.PUT("/:id/read", h.markRead)
	admin.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateSubmissionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sub, err := h.svc.Create(&dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	subs, total, err := h.svc.List(c.Query("unread") == "true", q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, subs, total, q.Limit, q.Offset)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sub, err := h.svc.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sub)
}

func (h *Handler) markRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sub, err := h.svc.MarkRead(id, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sub)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(id, activity.ActorFrom(c)); err != nil {
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
