package blog

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/middleware"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/pagination"
	"github.com/pulsefit/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/blog")
	g.GET("", h.list)
	g.GET("/:slug", h.getBySlug)

	a := g.Group("", authMW)
	a.POST("", h.create)
	a.PUT("/:slug", h.update)
	a.PATCH("/:slug", h.update)
	a.DELETE("/:slug", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	posts, total, err := h.svc.List(q, c.Query("category"), middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, posts, total, q.Limit, q.Offset)
}

func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Param("slug"), middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
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
	id, err := strconv.ParseUint(c.Param("slug"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	p, err := h.svc.Update(uint(id), &dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("slug"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	if err := h.svc.Delete(uint(id), activity.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
