package media

import (
	"mime/multipart"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/media", authMW)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.upload)
	g.PUT("/:id", h.update)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Query("type"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, total, q.Limit, q.Offset)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := h.svc.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

func (h *Handler) upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "multipart form required")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}

	save := func(fh *multipart.FileHeader, dst string) error {
		return c.SaveUploadedFile(fh, dst)
	}
	stored, err := h.svc.Upload(c.Request.Context(), files, save, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, stored)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var dto UpdateMediaDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.Update(id, &dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
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
