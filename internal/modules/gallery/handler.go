package gallery

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/middleware"
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
	g := rg.Group("/gallery")

	g.GET("/albums", h.listAlbums)
	g.GET("/albums/:id", h.getAlbum)
	g.GET("/images", h.listImages)
	g.GET("/images/:id", h.getImage)

	admin := g.Group("", authMW)
	admin.POST("/albums", h.createAlbum)
	admin.PUT("/albums/:id", h.updateAlbum)
	admin.PATCH("/albums/:id", h.updateAlbum)
	admin.DELETE("/albums/:id", h.deleteAlbum)
	admin.POST("/images", h.createImage)
	admin.PUT("/images/:id", h.updateImage)
	admin.PATCH("/images/:id", h.updateImage)
	admin.DELETE("/images/:id", h.deleteImage)
}

func (h *Handler) listAlbums(c *gin.Context) {
	q := pagination.FromContext(c)
	albums, total, err := h.svc.ListAlbums(q, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, albums, total, q.Limit, q.Offset)
}

func (h *Handler) getAlbum(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	album, err := h.svc.GetAlbum(id, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, album)
}

func (h *Handler) createAlbum(c *gin.Context) {
	var dto CreateAlbumDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	album, err := h.svc.CreateAlbum(&dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, album)
}

func (h *Handler) updateAlbum(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var dto UpdateAlbumDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	album, err := h.svc.UpdateAlbum(id, &dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, album)
}

func (h *Handler) deleteAlbum(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAlbum(id, activity.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listImages(c *gin.Context) {
	var albumID *uint
	if raw := c.Query("album_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "album_id must be numeric")
			return
		}
		id := uint(v)
		albumID = &id
	}
	q := pagination.FromContext(c)
	images, total, err := h.svc.ListImages(albumID, q, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, images, total, q.Limit, q.Offset)
}

func (h *Handler) getImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	img, err := h.svc.GetImage(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, img)
}

func (h *Handler) createImage(c *gin.Context) {
	var dto CreateImageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	img, err := h.svc.CreateImage(&dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, img)
}

func (h *Handler) updateImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var dto UpdateImageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	img, err := h.svc.UpdateImage(id, &dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, img)
}

func (h *Handler) deleteImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteImage(id, activity.ActorFrom(c)); err != nil {
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
