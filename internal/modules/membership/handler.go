package membership

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, publicFormMW gin.HandlerFunc) {
	g := rg.Group("/membership")
	g.GET("", h.listPlans)
	g.POST("/inquiry", publicFormMW, h.createInquiry)

	a := g.Group("", authMW)
	a.POST("", h.createPlan)
	a.GET("/inquiries/all", h.listInquiries)
	a.GET("/inquiries/:id", h.getInquiry)
	a.PUT("/inquiries/:id/status", h.updateInquiryStatus)
	a.DELETE("/inquiries/:id", h.deleteInquiry)

	// Registered after the static /inquiry and /inquiries segments so
	// gin routes ids correctly.
	g.GET("/:id", h.getPlan)
	a2 := g.Group("", authMW)
	a2.PUT("/:id", h.updatePlan)
	a2.PATCH("/:id", h.updatePlan)
	a2.DELETE("/:id", h.deletePlan)
}

func (h *Handler) listPlans(c *gin.Context) {
	q := pagination.FromContext(c)
	plans, total, err := h.svc.ListPlans(q, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, plans, total, q.Limit, q.Offset)
}

func (h *Handler) getPlan(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	p, err := h.svc.GetPlan(id, middleware.IsAuthenticated(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) createPlan(c *gin.Context) {
	var dto CreatePlanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "name and price are required")
		return
	}
	p, err := h.svc.CreatePlan(&dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) updatePlan(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	var dto UpdatePlanDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	p, err := h.svc.UpdatePlan(id, &dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) deletePlan(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	if err := h.svc.DeletePlan(id, activity.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) createInquiry(c *gin.Context) {
	var dto CreateInquiryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "name and email are required")
		return
	}
	inq, err := h.svc.CreateInquiry(&dto, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, inq)
}

func (h *Handler) listInquiries(c *gin.Context) {
	q := pagination.FromContext(c)
	inquiries, total, err := h.svc.ListInquiries(q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, inquiries, total, q.Limit, q.Offset)
}

func (h *Handler) getInquiry(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	v, err := h.svc.GetInquiry(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, v)
}

func (h *Handler) updateInquiryStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	var dto UpdateInquiryStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "status is required")
		return
	}
	inq, err := h.svc.UpdateInquiryStatus(id, dto.Status, activity.ActorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, inq)
}

func (h *Handler) deleteInquiry(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}
	if err := h.svc.DeleteInquiry(id, activity.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
