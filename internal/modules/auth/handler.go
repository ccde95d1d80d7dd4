package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/middleware"
	"github.com/pulsefit/core/internal/models"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", h.login)
	a.POST("/logout", authMW, h.logout)
	a.GET("/me", authMW, h.me)
	a.PUT("/password", authMW, h.changePassword)
}

func toSummary(u *models.UserModel) userSummary {
	return userSummary{
		ID: u.ID, Email: u.Email, Name: u.Name,
		Role: u.Role, LastLogin: u.LastLogin,
	}
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}
	token, u, err := h.svc.Login(dto.Email, dto.Password, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, loginResponse{Token: token, User: toSummary(u)})
}

func (h *Handler) logout(c *gin.Context) {
	h.svc.Logout(activity.ActorFrom(c))
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	id := middleware.CurrentUserID(c)
	if id == nil {
		response.Unauthorized(c, "authentication required")
		return
	}
	u, err := h.svc.GetByID(*id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSummary(u))
}

func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "current_password and new_password are required")
		return
	}
	id := middleware.CurrentUserID(c)
	if id == nil {
		response.Unauthorized(c, "authentication required")
		return
	}
	if err := h.svc.ChangePassword(*id, dto.CurrentPassword, dto.NewPassword, activity.ActorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}
