package app

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/pulsefit/core/internal/middleware"
	"github.com/pulsefit/core/internal/modules/activity"
	"github.com/pulsefit/core/internal/modules/auth"
	"github.com/pulsefit/core/internal/modules/blog"
	"github.com/pulsefit/core/internal/modules/class"
	"github.com/pulsefit/core/internal/modules/contact"
	"github.com/pulsefit/core/internal/modules/gallery"
	"github.com/pulsefit/core/internal/modules/media"
	"github.com/pulsefit/core/internal/modules/membership"
	"github.com/pulsefit/core/internal/modules/page"
	"github.com/pulsefit/core/internal/modules/settings"
	"github.com/pulsefit/core/internal/modules/testimonial"
	"github.com/pulsefit/core/internal/modules/trainer"
	"github.com/pulsefit/core/internal/pkg/response"
	goredis "github.com/redis/go-redis/v9"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.Static("/static", a.cfg.StaticDir)

	authMW := middleware.Auth(db)
	var raw *goredis.Client
	if a.rc != nil {
		raw = a.rc.Raw()
	}
	publicFormMW := middleware.RateLimit(raw)

	recorder := activity.NewRecorder(db, a.logger)
	uploadDir := filepath.Join(a.cfg.StaticDir, "uploads")

	api := r.Group("")
	api.Use(middleware.OptionalAuth(db))

	auth.NewHandler(auth.NewService(db, recorder)).RegisterRoutes(api, authMW)
	page.NewHandler(page.NewService(db, recorder)).RegisterRoutes(api, authMW)
	blog.NewHandler(blog.NewService(db, recorder)).RegisterRoutes(api, authMW)
	trainer.NewHandler(trainer.NewService(db, recorder)).RegisterRoutes(api, authMW)
	class.NewHandler(class.NewService(db, recorder)).RegisterRoutes(api, authMW)
	membership.NewHandler(membership.NewService(db, recorder)).RegisterRoutes(api, authMW, publicFormMW)
	testimonial.NewHandler(testimonial.NewService(db, recorder)).RegisterRoutes(api, authMW)
	gallery.NewHandler(gallery.NewService(db, recorder)).RegisterRoutes(api, authMW)
	media.NewHandler(media.NewService(db, recorder, uploadDir)).RegisterRoutes(api, authMW)
	contact.NewHandler(contact.NewService(db, recorder)).RegisterRoutes(api, authMW, publicFormMW)
	settings.NewHandler(settings.NewService(db, recorder)).RegisterRoutes(api, authMW)
	activity.NewHandler(db).RegisterRoutes(api, authMW)
}
