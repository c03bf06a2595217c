package router

import (
	"outings-api/core/middleware"
	"outings-api/modules/activity/controller"

	"github.com/labstack/echo/v4"
)

type ActivityRouter struct {
	controller *controller.ActivityController
}

func NewActivityRouter(controller *controller.ActivityController) *ActivityRouter {
	return &ActivityRouter{
		controller: controller,
	}
}

// Register mounts the page and action routes. Pages are public and project the auth
// page themselves when they need a viewer; actions require one.
func (r *ActivityRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	pages := g.Group("/pages")
	pages.GET("/home", r.controller.Home)
	pages.GET("/create", r.controller.CreatePage)

	me := g.Group("/me")
	me.GET("/profile", r.controller.Profile)
	me.GET("/dashboard", r.controller.Dashboard)

	g.GET("/auth", r.controller.AuthPage)

	activities := g.Group("/activities")
	activities.GET("", r.controller.Catalog)
	activities.GET("/:id", r.controller.Detail)
	activities.POST("", r.controller.CreateActivity, mw.RequireUser())
	activities.POST("/:id/registrations", r.controller.Join, mw.RequireUser())
	activities.DELETE("/:id/registrations", r.controller.Leave, mw.RequireUser())
	activities.POST("/:id/comments", r.controller.AddComment, mw.RequireUser())

	registrations := g.Group("/registrations")
	registrations.Use(mw.RequireUser())
	registrations.PUT("/:id/status", r.controller.DecideRegistration)
}
