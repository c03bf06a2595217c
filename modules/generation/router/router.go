package router

import (
	"outings-api/core/middleware"
	"outings-api/modules/generation/controller"

	"github.com/labstack/echo/v4"
)

type DraftRouter struct {
	controller *controller.DraftController
}

func NewDraftRouter(controller *controller.DraftController) *DraftRouter {
	return &DraftRouter{
		controller: controller,
	}
}

func (r *DraftRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	drafts := g.Group("/drafts")
	drafts.Use(mw.RequireUser())

	drafts.POST("", r.controller.Create)
	drafts.GET("/:id", r.controller.Get)
	drafts.PATCH("/:id", r.controller.Update)
	drafts.POST("/:id/generate", r.controller.Generate)
	drafts.POST("/:id/submit", r.controller.Submit)
	drafts.DELETE("/:id", r.controller.Delete)
}
