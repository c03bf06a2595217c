package router

import (
	"outings-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		controller: controller,
	}
}

func (r *AuthRouter) Register(g *echo.Group) {
	auth := g.Group("/auth")
	auth.POST("/login", r.controller.Login)
	auth.POST("/signup", r.controller.Signup)
}
