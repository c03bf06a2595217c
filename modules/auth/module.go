package auth

import (
	"outings-api/modules/activity/repository"
	"outings-api/modules/auth/controller"
	"outings-api/modules/auth/router"
	"outings-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(g *echo.Group, authService service.AuthServiceInterface) {
	ctrl := controller.NewAuthController(authService)
	router.NewAuthRouter(ctrl).Register(g)
}

// GetService creates the AuthService used by the current-user middleware.
func GetService(store repository.StoreInterface) *service.AuthService {
	return service.NewAuthService(store)
}
