package notification

import (
	"outings-api/core/middleware"
	"outings-api/modules/notification/controller"
	"outings-api/modules/notification/repository"
	"outings-api/modules/notification/router"
	"outings-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func GetService() *service.NotificationService {
	return service.NewNotificationService(repository.NewNotificationRepository())
}

// Init registers the inbox routes for svc.
func Init(e *echo.Group, svc *service.NotificationService, mw *middleware.Middleware) {
	ctrl := controller.NewNotificationController(svc)
	router.NewNotificationRouter(ctrl).Register(e, mw)
}
