package controller

import (
	"outings-api/core/controller"
	"outings-api/core/errors"
	"outings-api/core/middleware"
	"outings-api/modules/activity/dto"
	"outings-api/modules/activity/service"

	"github.com/labstack/echo/v4"
)

type ActivityController struct {
	controller.BaseController
	service *service.ActivityService
}

func NewActivityController(service *service.ActivityService) *ActivityController {
	return &ActivityController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// ===================== Pages =====================

func (ac *ActivityController) renderPage(c echo.Context, page service.Page) error {
	view, appErr := ac.service.Page(c.Request().Context(), middleware.GetCurrentUser(c), page)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}
	return ac.SuccessResponse(c, view, "OK")
}

func (ac *ActivityController) Home(c echo.Context) error {
	return ac.renderPage(c, service.HomePage{})
}

// Catalog lists activities filtered by ?search= and ?type=; ?view=map adds markers.
func (ac *ActivityController) Catalog(c echo.Context) error {
	return ac.renderPage(c, service.CatalogPage{
		Search: c.QueryParam("search"),
		Type:   c.QueryParam("type"),
		Mode:   service.ViewMode(c.QueryParam("view")),
	})
}

func (ac *ActivityController) Detail(c echo.Context) error {
	return ac.renderPage(c, service.DetailPage{ActivityID: c.Param("id")})
}

func (ac *ActivityController) CreatePage(c echo.Context) error {
	return ac.renderPage(c, service.CreateActivityPage{})
}

func (ac *ActivityController) Profile(c echo.Context) error {
	return ac.renderPage(c, service.ProfilePage{})
}

func (ac *ActivityController) Dashboard(c echo.Context) error {
	return ac.renderPage(c, service.DashboardPage{})
}

func (ac *ActivityController) AuthPage(c echo.Context) error {
	return ac.renderPage(c, service.AuthPage{})
}

// ===================== Actions =====================

func (ac *ActivityController) CreateActivity(c echo.Context) error {
	requestData := new(dto.CreateActivityRequest)
	if err := c.Bind(requestData); err != nil {
		return ac.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	activity, appErr := ac.service.CreateActivity(c.Request().Context(), middleware.GetCurrentUserID(c), requestData)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}
	return ac.CreatedResponse(c, activity, "Activity created")
}

func (ac *ActivityController) Join(c echo.Context) error {
	reg, appErr := ac.service.Join(c.Request().Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}
	return ac.CreatedResponse(c, reg, "Join request sent")
}

func (ac *ActivityController) Leave(c echo.Context) error {
	resp, appErr := ac.service.Leave(c.Request().Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}
	return ac.SuccessResponse(c, resp, "Registration removed")
}

func (ac *ActivityController) AddComment(c echo.Context) error {
	requestData := new(dto.CreateCommentRequest)
	if err := c.Bind(requestData); err != nil {
		return ac.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	comment, appErr := ac.service.AddComment(c.Request().Context(), middleware.GetCurrentUserID(c), c.Param("id"), requestData)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}
	return ac.CreatedResponse(c, comment, "Comment added")
}

func (ac *ActivityController) DecideRegistration(c echo.Context) error {
	requestData := new(dto.DecideRegistrationRequest)
	if err := c.Bind(requestData); err != nil {
		return ac.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	resp, appErr := ac.service.DecideRegistration(c.Request().Context(), middleware.GetCurrentUserID(c), c.Param("id"), requestData)
	if appErr != nil {
		return ac.ErrorResponse(c, appErr)
	}
	return ac.SuccessResponse(c, resp, "Registration updated")
}
