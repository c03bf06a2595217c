package controller

import (
	"net/http"

	"outings-api/core/controller"
	"outings-api/core/errors"
	"outings-api/core/middleware"
	"outings-api/modules/generation/dto"
	"outings-api/modules/generation/service"

	"github.com/labstack/echo/v4"
)

type DraftController struct {
	controller.BaseController
	service *service.DraftService
}

func NewDraftController(service *service.DraftService) *DraftController {
	return &DraftController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

func (dc *DraftController) Create(c echo.Context) error {
	requestData := new(dto.CreateDraftRequest)
	if c.Request().ContentLength != 0 {
		if err := c.Bind(requestData); err != nil {
			return dc.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
		}
	}

	draft := dc.service.Create(middleware.GetCurrentUserID(c), &requestData.CreateActivityRequest)
	return dc.CreatedResponse(c, draft, "Draft created")
}

func (dc *DraftController) Get(c echo.Context) error {
	draft, appErr := dc.service.Get(middleware.GetCurrentUserID(c), c.Param("id"))
	if appErr != nil {
		return dc.ErrorResponse(c, appErr)
	}
	return dc.SuccessResponse(c, draft, "OK")
}

func (dc *DraftController) Update(c echo.Context) error {
	requestData := new(dto.UpdateDraftRequest)
	if err := c.Bind(requestData); err != nil {
		return dc.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	draft, appErr := dc.service.Update(middleware.GetCurrentUserID(c), c.Param("id"), requestData)
	if appErr != nil {
		return dc.ErrorResponse(c, appErr)
	}
	return dc.SuccessResponse(c, draft, "Draft updated")
}

// Generate starts a generation and answers 202 with the draft in its generating
// state. With ?wait=true the handler waits for the result instead.
func (dc *DraftController) Generate(c echo.Context) error {
	requestData := new(dto.GenerateRequest)
	if err := c.Bind(requestData); err != nil {
		return dc.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	userID := middleware.GetCurrentUserID(c)
	draft, done, appErr := dc.service.StartGeneration(userID, c.Param("id"), requestData.Prompt)
	if appErr != nil {
		return dc.ErrorResponse(c, appErr)
	}

	if c.QueryParam("wait") != "true" {
		return c.JSON(http.StatusAccepted, controller.NewSuccessResponse(http.StatusAccepted, draft, "Generation started"))
	}

	select {
	case <-done:
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	}

	draft, appErr = dc.service.Get(userID, c.Param("id"))
	if appErr != nil {
		return dc.ErrorResponse(c, appErr)
	}
	return dc.SuccessResponse(c, draft, "Generation finished")
}

func (dc *DraftController) Submit(c echo.Context) error {
	activity, appErr := dc.service.Submit(c.Request().Context(), middleware.GetCurrentUserID(c), c.Param("id"))
	if appErr != nil {
		return dc.ErrorResponse(c, appErr)
	}
	return dc.CreatedResponse(c, activity, "Activity created")
}

func (dc *DraftController) Delete(c echo.Context) error {
	if appErr := dc.service.Delete(middleware.GetCurrentUserID(c), c.Param("id")); appErr != nil {
		return dc.ErrorResponse(c, appErr)
	}
	return dc.SuccessResponse(c, nil, "Draft deleted")
}
