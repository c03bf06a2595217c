package controller

import (
	"strconv"

	"outings-api/core/controller"
	"outings-api/core/errors"
	"outings-api/core/middleware"
	"outings-api/modules/notification/dto"
	"outings-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	service *service.NotificationService
	controller.BaseController
}

func NewNotificationController(service *service.NotificationService) *NotificationController {
	return &NotificationController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// GetMyNotifications lists the current user's notifications
// @Summary List notifications
// @Description Notifications of the current user, newest first
// @Tags Notification
// @Security UserID
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.NotificationListResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /notifications [get]
func (nc *NotificationController) GetMyNotifications(c echo.Context) error {
	params := dto.ListParams{
		PageNumber: queryInt(c, "page"),
		PageSize:   queryInt(c, "limit"),
	}

	result, appErr := nc.service.GetMyNotifications(c.Request().Context(), middleware.GetCurrentUserID(c), params)
	if appErr != nil {
		return nc.ErrorResponse(c, appErr)
	}
	return nc.SuccessResponse(c, result, "Notifications retrieved successfully")
}

// MarkAsRead marks specific notifications as read
// @Summary Mark as read
// @Tags Notification
// @Security UserID
// @Accept json
// @Produce json
// @Param request body dto.MarkAsReadRequest true "Notification ids"
// @Success 200 {object} dto.MarkAsReadResponse
// @Failure 400 {object} controller.ErrorResponse
// @Router /notifications/mark-read [put]
func (nc *NotificationController) MarkAsRead(c echo.Context) error {
	req := new(dto.MarkAsReadRequest)
	if err := c.Bind(req); err != nil {
		return nc.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	result, appErr := nc.service.MarkAsRead(c.Request().Context(), middleware.GetCurrentUserID(c), req)
	if appErr != nil {
		return nc.ErrorResponse(c, appErr)
	}
	return nc.SuccessResponse(c, result, "Marked as read successfully")
}

// MarkAllAsRead marks every notification as read
// @Summary Mark all as read
// @Tags Notification
// @Security UserID
// @Produce json
// @Success 200 {object} dto.MarkAsReadResponse
// @Router /notifications/mark-all-read [put]
func (nc *NotificationController) MarkAllAsRead(c echo.Context) error {
	result, appErr := nc.service.MarkAllAsRead(c.Request().Context(), middleware.GetCurrentUserID(c))
	if appErr != nil {
		return nc.ErrorResponse(c, appErr)
	}
	return nc.SuccessResponse(c, result, "Marked all as read successfully")
}

// CountUnread counts unread notifications
// @Summary Unread count
// @Tags Notification
// @Security UserID
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse
// @Router /notifications/unread-count [get]
func (nc *NotificationController) CountUnread(c echo.Context) error {
	result, appErr := nc.service.CountUnread(c.Request().Context(), middleware.GetCurrentUserID(c))
	if appErr != nil {
		return nc.ErrorResponse(c, appErr)
	}
	return nc.SuccessResponse(c, result, "Unread count retrieved")
}

// queryInt reads an integer query parameter. Missing or malformed values read as 0.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
