package mapper

import (
	"outings-api/modules/notification/dto"
	"outings-api/modules/notification/entity"
)

func ToNotificationResponse(n entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationListResponse(page *entity.PaginatedNotifications) *dto.NotificationListResponse {
	items := make([]dto.NotificationResponse, 0, len(page.Items))
	for _, n := range page.Items {
		items = append(items, ToNotificationResponse(n))
	}
	return &dto.NotificationListResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
