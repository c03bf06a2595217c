package dto

import "time"

type NotificationResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Type      string            `json:"type"`
	Data      map[string]string `json:"data,omitempty"`
	IsRead    bool              `json:"is_read"`
	CreatedAt time.Time         `json:"created_at"`
}

type NotificationListResponse struct {
	Items      []NotificationResponse `json:"items"`
	TotalItems int                    `json:"total_items"`
	PageNumber int                    `json:"page_number"`
	PageSize   int                    `json:"page_size"`
}

type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}

type MarkAsReadResponse struct {
	Updated int `json:"updated"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

// CreateNotificationRequest is what other modules send to reach a user's inbox.
type CreateNotificationRequest struct {
	UserID  string            `json:"user_id"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Data    map[string]string `json:"data"`
}

// ListParams is the page selection for GetMyNotifications. PageNumber starts at 1.
type ListParams struct {
	PageNumber int
	PageSize   int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPageNumber   = 10000
)

// Normalize clamps the page selection into its valid range.
func (p ListParams) Normalize() ListParams {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageNumber > MaxPageNumber {
		p.PageNumber = MaxPageNumber
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}
