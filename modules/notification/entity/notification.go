package entity

import "time"

// Notification types
const (
	TypeJoinRequest         = "join_request"
	TypeRegistrationDecided = "registration_decided"
	TypeComment             = "comment"
)

type Notification struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Type      string            `json:"type"`
	Data      map[string]string `json:"data"`
	IsRead    bool              `json:"is_read"`
	CreatedAt time.Time         `json:"created_at"`
}

type PaginatedNotifications struct {
	Items      []Notification `json:"items"`
	TotalItems int            `json:"total_items"`
	PageNumber int            `json:"page_number"`
	PageSize   int            `json:"page_size"`
}
