package repository

import (
	"context"
	"sync"

	"outings-api/modules/notification/entity"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID string, pageNumber, pageSize int) (*entity.PaginatedNotifications, error)
	MarkAsRead(ctx context.Context, userID string, ids []string) (int, error)
	MarkAllAsRead(ctx context.Context, userID string) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

// NotificationRepository keeps each user's inbox in memory, oldest first.
type NotificationRepository struct {
	mu    sync.RWMutex
	inbox map[string][]entity.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{inbox: make(map[string][]entity.Notification)}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inbox[notification.UserID] = append(r.inbox[notification.UserID], cloneNotification(*notification))
	return nil
}

// GetByUserID returns one page of the inbox, newest first.
func (r *NotificationRepository) GetByUserID(ctx context.Context, userID string, pageNumber, pageSize int) (*entity.PaginatedNotifications, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	all := r.inbox[userID]
	items := make([]entity.Notification, 0, min(pageSize, len(all)))
	// pages past the end are empty; checked before multiplying so the offset cannot overflow
	start := -1
	if pageNumber-1 <= len(all)/pageSize {
		start = len(all) - 1 - (pageNumber-1)*pageSize
	}
	for i := start; i >= 0 && len(items) < pageSize; i-- {
		items = append(items, cloneNotification(all[i]))
	}

	return &entity.PaginatedNotifications{
		Items:      items,
		TotalItems: len(all),
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

// MarkAsRead flags the given ids read and returns how many changed. Ids belonging to
// other users are ignored.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID string, ids []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for i, n := range r.inbox[userID] {
		if _, ok := wanted[n.ID]; ok && !n.IsRead {
			r.inbox[userID][i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for i, n := range r.inbox[userID] {
		if !n.IsRead {
			r.inbox[userID][i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.inbox[userID] {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func cloneNotification(n entity.Notification) entity.Notification {
	if n.Data != nil {
		data := make(map[string]string, len(n.Data))
		for k, v := range n.Data {
			data[k] = v
		}
		n.Data = data
	}
	return n
}
