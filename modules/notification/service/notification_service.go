package service

import (
	"context"
	"strings"
	"time"

	"outings-api/core/errors"
	"outings-api/core/logger"
	"outings-api/core/metrics"
	"outings-api/core/utils"
	"outings-api/modules/notification/dto"
	"outings-api/modules/notification/entity"
	"outings-api/modules/notification/mapper"
	"outings-api/modules/notification/repository"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
	now  func() time.Time
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

// Create stores a notification in the recipient's inbox.
func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) *errors.AppError {
	if strings.TrimSpace(req.UserID) == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "recipient is required", nil)
	}

	notif := &entity.Notification{
		ID:        utils.GenerateID(utils.PrefixNotification),
		UserID:    req.UserID,
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		Data:      req.Data,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		logger.Error("NotificationService:Create:Error", "user_id", req.UserID, "type", req.Type, "error", err)
		return errors.NewAppError(errors.ErrCreateFailed, "failed to create notification", err)
	}

	metrics.NotificationsCreated.WithLabelValues(req.Type).Inc()
	logger.Debug("NotificationService:Create:Success", "notification_id", notif.ID, "user_id", req.UserID, "type", req.Type)
	return nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID string, params dto.ListParams) (*dto.NotificationListResponse, *errors.AppError) {
	params = params.Normalize()
	page, err := s.repo.GetByUserID(ctx, userID, params.PageNumber, params.PageSize)
	if err != nil {
		logger.Error("NotificationService:GetMyNotifications:Error", "user_id", userID, "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get notifications", err)
	}
	return mapper.ToNotificationListResponse(page), nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID string, req *dto.MarkAsReadRequest) (*dto.MarkAsReadResponse, *errors.AppError) {
	if len(req.IDs) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "ids is required", nil)
	}
	updated, err := s.repo.MarkAsRead(ctx, userID, req.IDs)
	if err != nil {
		logger.Error("NotificationService:MarkAsRead:Error", "user_id", userID, "error", err)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to mark as read", err)
	}
	return &dto.MarkAsReadResponse{Updated: updated}, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) (*dto.MarkAsReadResponse, *errors.AppError) {
	updated, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		logger.Error("NotificationService:MarkAllAsRead:Error", "user_id", userID, "error", err)
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to mark all as read", err)
	}
	return &dto.MarkAsReadResponse{Updated: updated}, nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID string) (*dto.UnreadCountResponse, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		logger.Error("NotificationService:CountUnread:Error", "user_id", userID, "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to count unread", err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}
