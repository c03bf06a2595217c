package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"outings-api/core/constants"
	"outings-api/core/errors"
	"outings-api/core/logger"
	"outings-api/core/metrics"
	"outings-api/core/utils"
	"outings-api/modules/activity/dto"
	"outings-api/modules/activity/entity"
	"outings-api/modules/activity/mapper"
	"outings-api/modules/activity/repository"
	"outings-api/modules/activity/validator"
	notificationDto "outings-api/modules/notification/dto"
	notificationEntity "outings-api/modules/notification/entity"
)

// Notifier delivers in-app notifications. Failures are logged and never fail the action.
type Notifier interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) *errors.AppError
}

// ActivityService is the entry point for user actions. It performs the gating the
// workflow leaves to its caller and builds page views from fresh snapshots.
type ActivityService struct {
	store     repository.StoreInterface
	workflow  *RegistrationWorkflow
	projector *ViewProjector
	notifier  Notifier
	now       func() time.Time
	location  *time.Location

	// joinMu makes the join gate and the insert one step.
	joinMu sync.Mutex
}

type ServiceOption func(*ActivityService)

// WithNow overrides the clock used for past/upcoming decisions.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *ActivityService) {
		s.now = now
	}
}

func WithNotifier(n Notifier) ServiceOption {
	return func(s *ActivityService) {
		s.notifier = n
	}
}

// WithLocation sets the zone used to read datetimes given without an offset.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *ActivityService) {
		s.location = loc
	}
}

func NewActivityService(store repository.StoreInterface, workflow *RegistrationWorkflow, projector *ViewProjector, opts ...ServiceOption) *ActivityService {
	s := &ActivityService{
		store:     store,
		workflow:  workflow,
		projector: projector,
		now:       time.Now,
		location:  time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Derivations returns read-side helpers over a fresh snapshot.
func (s *ActivityService) Derivations() *Derivations {
	return NewDerivations(s.store.Snapshot(), s.now()).
		WithReopenRejected(s.workflow.Policy().UpsertOnRegister)
}

// ===================== Pages =====================

func (s *ActivityService) Page(ctx context.Context, viewer *entity.User, page Page) (*dto.PageView, *errors.AppError) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "request cancelled", err)
	}
	return s.projector.Project(s.Derivations(), viewer, page)
}

// ===================== Activities =====================

// CreateActivity validates the form and stores the activity under organizerID.
// Nothing is written when validation fails.
func (s *ActivityService) CreateActivity(ctx context.Context, organizerID string, req *dto.CreateActivityRequest) (*dto.ActivityResponse, *errors.AppError) {
	validator.ApplyActivityDefaults(req)
	datetime, result := validator.ValidateCreateActivityRequest(req, s.location)
	if result.HasError() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, constants.MsgRequiredFields, nil).WithDetails(result)
	}

	data := mapper.ToActivityData(req, datetime)
	if strings.TrimSpace(data.Image) == "" {
		data.Image = utils.ActivityImageURL(data.Title)
	}

	activity, err := s.store.CreateActivity(ctx, data, organizerID)
	if err != nil {
		logger.Error("ActivityService:CreateActivity:Error", "organizer_id", organizerID, "error", err)
		return nil, storeError(err, errors.ErrCreateFailed)
	}

	metrics.ActivitiesCreated.Inc()
	logger.Info("ActivityService:CreateActivity:Success", "activity_id", activity.ID, "organizer_id", organizerID)

	snap := s.store.Snapshot()
	resp := mapper.ToActivityResponse(*activity, mapper.ToUserResponsePtr(snap.User(organizerID)))
	return &resp, nil
}

// ===================== Registrations =====================

// Join sends a join request after checking the join gate for userID.
func (s *ActivityService) Join(ctx context.Context, userID, activityID string) (*dto.RegistrationResponse, *errors.AppError) {
	s.joinMu.Lock()
	defer s.joinMu.Unlock()

	d := s.Derivations()
	switch d.JoinGate(userID, activityID) {
	case JoinNotFound:
		return nil, errors.NewAppError(errors.ErrNotFound, constants.MsgActivityNotFound, nil)
	case JoinAnonymous:
		return nil, errors.NewAppError(errors.ErrUnauthorized, constants.MsgLoginRequired, nil)
	case JoinOrganizer:
		return nil, errors.NewAppError(errors.ErrForbidden, constants.MsgOrganizerCannotJoin, nil)
	case JoinRegistered:
		return nil, errors.NewAppError(errors.ErrAlreadyExists, constants.MsgAlreadyRegistered, nil)
	case JoinPast:
		return nil, errors.NewAppError(errors.ErrActivityPast, constants.MsgActivityPast, nil)
	case JoinFull:
		return nil, errors.NewAppError(errors.ErrCapacityReached, constants.MsgActivityFull, nil)
	}

	reg, appErr := s.workflow.Register(ctx, userID, activityID)
	if appErr != nil {
		return nil, appErr
	}

	snap := d.Snapshot()
	if activity, ok := snap.Activity(activityID); ok {
		s.notify(ctx, &notificationDto.CreateNotificationRequest{
			UserID:  activity.OrganizerID,
			Type:    notificationEntity.TypeJoinRequest,
			Title:   constants.NotifJoinRequestTitle,
			Message: fmt.Sprintf(constants.NotifJoinRequestMessage, userName(snap, userID), activity.Title),
			Data:    map[string]string{"activity_id": activityID, "registration_id": reg.ID},
		})
	}

	resp := mapper.ToRegistrationResponse(*reg, nil)
	return &resp, nil
}

// Leave withdraws every registration userID holds on the activity.
func (s *ActivityService) Leave(ctx context.Context, userID, activityID string) (*dto.LeaveResponse, *errors.AppError) {
	removed, appErr := s.workflow.Unregister(ctx, userID, activityID)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.LeaveResponse{ActivityID: activityID, Removed: removed}, nil
}

// DecideRegistration lets the organizer accept or reject a join request.
// An unknown registration id is not an error; the response reports Applied=false.
func (s *ActivityService) DecideRegistration(ctx context.Context, actorID, registrationID string, req *dto.DecideRegistrationRequest) (*dto.DecideRegistrationResponse, *errors.AppError) {
	if result := validator.ValidateDecideRegistrationRequest(req); result.HasError() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "status must be accepted or rejected", nil).WithDetails(result)
	}

	snap := s.store.Snapshot()
	reg, ok := snap.Registration(registrationID)
	if !ok {
		logger.Warn("ActivityService:DecideRegistration:UnknownRegistration", "registration_id", registrationID)
		return &dto.DecideRegistrationResponse{Applied: false}, nil
	}
	activity, ok := snap.Activity(reg.ActivityID)
	if !ok || activity.OrganizerID != actorID {
		return nil, errors.NewAppError(errors.ErrForbidden, constants.MsgNotOrganizer, nil)
	}

	updated, appErr := s.workflow.Decide(ctx, registrationID, entity.RegistrationStatus(req.Status))
	if appErr != nil {
		return nil, appErr
	}
	if updated == nil {
		return &dto.DecideRegistrationResponse{Applied: false}, nil
	}

	title, message := constants.NotifRejectedTitle, constants.NotifRejectedMessage
	if updated.Status == entity.RegistrationStatusAccepted {
		title, message = constants.NotifAcceptedTitle, constants.NotifAcceptedMessage
	}
	s.notify(ctx, &notificationDto.CreateNotificationRequest{
		UserID:  updated.UserID,
		Type:    notificationEntity.TypeRegistrationDecided,
		Title:   title,
		Message: fmt.Sprintf(message, activity.Title),
		Data:    map[string]string{"activity_id": activity.ID, "registration_id": updated.ID, "status": string(updated.Status)},
	})

	resp := mapper.ToRegistrationResponse(*updated, mapper.ToUserResponsePtr(snap.User(updated.UserID)))
	return &dto.DecideRegistrationResponse{Applied: true, Registration: &resp}, nil
}

// ===================== Comments =====================

// AddComment stores a review. Only registered users may comment, and only once the
// activity is over.
func (s *ActivityService) AddComment(ctx context.Context, userID, activityID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, *errors.AppError) {
	if result := validator.ValidateCreateCommentRequest(req); result.HasError() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, constants.MsgCommentInvalid, nil).WithDetails(result)
	}

	d := s.Derivations()
	activity, ok := d.Snapshot().Activity(activityID)
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, constants.MsgActivityNotFound, nil)
	}
	if !d.CanComment(userID, activityID) {
		return nil, errors.NewAppError(errors.ErrForbidden, constants.MsgCommentNotAllowed, nil)
	}

	comment, err := s.store.CreateComment(ctx, userID, activityID, utils.SanitizeText(req.Content), req.Rating)
	if err != nil {
		logger.Error("ActivityService:AddComment:Error", "activity_id", activityID, "error", err)
		return nil, storeError(err, errors.ErrCreateFailed)
	}

	metrics.CommentsCreated.Inc()
	logger.Info("ActivityService:AddComment:Success", "comment_id", comment.ID, "activity_id", activityID)

	if activity.OrganizerID != userID {
		s.notify(ctx, &notificationDto.CreateNotificationRequest{
			UserID:  activity.OrganizerID,
			Type:    notificationEntity.TypeComment,
			Title:   constants.NotifCommentTitle,
			Message: fmt.Sprintf(constants.NotifCommentMessage, userName(d.Snapshot(), userID), comment.Rating, activity.Title),
			Data:    map[string]string{"activity_id": activityID, "comment_id": comment.ID},
		})
	}

	resp := mapper.ToCommentResponse(*comment, mapper.ToUserResponsePtr(d.Snapshot().User(userID)))
	return &resp, nil
}

func (s *ActivityService) notify(ctx context.Context, req *notificationDto.CreateNotificationRequest) {
	if s.notifier == nil {
		return
	}
	if appErr := s.notifier.Create(ctx, req); appErr != nil {
		logger.Warn("ActivityService:Notify:Error", "user_id", req.UserID, "type", req.Type, "error", appErr)
	}
}

func userName(snap *entity.Snapshot, userID string) string {
	if u, ok := snap.User(userID); ok {
		return u.Name
	}
	return userID
}
