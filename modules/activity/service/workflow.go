package service

import (
	"context"
	stderrors "errors"
	"sync"

	"outings-api/core/constants"
	"outings-api/core/errors"
	"outings-api/core/logger"
	"outings-api/core/metrics"
	"outings-api/modules/activity/entity"
	"outings-api/modules/activity/repository"
)

// Policy selects the optional registration rules. The zero value is permissive:
// duplicate join requests are kept and accepts are never bounded by capacity.
type Policy struct {
	EnforceCapacityOnAccept bool
	UpsertOnRegister        bool
}

// RegistrationWorkflow drives a registration through pending -> accepted | rejected.
// Gating (past dates, organizer, full activity) belongs to the caller.
type RegistrationWorkflow struct {
	store  repository.StoreInterface
	policy Policy

	// decideMu makes the pending check, the capacity check and the update one step.
	decideMu sync.Mutex
}

func NewRegistrationWorkflow(store repository.StoreInterface, policy Policy) *RegistrationWorkflow {
	return &RegistrationWorkflow{
		store:  store,
		policy: policy,
	}
}

func (w *RegistrationWorkflow) Policy() Policy {
	return w.policy
}

// Register files a pending join request. With UpsertOnRegister an existing record for
// the pair is put back to pending instead of adding a second one.
func (w *RegistrationWorkflow) Register(ctx context.Context, userID, activityID string) (*entity.Registration, *errors.AppError) {
	var (
		reg *entity.Registration
		err error
	)
	if w.policy.UpsertOnRegister {
		reg, _, err = w.store.ReopenOrCreateRegistration(ctx, userID, activityID)
	} else {
		reg, err = w.store.CreateRegistration(ctx, userID, activityID)
	}
	if err != nil {
		logger.Error("RegistrationWorkflow:Register:Error", "user_id", userID, "activity_id", activityID, "error", err)
		return nil, storeError(err, errors.ErrCreateFailed)
	}

	metrics.RegistrationActions.WithLabelValues(metrics.ActionRegister).Inc()
	logger.Info("RegistrationWorkflow:Register:Success", "registration_id", reg.ID, "activity_id", activityID)
	return reg, nil
}

// Unregister removes every registration the user holds on the activity, whatever its
// status. Calling it twice is harmless.
func (w *RegistrationWorkflow) Unregister(ctx context.Context, userID, activityID string) (int, *errors.AppError) {
	removed, err := w.store.RemoveRegistration(ctx, userID, activityID)
	if err != nil {
		logger.Error("RegistrationWorkflow:Unregister:Error", "user_id", userID, "activity_id", activityID, "error", err)
		return 0, storeError(err, errors.ErrDeleteFailed)
	}

	if removed > 0 {
		metrics.RegistrationActions.WithLabelValues(metrics.ActionUnregister).Inc()
	}
	logger.Info("RegistrationWorkflow:Unregister:Success", "activity_id", activityID, "removed", removed)
	return removed, nil
}

// Decide moves a pending registration to accepted or rejected. An unknown id is a
// silent no-op and returns (nil, nil). Decisions are final; a second one is refused.
func (w *RegistrationWorkflow) Decide(ctx context.Context, registrationID string, status entity.RegistrationStatus) (*entity.Registration, *errors.AppError) {
	if !status.IsDecision() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "status must be accepted or rejected", repository.ErrInvalidStatus)
	}

	w.decideMu.Lock()
	defer w.decideMu.Unlock()

	reg, ok := w.store.RegistrationByID(registrationID)
	if !ok {
		logger.Warn("RegistrationWorkflow:Decide:UnknownRegistration", "registration_id", registrationID)
		return nil, nil
	}
	if reg.Status != entity.RegistrationStatusPending {
		return nil, errors.NewAppError(errors.ErrConflict, constants.MsgAlreadyDecided, nil).
			WithDetails(map[string]string{"status": string(reg.Status)})
	}

	if status == entity.RegistrationStatusAccepted && w.policy.EnforceCapacityOnAccept {
		if w.isFull(reg.ActivityID) {
			return nil, errors.NewAppError(errors.ErrCapacityReached, constants.MsgActivityFull, nil)
		}
	}

	updated, err := w.store.UpdateRegistrationStatus(ctx, registrationID, status)
	if err != nil {
		logger.Error("RegistrationWorkflow:Decide:Error", "registration_id", registrationID, "error", err)
		return nil, storeError(err, errors.ErrUpdateFailed)
	}
	if !updated {
		// withdrawn between the snapshot and the update
		return nil, nil
	}

	reg.Status = status
	metrics.RegistrationDecisions.WithLabelValues(string(status)).Inc()
	logger.Info("RegistrationWorkflow:Decide:Success", "registration_id", registrationID, "status", status)
	return &reg, nil
}

// isFull must be called with decideMu held.
func (w *RegistrationWorkflow) isFull(activityID string) bool {
	activity, ok := w.store.ActivityByID(activityID)
	if !ok {
		return false
	}
	return w.store.AcceptedCount(activityID) >= activity.Capacity
}

// storeError maps repository failures onto application errors.
func storeError(err error, fallback errors.ErrorCode) *errors.AppError {
	switch {
	case stderrors.Is(err, repository.ErrActivityNotFound):
		return errors.NewAppError(errors.ErrNotFound, constants.MsgActivityNotFound, err)
	case stderrors.Is(err, repository.ErrUserNotFound):
		return errors.NewAppError(errors.ErrNotFound, constants.MsgUserNotFound, err)
	case stderrors.Is(err, repository.ErrInvalidStatus):
		return errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewAppError(errors.ErrInternalServer, "request cancelled", err)
	}
	return errors.NewAppError(fallback, "store operation failed", err)
}
