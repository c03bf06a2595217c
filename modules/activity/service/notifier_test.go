package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outings-api/core/errors"
	"outings-api/modules/activity/dto"
	notificationDto "outings-api/modules/notification/dto"
	notificationEntity "outings-api/modules/notification/entity"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notificationDto.CreateNotificationRequest
	fail bool
}

func (r *recordingNotifier) Create(_ context.Context, req *notificationDto.CreateNotificationRequest) *errors.AppError {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, *req)
	if r.fail {
		return errors.NewAppError(errors.ErrCreateFailed, "down", nil)
	}
	return nil
}

func (r *recordingNotifier) last(t *testing.T) notificationDto.CreateNotificationRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.sent)
	return r.sent[len(r.sent)-1]
}

func TestActivityService_NotifiesOnJoinAndDecision(t *testing.T) {
	f := newFixture(t, Policy{})
	rec := &recordingNotifier{}
	f.svc.notifier = rec
	ctx := context.Background()

	reg, appErr := f.svc.Join(ctx, "user-3", "act-2")
	require.Nil(t, appErr)

	join := rec.last(t)
	assert.Equal(t, "user-2", join.UserID)
	assert.Equal(t, notificationEntity.TypeJoinRequest, join.Type)
	assert.Contains(t, join.Message, "Charlie")
	assert.Equal(t, reg.ID, join.Data["registration_id"])

	_, appErr = f.svc.DecideRegistration(ctx, "user-2", reg.ID, &dto.DecideRegistrationRequest{Status: "rejected"})
	require.Nil(t, appErr)

	decided := rec.last(t)
	assert.Equal(t, "user-3", decided.UserID)
	assert.Equal(t, notificationEntity.TypeRegistrationDecided, decided.Type)
	assert.Equal(t, "rejected", decided.Data["status"])
}

func TestActivityService_NotifiesOrganizerOnComment(t *testing.T) {
	f := newFixture(t, Policy{})
	rec := &recordingNotifier{}
	f.svc.notifier = rec

	_, appErr := f.svc.AddComment(context.Background(), "user-2", "act-4", &dto.CreateCommentRequest{Content: "Encore !", Rating: 4})
	require.Nil(t, appErr)

	n := rec.last(t)
	assert.Equal(t, "user-3", n.UserID)
	assert.Equal(t, notificationEntity.TypeComment, n.Type)
	assert.Contains(t, n.Message, "4/5")
}

func TestActivityService_NotifierFailureDoesNotFailAction(t *testing.T) {
	f := newFixture(t, Policy{})
	f.svc.notifier = &recordingNotifier{fail: true}

	reg, appErr := f.svc.Join(context.Background(), "user-3", "act-2")
	require.Nil(t, appErr)
	assert.Equal(t, "pending", reg.Status)
}
