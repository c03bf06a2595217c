package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outings-api/core/constants"
	"outings-api/core/errors"
	"outings-api/core/metrics"
	"outings-api/core/validation"
	"outings-api/modules/activity/dto"
	"outings-api/modules/activity/entity"
)

func validCreateRequest() *dto.CreateActivityRequest {
	return &dto.CreateActivityRequest{
		Title:       "Balade au lac",
		Description: "Tour du lac en fin de journée.",
		Location:    "Lac d'Annecy",
		Datetime:    "2026-06-10T18:30:00",
		Capacity:    12,
		Type:        "Randonnée",
	}
}

func TestActivityService_CreateActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("stores at the front with defaults", func(t *testing.T) {
		f := newFixture(t, Policy{})
		before := testutil.ToFloat64(metrics.ActivitiesCreated)

		req := validCreateRequest()
		req.Capacity = 0
		req.Type = ""
		req.Coordinates = &dto.GeoPoint{Lat: 45.9, Lng: 6.13}

		resp, appErr := f.svc.CreateActivity(ctx, "user-2", req)
		require.Nil(t, appErr)

		assert.True(t, strings.HasPrefix(resp.ID, "act-"))
		assert.Equal(t, 10, resp.Capacity)
		assert.Equal(t, "Randonnée", resp.Type)
		assert.True(t, strings.HasPrefix(resp.Image, "https://picsum.photos/seed/balade-au-lac-"))
		assert.True(t, time.Date(2026, 6, 10, 18, 30, 0, 0, time.UTC).Equal(resp.Datetime), resp.Datetime)
		assert.Equal(t, testNow, resp.CreatedAt)
		require.NotNil(t, resp.Organizer)
		assert.Equal(t, "Bob", resp.Organizer.Name)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.ActivitiesCreated))

		first := f.store.Snapshot().ListActivities()[0]
		assert.Equal(t, resp.ID, first.ID)
		require.NotNil(t, first.Coordinates)
		assert.Equal(t, 45.9, first.Coordinates.Lat)
	})

	t.Run("markup is stripped", func(t *testing.T) {
		f := newFixture(t, Policy{})
		req := validCreateRequest()
		req.Title = "<b>Balade</b> <script>alert(1)</script>au lac"

		resp, appErr := f.svc.CreateActivity(ctx, "user-2", req)
		require.Nil(t, appErr)
		assert.Equal(t, "Balade au lac", resp.Title)
	})

	t.Run("missing fields write nothing", func(t *testing.T) {
		f := newFixture(t, Policy{})
		before := f.store.Snapshot()

		req := validCreateRequest()
		req.Title = "  "
		req.Location = ""
		req.Datetime = ""

		_, appErr := f.svc.CreateActivity(ctx, "user-2", req)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		assert.Equal(t, constants.MsgRequiredFields, appErr.Message)
		result, ok := appErr.Details.(*validation.Result)
		require.True(t, ok)
		assert.Equal(t, []string{"title", "location", "datetime"}, result.Fields())
		assert.Equal(t, before, f.store.Snapshot())
	})

	t.Run("invalid values", func(t *testing.T) {
		f := newFixture(t, Policy{})
		req := validCreateRequest()
		req.Capacity = -3
		req.Type = "Plongée"
		req.Datetime = "un jour"

		_, appErr := f.svc.CreateActivity(ctx, "user-2", req)
		require.NotNil(t, appErr)
		result := appErr.Details.(*validation.Result)
		assert.Equal(t, []string{"datetime", "capacity", "type"}, result.Fields())
	})

	t.Run("unknown organizer", func(t *testing.T) {
		f := newFixture(t, Policy{})
		_, appErr := f.svc.CreateActivity(ctx, "user-missing", validCreateRequest())
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrNotFound, appErr.Code)
	})
}

func TestActivityService_Join(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Policy{})

	small := f.createActivity(t, "user-1", "Tennis", testNow.AddDate(0, 0, 1), 1)
	reg, appErr := f.svc.Join(ctx, "user-2", small.ID)
	require.Nil(t, appErr)
	assert.Equal(t, "pending", reg.Status)
	_, appErr = f.svc.DecideRegistration(ctx, "user-1", reg.ID, &dto.DecideRegistrationRequest{Status: "accepted"})
	require.Nil(t, appErr)

	tests := []struct {
		name       string
		userID     string
		activityID string
		code       errors.ErrorCode
		message    string
	}{
		{"unknown activity", "user-2", "act-missing", errors.ErrNotFound, constants.MsgActivityNotFound},
		{"anonymous", "", "act-1", errors.ErrUnauthorized, constants.MsgLoginRequired},
		{"organizer", "user-1", "act-1", errors.ErrForbidden, constants.MsgOrganizerCannotJoin},
		{"already registered", "user-2", "act-1", errors.ErrAlreadyExists, constants.MsgAlreadyRegistered},
		{"past", "user-1", "act-4", errors.ErrActivityPast, constants.MsgActivityPast},
		{"full", "user-3", small.ID, errors.ErrCapacityReached, constants.MsgActivityFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := f.svc.Join(ctx, tt.userID, tt.activityID)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestActivityService_JoinAfterRejection(t *testing.T) {
	ctx := context.Background()

	registrationsOf := func(f *fixture, userID, activityID string) []entity.Registration {
		var out []entity.Registration
		for _, r := range f.store.Snapshot().RegistrationsFor(activityID) {
			if r.UserID == userID {
				out = append(out, r)
			}
		}
		return out
	}
	rejectedJoin := func(t *testing.T, f *fixture) {
		t.Helper()
		reg, appErr := f.svc.Join(ctx, "user-3", "act-2")
		require.Nil(t, appErr)
		_, appErr = f.svc.DecideRegistration(ctx, "user-2", reg.ID, &dto.DecideRegistrationRequest{Status: "rejected"})
		require.Nil(t, appErr)
	}

	t.Run("upsert reopens the rejected record", func(t *testing.T) {
		f := newFixture(t, Policy{UpsertOnRegister: true})
		rejectedJoin(t, f)
		assert.Equal(t, JoinOpen, f.svc.Derivations().JoinGate("user-3", "act-2"))

		reg, appErr := f.svc.Join(ctx, "user-3", "act-2")
		require.Nil(t, appErr)
		assert.Equal(t, "pending", reg.Status)

		regs := registrationsOf(f, "user-3", "act-2")
		require.Len(t, regs, 1)
		assert.Equal(t, entity.RegistrationStatusPending, regs[0].Status)

		_, appErr = f.svc.Join(ctx, "user-3", "act-2")
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
	})

	t.Run("default policy keeps the refusal", func(t *testing.T) {
		f := newFixture(t, Policy{})
		rejectedJoin(t, f)
		assert.Equal(t, JoinRegistered, f.svc.Derivations().JoinGate("user-3", "act-2"))

		_, appErr := f.svc.Join(ctx, "user-3", "act-2")
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)
		assert.Len(t, registrationsOf(f, "user-3", "act-2"), 1)
	})
}

func TestActivityService_ConcurrentJoinsKeepOneRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Policy{})

	const workers = 8
	var wg sync.WaitGroup
	var accepted atomic.Int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, appErr := f.svc.Join(ctx, "user-3", "act-2"); appErr == nil {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	count := 0
	for _, r := range f.store.Snapshot().RegistrationsFor("act-2") {
		if r.UserID == "user-3" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestActivityService_Leave(t *testing.T) {
	f := newFixture(t, Policy{})
	ctx := context.Background()

	resp, appErr := f.svc.Leave(ctx, "user-3", "act-1")
	require.Nil(t, appErr)
	assert.Equal(t, 1, resp.Removed)

	resp, appErr = f.svc.Leave(ctx, "user-3", "act-1")
	require.Nil(t, appErr)
	assert.Equal(t, 0, resp.Removed)
}

func TestActivityService_DecideRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer accepts", func(t *testing.T) {
		f := newFixture(t, Policy{})
		resp, appErr := f.svc.DecideRegistration(ctx, "user-1", "reg-2", &dto.DecideRegistrationRequest{Status: "accepted"})
		require.Nil(t, appErr)
		assert.True(t, resp.Applied)
		assert.Equal(t, "accepted", resp.Registration.Status)
		require.NotNil(t, resp.Registration.User)
		assert.Equal(t, "Charlie", resp.Registration.User.Name)
	})

	t.Run("someone else", func(t *testing.T) {
		f := newFixture(t, Policy{})
		_, appErr := f.svc.DecideRegistration(ctx, "user-2", "reg-2", &dto.DecideRegistrationRequest{Status: "accepted"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrForbidden, appErr.Code)

		reg, _ := f.store.Snapshot().Registration("reg-2")
		assert.Equal(t, entity.RegistrationStatusPending, reg.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t, Policy{})
		resp, appErr := f.svc.DecideRegistration(ctx, "user-1", "reg-missing", &dto.DecideRegistrationRequest{Status: "rejected"})
		require.Nil(t, appErr)
		assert.False(t, resp.Applied)
	})

	t.Run("bad status", func(t *testing.T) {
		f := newFixture(t, Policy{})
		_, appErr := f.svc.DecideRegistration(ctx, "user-1", "reg-2", &dto.DecideRegistrationRequest{Status: "maybe"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})
}

func TestActivityService_AddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("participant of a past activity", func(t *testing.T) {
		f := newFixture(t, Policy{})
		before := testutil.ToFloat64(metrics.CommentsCreated)

		resp, appErr := f.svc.AddComment(ctx, "user-2", "act-4", &dto.CreateCommentRequest{
			Content: "  <i>Encore</i> merci !  ",
			Rating:  3,
		})
		require.Nil(t, appErr)
		assert.Equal(t, "Encore merci !", resp.Content)
		assert.Equal(t, "Bob", resp.Author.Name)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.CommentsCreated))
		assert.InDelta(t, 4.0, f.derivations().AverageRating("act-4"), 1e-9)
	})

	t.Run("refused", func(t *testing.T) {
		f := newFixture(t, Policy{})
		tests := []struct {
			name       string
			userID     string
			activityID string
			req        dto.CreateCommentRequest
			code       errors.ErrorCode
		}{
			{"blank", "user-2", "act-4", dto.CreateCommentRequest{Content: "<p> </p>", Rating: 4}, errors.ErrInvalidInput},
			{"rating too high", "user-2", "act-4", dto.CreateCommentRequest{Content: "ok", Rating: 6}, errors.ErrInvalidInput},
			{"rating missing", "user-2", "act-4", dto.CreateCommentRequest{Content: "ok"}, errors.ErrInvalidInput},
			{"not over", "user-2", "act-1", dto.CreateCommentRequest{Content: "ok", Rating: 4}, errors.ErrForbidden},
			{"not registered", "user-1", "act-4", dto.CreateCommentRequest{Content: "ok", Rating: 4}, errors.ErrForbidden},
			{"unknown activity", "user-2", "act-missing", dto.CreateCommentRequest{Content: "ok", Rating: 4}, errors.ErrNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := tt.req
				_, appErr := f.svc.AddComment(ctx, tt.userID, tt.activityID, &req)
				require.NotNil(t, appErr)
				assert.Equal(t, tt.code, appErr.Code)
			})
		}
		assert.Len(t, f.store.Snapshot().CommentsFor("act-4"), 2)
	})
}

func TestActivityService_Page(t *testing.T) {
	f := newFixture(t, Policy{})

	view, appErr := f.svc.Page(context.Background(), nil, HomePage{})
	require.Nil(t, appErr)
	assert.Equal(t, "home", view.Page)
	assert.Nil(t, view.Viewer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, appErr = f.svc.Page(ctx, nil, HomePage{})
	assert.NotNil(t, appErr)
}
